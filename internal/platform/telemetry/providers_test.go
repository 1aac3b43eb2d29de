package telemetry

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel"
)

func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exporter string
		endpoint string
		want     target
		wantErr  bool
	}{
		{name: "stdout", exporter: ExporterStdout, want: target{}},
		{name: "stdout ignores endpoint", exporter: ExporterStdout, endpoint: "http://x:1", want: target{}},
		{name: "otlp http", exporter: ExporterOTLP, endpoint: "http://collector:4318", want: target{otlp: true, host: "collector:4318", insecure: true}},
		{name: "otlp https", exporter: ExporterOTLP, endpoint: "https://collector:4318", want: target{otlp: true, host: "collector:4318"}},
		{name: "otlp bare host", exporter: ExporterOTLP, endpoint: "collector:4318", want: target{otlp: true, host: "collector:4318", insecure: true}},
		{name: "otlp without endpoint", exporter: ExporterOTLP, wantErr: true},
		{name: "unknown exporter", exporter: "jaeger", endpoint: "http://x:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseTarget(tt.exporter, tt.endpoint)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(target{})); diff != "" {
				t.Errorf("parseTarget() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The Init functions replace global providers, so these tests run serially.

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct{ exporter, endpoint string }{
		{ExporterStdout, ""},
		{ExporterOTLP, "http://localhost:4318"},
	} {
		tp, err := InitTracer(ctx, "business-objects", tc.exporter, tc.endpoint)
		if err != nil {
			t.Fatalf("InitTracer(%s) error = %v", tc.exporter, err)
		}
		// No collector runs under test, so the OTLP flush may fail.
		_ = tp.Shutdown(ctx)
	}

	fields := otel.GetTextMapPropagator().Fields()
	if !slices.Contains(fields, "traceparent") || !slices.Contains(fields, "baggage") {
		t.Errorf("propagator fields = %v, want traceparent and baggage", fields)
	}

	if _, err := InitTracer(ctx, "business-objects", "zipkin", ""); err == nil {
		t.Error("InitTracer(zipkin) error = nil, want unsupported exporter")
	}
}

func TestInitMeter(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct{ exporter, endpoint string }{
		{ExporterStdout, ""},
		{ExporterOTLP, "http://localhost:4318"},
	} {
		mp, err := InitMeter(ctx, "business-objects", tc.exporter, tc.endpoint)
		if err != nil {
			t.Fatalf("InitMeter(%s) error = %v", tc.exporter, err)
		}
		_ = mp.Shutdown(ctx)
	}

	if _, err := InitMeter(ctx, "business-objects", ExporterOTLP, ""); err == nil {
		t.Error("InitMeter(otlp, no endpoint) error = nil, want error")
	}
}
