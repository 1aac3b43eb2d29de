package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/telemetry"
)

// collectTotals sums counter data points keyed "metric/result".
func collectTotals(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(telemetry.AttrResult)
				totals[m.Name+"/"+v.AsString()] += dp.Value
			}
		}
	}
	return totals
}

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	m, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), "business-objects")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	m.RecordServerRequest(ctx, "GET", "/api/v1/projects/{id}", 200, time.Millisecond)
	m.RecordServerRequest(ctx, "PATCH", "/api/v1/projects/{id}", 422, time.Millisecond)
	m.RecordClientRequest(ctx, "records-api", "GET", 0, telemetry.ResultCircuitOpen, time.Millisecond)
	m.RecordPortalAction(ctx, "project", "fetch", 20*time.Millisecond, nil)
	m.RecordPortalAction(ctx, "project", "insert", 5*time.Millisecond, errors.New("boom"))

	want := map[string]int64{
		"http.server.request.total/success":      1,
		"http.server.request.total/error":        1,
		"http.client.request.total/circuit_open": 1,
		"portal.action.total/success":            1,
		"portal.action.total/error":              1,
	}
	if diff := cmp.Diff(want, collectTotals(t, reader)); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *telemetry.Metrics
	ctx := context.Background()
	m.RecordServerRequest(ctx, "GET", "/", 200, time.Second)
	m.RecordClientRequest(ctx, "records-api", "GET", 200, telemetry.ResultSuccess, time.Second)
	m.RecordPortalAction(ctx, "project", "fetch", time.Second, nil)
}
