package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/config"
)

func TestNewBackOff_StaysWithinJitteredCap(t *testing.T) {
	t.Parallel()

	c := &Client{retry: config.RetryConfig{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     400 * time.Millisecond,
		Multiplier:      2.0,
	}}

	b := c.newBackOff()
	for i, base := range []time.Duration{100, 200, 400, 400, 400} {
		base *= time.Millisecond
		lo := time.Duration(float64(base) * (1 - jitter))
		hi := time.Duration(float64(base)*(1+jitter)) + time.Nanosecond
		if d := b.NextBackOff(); d < lo || d > hi {
			t.Errorf("delay %d = %v, want within [%v, %v]", i+1, d, lo, hi)
		}
	}
}

func TestServerAwareBackOff_OverrideUsedOnce(t *testing.T) {
	t.Parallel()

	c := &Client{retry: config.RetryConfig{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}}
	b := &serverAwareBackOff{next: c.newBackOff(), override: 3 * time.Second}

	if d := b.NextBackOff(); d != 3*time.Second {
		t.Errorf("first delay = %v, want the 3s override", d)
	}
	if d := b.NextBackOff(); d >= time.Second {
		t.Errorf("second delay = %v, want the exponential delay", d)
	}
}

func TestReplayable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		key    string
		want   bool
	}{
		{method: http.MethodGet, want: true},
		{method: http.MethodPut, want: true},
		{method: http.MethodDelete, want: true},
		{method: http.MethodPost, want: false},
		{method: http.MethodPatch, want: false},
		{method: http.MethodPost, key: "k-1", want: true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/records", http.NoBody)
		if tt.key != "" {
			req.Header.Set(HeaderIdempotencyKey, tt.key)
		}
		if got := replayable(req); got != tt.want {
			t.Errorf("replayable(%s, key=%q) = %v, want %v", tt.method, tt.key, got, tt.want)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		header string
		want   time.Duration
	}{
		{name: "seconds on 429", status: http.StatusTooManyRequests, header: "2", want: 2 * time.Second},
		{name: "seconds on 503", status: http.StatusServiceUnavailable, header: "1", want: time.Second},
		{name: "ignored on 500", status: http.StatusInternalServerError, header: "2"},
		{name: "http date ignored", status: http.StatusTooManyRequests, header: "Wed, 21 Oct 2026 07:28:00 GMT"},
		{name: "missing", status: http.StatusTooManyRequests},
		{name: "negative", status: http.StatusTooManyRequests, header: "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := retryAfter(resp); got != tt.want {
				t.Errorf("retryAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "wrapped canceled", err: &net.OpError{Op: "read", Err: context.Canceled}, want: false},
		{name: "dial refused", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, want: true},
		{name: "other", err: errors.New("connection reset"), want: true},
	}

	for _, tt := range tests {
		if got := isRetryable(tt.err); got != tt.want {
			t.Errorf("%s: isRetryable(%v) = %v, want %v", tt.name, tt.err, got, tt.want)
		}
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	for code, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusCreated:             false,
		http.StatusBadRequest:          false,
		http.StatusNotFound:            false,
		http.StatusConflict:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
	} {
		if got := isRetryableStatus(code); got != want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestDoWithRetry_ZeroAttempts(t *testing.T) {
	t.Parallel()

	c := &Client{hc: http.DefaultClient}
	req := httptest.NewRequest(http.MethodGet, "http://127.0.0.1:1/", http.NoBody)

	var resp *http.Response
	if err := c.doWithRetry(context.Background(), req, &resp); err == nil {
		t.Fatal("doWithRetry() error = nil, want a config error")
	}
	if resp != nil {
		t.Errorf("resp = %v, want nil", resp)
	}
}

func TestDoWithRetry_HonorsRetryAfter(t *testing.T) {
	t.Parallel()

	var (
		count atomic.Int32
		first atomic.Int64
		gap   atomic.Int64
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		now := time.Now().UnixNano()
		if count.Add(1) == 1 {
			first.Store(now)
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		gap.Store(now - first.Load())
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := &Client{
		hc:    srv.Client(),
		name:  "records-api",
		retry: config.RetryConfig{MaxAttempts: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1},
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, http.NoBody)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	var resp *http.Response
	if err := c.doWithRetry(context.Background(), req, &resp); err != nil {
		t.Fatalf("doWithRetry() error = %v", err)
	}
	_ = resp.Body.Close()

	if got := time.Duration(gap.Load()); got < 900*time.Millisecond {
		t.Errorf("second attempt after %v, want about the 1s Retry-After", got)
	}
}
