// Package httpclient is the outbound HTTP client the remote record store
// talks through. A call goes through the circuit breaker, then the rate
// limiter, then gets the identity headers and a client span, and is finally
// sent with retries.
//
//	client := httpclient.New(&cfg.Client, "records-api", metrics, logger)
//	ctx = httpclient.WithUserID(ctx, "alice")
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/config"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/go-business-objects/internal/platform/httpclient"

// Client talks to one downstream service.
type Client struct {
	name    string
	baseURL string
	hc      *http.Client
	retry   config.RetryConfig
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil when unlimited
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds the client for the downstream called name in spans, metrics,
// logs and health output. metrics may be nil.
func New(cfg *config.ClientConfig, name string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	c := &Client{
		name:    name,
		baseURL: cfg.BaseURL,
		hc:      &http.Client{Timeout: cfg.Timeout},
		retry:   cfg.Retry,
		breaker: newBreaker(name, cfg.CircuitBreaker, logger),
		metrics: metrics,
		logger:  logger,
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}
	return c
}

func newBreaker(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	halfOpen := uint32(0)
	if cfg.HalfOpenLimit > 0 {
		halfOpen = uint32(min(cfg.HalfOpenLimit, math.MaxUint32))
	}
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpen,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(max(cfg.MaxFailures, 1))
		},
		// Cancellation is the caller's doing, not the downstream's.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(breaker string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", breaker),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// Do sends req.
//
// A non-retryable answer comes back with its body open and a nil error.
// When retries run out on a retryable status, both resp (body open) and err
// are set. Breaker rejections, interrupted rate-limit waits and transport
// errors return a nil resp. The caller closes any non-nil body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.send(ctx, req, &resp)
	})

	c.observe(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

func (c *Client) send(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	injectHeaders(ctx, req.Header)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.name),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	err := c.doWithRetry(ctx, req.WithContext(ctx), resp)
	if *resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", (*resp).StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// observe is called outside the breaker so rejected calls are counted too.
func (c *Client) observe(ctx context.Context, method string, elapsed time.Duration, resp *http.Response, err error) {
	var status int
	result := telemetry.ResultError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = telemetry.ResultCircuitOpen
	case resp != nil:
		status = resp.StatusCode
		if status < http.StatusBadRequest {
			result = telemetry.ResultSuccess
		}
	}
	c.metrics.RecordClientRequest(ctx, c.name, method, status, result, elapsed)
}

// BaseURL is the downstream root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Name is the downstream service name.
func (c *Client) Name() string { return c.name }

// HealthCheck reports the breaker state without calling the downstream.
func (c *Client) HealthCheck(context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.name)
	default:
		return fmt.Errorf("%s: circuit breaker in state %v", c.name, state)
	}
}
