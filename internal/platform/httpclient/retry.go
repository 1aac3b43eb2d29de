package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
)

// HeaderIdempotencyKey marks a request the downstream deduplicates. Only
// such requests are retried when their method is not idempotent.
const HeaderIdempotencyKey = "Idempotency-Key"

// jitter is the randomization factor of the backoff delays (±25%).
const jitter = 0.25

// statusError is a retryable HTTP status. The response is kept so the last
// one can be returned with its body.
type statusError struct {
	resp    *http.Response
	service string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.resp.StatusCode, e.service)
}

// doWithRetry sends req until it gets a non-retryable answer or the
// attempts run out, waiting an exponentially growing, jittered delay
// between attempts or the server's Retry-After. The body is buffered and
// replayed on each attempt.
//
// After the last attempt with a retryable status, *resp holds that response
// with its body open and the error is non-nil. The result goes through resp
// so the bodyclose linter sees the caller's Close.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retry.MaxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retry.MaxAttempts)
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	attempts := c.retry.MaxAttempts
	if !replayable(req) {
		attempts = 1
	}

	var (
		last *http.Response
		try  int
		bo   = &serverAwareBackOff{next: c.newBackOff()}
	)
	op := func() (*http.Response, error) {
		try++
		if last != nil {
			drainResponseBody(last)
			last = nil
		}
		resetRequestBody(req, body)

		r, err := c.hc.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if !isRetryableStatus(r.StatusCode) {
			return r, nil
		}
		last = r
		bo.override = retryAfter(r)
		return nil, &statusError{resp: r, service: c.name}
	}

	r, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, delay time.Duration) {
			logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
				slog.String("operation", "httpclient.Do"),
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
				slog.String("peer_service", c.name),
				slog.Int("attempt", try+1),
				slog.Int("max_attempts", attempts),
				slog.Duration("backoff", delay),
				slog.Any("error", err),
			)
		}),
	)
	if err == nil {
		*resp = r
		return nil
	}

	var se *statusError
	if errors.As(err, &se) && se.resp == last {
		*resp = last
		return se
	}
	if last != nil {
		drainResponseBody(last)
	}
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Unwrap()
	}
	return err
}

func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     c.retry.InitialInterval,
		RandomizationFactor: jitter,
		Multiplier:          c.retry.Multiplier,
		MaxInterval:         c.retry.MaxInterval,
	}
}

// serverAwareBackOff is an exponential backoff whose next delay can be
// replaced once by the server's Retry-After.
type serverAwareBackOff struct {
	next     backoff.BackOff
	override time.Duration
}

func (b *serverAwareBackOff) Reset() { b.next.Reset() }

func (b *serverAwareBackOff) NextBackOff() time.Duration {
	d := b.next.NextBackOff()
	if b.override > 0 {
		d, b.override = b.override, 0
	}
	return d
}

// replayable reports whether sending req twice is safe.
func replayable(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return req.Header.Get(HeaderIdempotencyKey) != ""
	}
}

// retryAfter reads a Retry-After given in seconds; dates are ignored.
func retryAfter(r *http.Response) time.Duration {
	if r.StatusCode != http.StatusTooManyRequests && r.StatusCode != http.StatusServiceUnavailable {
		return 0
	}
	secs, err := strconv.Atoi(r.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()
	return b, nil
}

func resetRequestBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// drainResponseBody lets the connection be reused.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable reports whether a transport error may succeed on another
// attempt. The caller giving up never is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports 429 and 5xx answers.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
