package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/go-business-objects/internal/platform/httpclient"
)

// Requester runs the JSON calls of the remote DAOs against the records API.
// Error statuses become domain errors through TranslateHTTPError.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client and logger.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// Do sends method to path, encoding reqBody as JSON when it is non-nil. The
// answer must carry wantStatus; its body is decoded into respBody when that
// is non-nil.
//
// POSTs carry a fresh Idempotency-Key so the client may retry record
// inserts without duplicating them.
func (r *Requester) Do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported HTTP method: %s", method)
	}

	req, err := r.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return err
	}
	if method == http.MethodPost {
		req.Header.Set(httpclient.HeaderIdempotencyKey, uuid.NewString())
	}
	return r.execute(req, wantStatus, respBody)
}

// BaseURL returns the base URL from the underlying HTTP client.
func (r *Requester) BaseURL() string {
	return r.client.BaseURL()
}

func (r *Requester) newRequest(ctx context.Context, method, path string, reqBody any) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body for %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (r *Requester) execute(req *http.Request, wantStatus int, respBody any) error {
	ctx := req.Context()
	log := r.logger.With(slog.String("method", req.Method), slog.String("url", req.URL.String()))

	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil {
				log.WarnContext(ctx, "closing response body", slog.Any("error", cerr))
			}
		}()
	}

	switch {
	case resp != nil && resp.StatusCode != wantStatus:
		// Exhausted retries still hand back the last answer; it says more
		// than the retry error.
		log.ErrorContext(ctx, "unexpected status",
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return TranslateHTTPError(resp)
	case err != nil:
		log.ErrorContext(ctx, "request failed", slog.Any("error", err))
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
