package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
)

const maxBodyBytes = 1 << 20

// pathIDs reads the named chi parameters as int64 ids, in order. Every
// malformed parameter is reported in one ValidationError.
func pathIDs(r *http.Request, params ...string) ([]int64, error) {
	ids := make([]int64, len(params))
	bad := map[string]string{}
	for i, p := range params {
		id, err := strconv.ParseInt(chi.URLParam(r, p), 10, 64)
		if err != nil {
			bad[p] = "must be a valid integer"
			continue
		}
		ids[i] = id
	}
	if len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}
	return ids, nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding response", slog.Any("error", err))
	}
}

type validatable interface {
	Validate() error
}

// bind decodes and validates the request body into dst. On failure the
// error response is already written and bind returns false.
func bind(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
		err = &domain.ValidationError{Fields: map[string]string{"body": "is required"}}
	case err != nil:
		err = &domain.ValidationError{Fields: map[string]string{"body": "invalid JSON"}}
	default:
		err = dst.Validate()
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
