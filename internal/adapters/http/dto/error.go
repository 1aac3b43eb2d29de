package dto

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/platform/logging"
)

const (
	contentTypeProblem = "application/problem+json"
	contentTypeJSON    = "application/json"
)

// Problem is an RFC 9457 problem details body.
type Problem struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Errors   []FieldProblem `json:"errors,omitempty"`
}

// FieldProblem points at one rejected request field.
type FieldProblem struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// statusBySentinel is checked in order; the first match wins.
var statusBySentinel = []struct {
	target error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusBadGateway},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{domain.ErrDataType, http.StatusBadRequest},
	{domain.ErrProperty, http.StatusBadRequest},
	{domain.ErrArgument, http.StatusBadRequest},
}

// StatusOf picks the HTTP status for err. Broken rules carry their own.
func StatusOf(err error) int {
	var bre *rules.BrokenRulesError
	if errors.As(err, &bre) {
		return bre.Response.Status
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.target) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// NewProblem describes err as a problem for the request r.
func NewProblem(r *http.Request, err error) Problem {
	status := StatusOf(err)
	p := Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Errors = fieldProblems(verr.Fields)
	}
	return p
}

// WriteErrorResponse writes err as problem+json. Broken business rules are
// written as their BrokenRules payload instead.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var bre *rules.BrokenRulesError
	if errors.As(err, &bre) {
		encode(w, r, contentTypeJSON, bre.Response.Status, bre.Response)
		return
	}
	p := NewProblem(r, err)
	encode(w, r, contentTypeProblem, p.Status, p)
}

func encode(w http.ResponseWriter, r *http.Request, contentType string, status int, body any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding error body", slog.Any("error", err))
	}
}

func fieldProblems(fields map[string]string) []FieldProblem {
	out := make([]FieldProblem, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		out = append(out, FieldProblem{Location: "body." + name, Message: fields[name]})
	}
	return out
}
