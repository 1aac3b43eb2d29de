// Package acl is the anti-corruption layer in front of the downstream
// records API and the "api" persistence driver built on it. The
// translators between downstream payloads and model DTOs live in the
// project and todo sub-packages; error mapping and the request lifecycle
// live here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// maxProblemBytes caps how much of an error body is read.
const maxProblemBytes = 1 << 20

// problem is the RFC 7807 body the records API sends with errors.
type problem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// statusSentinels maps records API statuses to domain errors. 5xx is
// handled separately.
var statusSentinels = map[int]error{
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusConflict:            domain.ErrConflict,
	http.StatusUnauthorized:        domain.ErrForbidden,
	http.StatusForbidden:           domain.ErrForbidden,
	http.StatusTooManyRequests:     domain.ErrUnavailable,
}

// recordFields renames records API fields to model property names.
var recordFields = map[string]string{
	"group_id": "project_id",
}

// TranslateHTTPError turns a records API error response into a domain
// error. Field errors on 400 and 422 come back as *domain.ValidationError
// keyed by model property name.
func TranslateHTTPError(resp *http.Response) error {
	p := readProblem(resp)

	detail := p.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	sentinel, ok := statusSentinels[resp.StatusCode]
	if !ok && resp.StatusCode >= http.StatusInternalServerError {
		sentinel, ok = domain.ErrUnavailable, true
	}
	if !ok {
		return fmt.Errorf("records API: unexpected status %d: %s", resp.StatusCode, detail)
	}

	if sentinel == domain.ErrValidation && len(p.Errors) > 0 {
		fields := make(map[string]string, len(p.Errors))
		for _, e := range p.Errors {
			fields[propertyName(e.Location)] = e.Message
		}
		return &domain.ValidationError{Fields: fields}
	}
	return fmt.Errorf("%s: %w", detail, sentinel)
}

// propertyName strips the location prefix ("body.title") and renames
// downstream fields.
func propertyName(location string) string {
	if _, field, ok := strings.Cut(location, "."); ok {
		location = field
	}
	if name, ok := recordFields[location]; ok {
		return name
	}
	return location
}

// readProblem decodes a problem+json body. Anything else yields an empty
// problem.
func readProblem(resp *http.Response) problem {
	var p problem
	if resp.Body == nil {
		return p
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mt != "application/problem+json" {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProblemBytes)).Decode(&p); err != nil {
		return problem{}
	}
	return p
}
