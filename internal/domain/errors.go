package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")

	ErrArgument    = errors.New("argument error")
	ErrConstructor = errors.New("constructor error")
	ErrMethod      = errors.New("method error")
	ErrProperty    = errors.New("property error")
	ErrDataType    = errors.New("data type error")
	ErrModel       = errors.New("model error")
	ErrDataPortal  = errors.New("data portal error")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ArgumentError reports an invalid argument passed to a function.
type ArgumentError struct {
	Function string
	Argument string
	Message  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s(%s): %s", ErrArgument.Error(), e.Function, e.Argument, e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return ErrArgument
}

// ConstructorError reports an invalid argument passed while building a type,
// such as a model or property definition.
type ConstructorError struct {
	Type     string
	Argument string
	Message  string
}

func (e *ConstructorError) Error() string {
	return fmt.Sprintf("%s: %s: %s: %s", ErrConstructor.Error(), e.Type, e.Argument, e.Message)
}

func (e *ConstructorError) Unwrap() error {
	return ErrConstructor
}

// MethodError reports a method called with invalid input or on a model kind
// that does not support it.
type MethodError struct {
	Type    string
	Method  string
	Message string
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", ErrMethod.Error(), e.Type, e.Method, e.Message)
}

func (e *MethodError) Unwrap() error {
	return ErrMethod
}

// PropertyError reports access to a property that does not exist or cannot
// be used the way it was requested.
type PropertyError struct {
	Model    string
	Property string
	Message  string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s: %s.%s: %s", ErrProperty.Error(), e.Model, e.Property, e.Message)
}

func (e *PropertyError) Unwrap() error {
	return ErrProperty
}

// DataTypeError reports a value rejected by a property's data type.
type DataTypeError struct {
	Property string
	Type     string
	Value    any
}

func (e *DataTypeError) Error() string {
	return fmt.Sprintf("%s: %s expects %s, got %T", ErrDataType.Error(), e.Property, e.Type, e.Value)
}

func (e *DataTypeError) Unwrap() error {
	return ErrDataType
}

// ModelError signals incorrect use of a model: an illegal state transition,
// a write to a read-only property, or a broken parent/child relationship.
// From and To are set for state transition failures only.
type ModelError struct {
	Model   string
	Message string
	From    string
	To      string
}

// NewTransitionError returns a ModelError for an illegal from -> to move.
func NewTransitionError(model, from, to string) *ModelError {
	return &ModelError{
		Model:   model,
		Message: fmt.Sprintf("illegal state transition: %s -> %s", from, to),
		From:    from,
		To:      to,
	}
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrModel.Error(), e.Model, e.Message)
}

func (e *ModelError) Unwrap() error {
	return ErrModel
}

// DataPortalError wraps any failure raised while a data portal action runs:
// a DAO call, a custom data hook, a connection operation, or a child cascade.
// Inner is never discarded; errors.Is and errors.As see through to it.
type DataPortalError struct {
	ModelType string
	ModelName string
	Action    string
	Inner     error
}

func (e *DataPortalError) Error() string {
	return fmt.Sprintf("%s: %s %s (%s): %v", ErrDataPortal.Error(), e.Action, e.ModelName, e.ModelType, e.Inner)
}

func (e *DataPortalError) Unwrap() []error {
	return []error{ErrDataPortal, e.Inner}
}
