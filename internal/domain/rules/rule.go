// Package rules runs validation and authorization rules for models and
// tracks the rules an instance currently breaks.
//
// Validation rules target a property; authorization rules target an action,
// optionally narrowed to a property or method name. Rules for one target
// run in ascending priority order, declaration order breaking ties.
package rules

import (
	"fmt"
	"strings"
)

// Severity grades a rule result. Only Error results make a model invalid.
type Severity int

const (
	Success Severity = iota
	Information
	Warning
	Error
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Information:
		return "information"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "success":
		*s = Success
	case "information":
		*s = Information
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// DefaultPriority is the priority of rules that do not set one.
const DefaultPriority = 10

// Rule holds the metadata shared by every rule kind.
type Rule struct {
	Name            string
	Message         string
	Priority        int
	Severity        Severity
	StopsProcessing bool

	inputs []string
}

func newRule(name, message string, opts []Option) Rule {
	r := Rule{Name: name, Message: message, Priority: DefaultPriority, Severity: Error}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Option adjusts rule metadata.
type Option func(*Rule)

// WithPriority sets the priority; lower values run first.
func WithPriority(p int) Option {
	return func(r *Rule) { r.Priority = p }
}

// WithSeverity sets the severity of the results the rule produces.
func WithSeverity(s Severity) Option {
	return func(r *Rule) { r.Severity = s }
}

// StopsProcessing makes a failing result end the chain for its target.
func StopsProcessing() Option {
	return func(r *Rule) { r.StopsProcessing = true }
}

// WithInputs declares extra properties a validation rule reads.
func WithInputs(names ...string) Option {
	return func(r *Rule) { r.inputs = append(r.inputs, names...) }
}

// Result is what a rule returns when it does not simply pass.
type Result struct {
	RuleName           string
	Property           string
	Message            string
	Severity           Severity
	StopsProcessing    bool
	AffectedProperties []string
}

// Any is implemented by *ValidationRule and *AuthorizationRule.
type Any interface {
	Meta() *Rule
}

// Meta returns the rule metadata.
func (r *Rule) Meta() *Rule { return r }
