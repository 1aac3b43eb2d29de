package rules

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Inputs carries the property values a validation rule declared.
type Inputs map[string]any

// String returns the named value as a string, or "" when it is not one.
func (in Inputs) String(name string) string {
	s, _ := in[name].(string)
	return s
}

// Number returns the named value as float64 when it is numeric.
func (in Inputs) Number(name string) (float64, bool) {
	switch v := in[name].(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// ValidationFunc checks the inputs and returns nil when the rule passes.
type ValidationFunc func(r *ValidationRule, in Inputs) *Result

// ValidationRule checks the value of one property, optionally reading others.
type ValidationRule struct {
	Rule
	Property string
	check    ValidationFunc
}

// NewValidation creates a custom validation rule for property.
func NewValidation(name, property, message string, check ValidationFunc, opts ...Option) *ValidationRule {
	return &ValidationRule{Rule: newRule(name, message, opts), Property: property, check: check}
}

// Inputs returns the properties the rule reads: its own first, then the
// declared extras.
func (r *ValidationRule) Inputs() []string {
	return append([]string{r.Property}, r.inputs...)
}

// Execute runs the rule against the given values.
func (r *ValidationRule) Execute(in Inputs) *Result {
	return r.check(r, in)
}

// Fail builds a result carrying the rule's message, severity and flags.
func (r *ValidationRule) Fail(affected ...string) *Result {
	return &Result{
		RuleName:           r.Name,
		Property:           r.Property,
		Message:            r.Message,
		Severity:           r.Severity,
		StopsProcessing:    r.StopsProcessing,
		AffectedProperties: affected,
	}
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case time.Time:
		return x.IsZero()
	default:
		return false
	}
}

// Required fails when the property is nil, blank text, or a zero time.
func Required(property, message string, opts ...Option) *ValidationRule {
	return NewValidation("required", property, orDefault(message, property+" is required"),
		func(r *ValidationRule, in Inputs) *Result {
			if isEmpty(in[r.Property]) {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// MaxLength fails when a text value is longer than max characters.
func MaxLength(property string, max int, message string, opts ...Option) *ValidationRule {
	return NewValidation("maxLength", property, orDefault(message, fmt.Sprintf("%s must be at most %d characters", property, max)),
		func(r *ValidationRule, in Inputs) *Result {
			if utf8.RuneCountInString(in.String(r.Property)) > max {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// MinLength fails when a non-empty text value is shorter than min characters.
func MinLength(property string, min int, message string, opts ...Option) *ValidationRule {
	return NewValidation("minLength", property, orDefault(message, fmt.Sprintf("%s must be at least %d characters", property, min)),
		func(r *ValidationRule, in Inputs) *Result {
			s := in.String(r.Property)
			if s != "" && utf8.RuneCountInString(s) < min {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// LengthIs fails when a non-empty text value does not have exactly n characters.
func LengthIs(property string, n int, message string, opts ...Option) *ValidationRule {
	return NewValidation("lengthIs", property, orDefault(message, fmt.Sprintf("%s must be %d characters", property, n)),
		func(r *ValidationRule, in Inputs) *Result {
			s := in.String(r.Property)
			if s != "" && utf8.RuneCountInString(s) != n {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// MinValue fails when a numeric value is below min. Nil passes.
func MinValue(property string, min float64, message string, opts ...Option) *ValidationRule {
	return NewValidation("minValue", property, orDefault(message, fmt.Sprintf("%s must be at least %s", property, formatNumber(min))),
		func(r *ValidationRule, in Inputs) *Result {
			if v, ok := in.Number(r.Property); ok && v < min {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// MaxValue fails when a numeric value is above max. Nil passes.
func MaxValue(property string, max float64, message string, opts ...Option) *ValidationRule {
	return NewValidation("maxValue", property, orDefault(message, fmt.Sprintf("%s must be at most %s", property, formatNumber(max))),
		func(r *ValidationRule, in Inputs) *Result {
			if v, ok := in.Number(r.Property); ok && v > max {
				return r.Fail()
			}
			return nil
		}, opts...)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Expression fails when a non-empty text value does not match re.
func Expression(property string, re *regexp.Regexp, message string, opts ...Option) *ValidationRule {
	return NewValidation("expression", property, orDefault(message, property+" has an invalid format"),
		func(r *ValidationRule, in Inputs) *Result {
			s := in.String(r.Property)
			if s != "" && !re.MatchString(s) {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// OneOf fails when a non-empty text value is not one of allowed.
func OneOf(property string, allowed []string, message string, opts ...Option) *ValidationRule {
	return NewValidation("oneOf", property, orDefault(message, fmt.Sprintf("%s must be one of: %s", property, strings.Join(allowed, ", "))),
		func(r *ValidationRule, in Inputs) *Result {
			s := in.String(r.Property)
			if s != "" && !slices.Contains(allowed, s) {
				return r.Fail()
			}
			return nil
		}, opts...)
}

// Dependency never breaks. It re-validates dependents whenever property is
// validated.
func Dependency(property string, dependents []string, opts ...Option) *ValidationRule {
	return NewValidation("dependency", property, "",
		func(r *ValidationRule, _ Inputs) *Result {
			res := r.Fail(dependents...)
			res.Severity = Success
			return res
		}, opts...)
}

// InformationRule always records message with information severity.
func InformationRule(property, message string, opts ...Option) *ValidationRule {
	opts = append([]Option{WithSeverity(Information)}, opts...)
	return NewValidation("information", property, message,
		func(r *ValidationRule, _ Inputs) *Result {
			return r.Fail()
		}, opts...)
}
