package rules_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
)

func TestCommonValidationRules(t *testing.T) {
	t.Parallel()

	code := regexp.MustCompile(`^[A-Z]{3}$`)

	tests := []struct {
		name     string
		rule     *rules.ValidationRule
		value    any
		wantFail bool
	}{
		{name: "required nil", rule: rules.Required("v", ""), value: nil, wantFail: true},
		{name: "required blank", rule: rules.Required("v", ""), value: "  ", wantFail: true},
		{name: "required zero time", rule: rules.Required("v", ""), value: time.Time{}, wantFail: true},
		{name: "required zero number", rule: rules.Required("v", ""), value: int64(0), wantFail: false},
		{name: "required text", rule: rules.Required("v", ""), value: "x", wantFail: false},
		{name: "max length over", rule: rules.MaxLength("v", 3, ""), value: "abcd", wantFail: true},
		{name: "max length runes", rule: rules.MaxLength("v", 3, ""), value: "äöü", wantFail: false},
		{name: "min length short", rule: rules.MinLength("v", 3, ""), value: "ab", wantFail: true},
		{name: "min length empty", rule: rules.MinLength("v", 3, ""), value: "", wantFail: false},
		{name: "length is wrong", rule: rules.LengthIs("v", 2, ""), value: "abc", wantFail: true},
		{name: "length is right", rule: rules.LengthIs("v", 2, ""), value: "ab", wantFail: false},
		{name: "min value below", rule: rules.MinValue("v", 0, ""), value: int64(-1), wantFail: true},
		{name: "min value nil", rule: rules.MinValue("v", 0, ""), value: nil, wantFail: false},
		{name: "max value above", rule: rules.MaxValue("v", 100, ""), value: 100.5, wantFail: true},
		{name: "max value edge", rule: rules.MaxValue("v", 100, ""), value: int64(100), wantFail: false},
		{name: "expression mismatch", rule: rules.Expression("v", code, ""), value: "abc", wantFail: true},
		{name: "expression match", rule: rules.Expression("v", code, ""), value: "ABC", wantFail: false},
		{name: "one of unknown", rule: rules.OneOf("v", []string{"a", "b"}, ""), value: "c", wantFail: true},
		{name: "one of known", rule: rules.OneOf("v", []string{"a", "b"}, ""), value: "b", wantFail: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := tt.rule.Execute(rules.Inputs{"v": tt.value})
			if failed := res != nil; failed != tt.wantFail {
				t.Fatalf("Execute(%v) failed = %v, want %v", tt.value, failed, tt.wantFail)
			}
			if res != nil && (res.Property != "v" || res.Severity != rules.Error || res.Message == "") {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestValidationRule_Options(t *testing.T) {
	t.Parallel()

	r := rules.MaxLength("name", 5, "too long",
		rules.WithPriority(1),
		rules.WithSeverity(rules.Warning),
		rules.StopsProcessing(),
		rules.WithInputs("other"),
	)

	if r.Priority != 1 || r.Severity != rules.Warning || !r.StopsProcessing {
		t.Errorf("meta = %+v", r.Rule)
	}
	if got := r.Inputs(); len(got) != 2 || got[0] != "name" || got[1] != "other" {
		t.Errorf("Inputs() = %v, want [name other]", got)
	}

	res := r.Execute(rules.Inputs{"name": "abcdef"})
	if res == nil || res.Message != "too long" || res.Severity != rules.Warning || !res.StopsProcessing {
		t.Errorf("result = %+v", res)
	}
}
