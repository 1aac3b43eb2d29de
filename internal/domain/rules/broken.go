package rules

import (
	"slices"
)

// BrokenRule is a recorded rule failure.
type BrokenRule struct {
	RuleName string
	// Property is the validated property, or the rule id of an
	// authorization denial (e.g. "writeProperty.name").
	Property string
	Message  string
	Severity Severity
}

func fromResult(res *Result) BrokenRule {
	return BrokenRule{RuleName: res.RuleName, Property: res.Property, Message: res.Message, Severity: res.Severity}
}

// BrokenRuleList tracks the broken rules of one model instance.
//
// Validation failures are visible as soon as they are recorded.
// Authorization denials are kept pending until Publish, which the model
// calls when its rules are checked; an allowed permission check withdraws
// the denials of its rule id immediately. A rule id keeps one denial per
// denying rule of its latest check.
type BrokenRuleList struct {
	model   string
	items   map[string][]BrokenRule
	order   []string
	denied  map[string][]BrokenRule
	pending map[string][]BrokenRule
}

// NewBrokenRuleList creates an empty list for the named model.
func NewBrokenRuleList(model string) *BrokenRuleList {
	return &BrokenRuleList{
		model:   model,
		items:   make(map[string][]BrokenRule),
		denied:  make(map[string][]BrokenRule),
		pending: make(map[string][]BrokenRule),
	}
}

// Model returns the model name the list belongs to.
func (l *BrokenRuleList) Model() string { return l.model }

// Add records a validation result under its property.
func (l *BrokenRuleList) Add(res *Result) {
	if _, ok := l.items[res.Property]; !ok {
		l.order = append(l.order, res.Property)
	}
	l.items[res.Property] = append(l.items[res.Property], fromResult(res))
}

// Clear drops the validation failures of property.
func (l *BrokenRuleList) Clear(property string) {
	if _, ok := l.items[property]; !ok {
		return
	}
	delete(l.items, property)
	l.order = slices.DeleteFunc(l.order, func(p string) bool { return p == property })
}

// ClearAll drops every validation failure and every denial.
func (l *BrokenRuleList) ClearAll() {
	clear(l.items)
	clear(l.denied)
	clear(l.pending)
	l.order = l.order[:0]
}

// Deny records the results of one permission check as the pending denials
// of rule id, replacing the ones of an earlier check.
func (l *BrokenRuleList) Deny(id string, results ...*Result) {
	brs := make([]BrokenRule, 0, len(results))
	for _, res := range results {
		br := fromResult(res)
		br.Property = id
		brs = append(brs, br)
	}
	l.pending[id] = brs
}

// Allow withdraws any denial recorded for rule id.
func (l *BrokenRuleList) Allow(id string) {
	delete(l.pending, id)
	delete(l.denied, id)
}

// Publish makes pending denials visible.
func (l *BrokenRuleList) Publish() {
	for id, brs := range l.pending {
		l.denied[id] = brs
	}
	clear(l.pending)
}

// IsValid reports whether no validation failure has Error severity.
// Authorization denials do not affect validity.
func (l *BrokenRuleList) IsValid() bool {
	for _, list := range l.items {
		for _, br := range list {
			if br.Severity == Error {
				return false
			}
		}
	}
	return true
}

// Count returns the number of visible broken rules.
func (l *BrokenRuleList) Count() int {
	var n int
	for _, list := range l.items {
		n += len(list)
	}
	for _, brs := range l.denied {
		n += len(brs)
	}
	return n
}

// All returns the visible broken rules: validation failures in recording
// order by property, then denials ordered by rule id.
func (l *BrokenRuleList) All() []BrokenRule {
	out := make([]BrokenRule, 0, l.Count())
	for _, p := range l.order {
		out = append(out, l.items[p]...)
	}
	ids := make([]string, 0, len(l.denied))
	for id := range l.denied {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, l.denied[id]...)
	}
	return out
}

// Output returns the visible broken rules keyed by property or rule id.
func (l *BrokenRuleList) Output() *BrokenRulesOutput {
	out := NewBrokenRulesOutput()
	for _, br := range l.All() {
		out.Add(br.Property, Notice{Message: br.Message, Severity: br.Severity})
	}
	return out
}
