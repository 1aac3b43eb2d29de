package rules

import (
	"cmp"
	"slices"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// Manager holds the rules of one model type. Rules are added while the
// model type is being defined; afterwards the manager is read-only and may
// be shared by every instance of the type.
type Manager struct {
	validation    map[string][]*ValidationRule
	authorization map[string][]*AuthorizationRule
	noAccess      NoAccessBehavior
}

// NewManager creates a manager with the given policy for actions that have
// no authorization rule.
func NewManager(noAccess NoAccessBehavior, rules ...Any) (*Manager, error) {
	m := &Manager{
		validation:    make(map[string][]*ValidationRule),
		authorization: make(map[string][]*AuthorizationRule),
		noAccess:      noAccess,
	}
	if err := m.Add(rules...); err != nil {
		return nil, err
	}
	return m, nil
}

// NoAccessBehavior returns the policy for actions without rules.
func (m *Manager) NoAccessBehavior() NoAccessBehavior { return m.noAccess }

func byPriority[T Any](a, b T) int {
	return cmp.Compare(a.Meta().Priority, b.Meta().Priority)
}

// Add registers rules. Each target's list stays sorted by priority with
// declaration order breaking ties.
func (m *Manager) Add(rules ...Any) error {
	for _, r := range rules {
		switch rule := r.(type) {
		case *ValidationRule:
			if rule == nil || rule.Property == "" || rule.check == nil {
				return &domain.ArgumentError{Function: "Manager.Add", Argument: "rule", Message: "validation rule needs a property and a check"}
			}
			list := append(m.validation[rule.Property], rule)
			slices.SortStableFunc(list, byPriority[*ValidationRule])
			m.validation[rule.Property] = list
		case *AuthorizationRule:
			if rule == nil || rule.Action == "" || rule.check == nil {
				return &domain.ArgumentError{Function: "Manager.Add", Argument: "rule", Message: "authorization rule needs an action and a check"}
			}
			id := rule.ID()
			list := append(m.authorization[id], rule)
			slices.SortStableFunc(list, byPriority[*AuthorizationRule])
			m.authorization[id] = list
		default:
			return &domain.ArgumentError{Function: "Manager.Add", Argument: "rule", Message: "unsupported rule type"}
		}
	}
	return nil
}

// ValidationRules returns the sorted rules of property.
func (m *Manager) ValidationRules(property string) []*ValidationRule {
	return m.validation[property]
}

// AuthorizationRules returns the sorted rules stored under id.
func (m *Manager) AuthorizationRules(id string) []*AuthorizationRule {
	return m.authorization[id]
}

// ValidationContext gives validation access to the instance being checked.
type ValidationContext struct {
	GetValue    func(name string) any
	BrokenRules *BrokenRuleList
}

// Validate re-checks property: its broken rules are cleared, then its rules
// run in order. Results that are not Success are recorded. Properties a
// result lists as affected are validated in turn, each at most once per
// call. A result that stops processing ends the property's chain.
func (m *Manager) Validate(property string, ctx *ValidationContext) {
	m.validate(property, ctx, make(map[string]bool))
}

func (m *Manager) validate(property string, ctx *ValidationContext, seen map[string]bool) {
	if seen[property] {
		return
	}
	seen[property] = true

	ctx.BrokenRules.Clear(property)
	for _, rule := range m.validation[property] {
		in := make(Inputs, len(rule.inputs)+1)
		for _, name := range rule.Inputs() {
			in[name] = ctx.GetValue(name)
		}

		res := rule.Execute(in)
		if res == nil {
			continue
		}
		if res.Severity != Success {
			ctx.BrokenRules.Add(res)
		}
		for _, affected := range res.AffectedProperties {
			m.validate(affected, ctx, seen)
		}
		if res.StopsProcessing {
			break
		}
	}
}

// HasPermission runs the authorization rules of the context's rule id.
// Any result denies the action, and every result is recorded as a pending
// denial; a result that stops processing ends the chain. Without rules the
// NoAccessBehavior decides. An allowed check clears earlier denials of the
// same id.
func (m *Manager) HasPermission(ctx *AuthorizationContext) bool {
	id := ctx.RuleID()
	list := m.authorization[id]

	if len(list) == 0 {
		if m.noAccess == DenyWithoutRules {
			ctx.BrokenRules.Deny(id, &Result{
				RuleName: "noAccess",
				Property: id,
				Message:  "no rule grants " + id,
				Severity: Error,
			})
			return false
		}
		ctx.BrokenRules.Allow(id)
		return true
	}

	var denials []*Result
	for _, rule := range list {
		res := rule.Execute(ctx)
		if res == nil {
			continue
		}
		denials = append(denials, res)
		if res.StopsProcessing {
			break
		}
	}
	if len(denials) == 0 {
		ctx.BrokenRules.Allow(id)
		return true
	}
	ctx.BrokenRules.Deny(id, denials...)
	return false
}
