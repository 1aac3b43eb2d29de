package rules

import (
	"slices"
	"strings"
)

// Action is an operation subject to authorization.
type Action string

const (
	ReadProperty   Action = "readProperty"
	WriteProperty  Action = "writeProperty"
	CreateObject   Action = "createObject"
	FetchObject    Action = "fetchObject"
	UpdateObject   Action = "updateObject"
	RemoveObject   Action = "removeObject"
	ExecuteCommand Action = "executeCommand"
	ExecuteMethod  Action = "executeMethod"
)

// RuleID returns the key authorization rules are stored under:
// the action alone, or action.target.
func RuleID(action Action, target string) string {
	if target == "" {
		return string(action)
	}
	return string(action) + "." + target
}

// UserInfo is the caller identity authorization rules decide on.
type UserInfo interface {
	UserCode() string
	UserName() string
	IsAuthenticated() bool
	IsInRole(role string) bool
}

// User is a plain UserInfo.
type User struct {
	Code  string
	Name  string
	Roles []string
}

func (u *User) UserCode() string { return u.Code }
func (u *User) UserName() string { return u.Name }

// IsAuthenticated reports whether the user has a code.
func (u *User) IsAuthenticated() bool { return u != nil && u.Code != "" }

// IsInRole reports whether the user holds role.
func (u *User) IsInRole(role string) bool {
	return u != nil && slices.Contains(u.Roles, role)
}

// AuthorizationContext describes one permission check.
type AuthorizationContext struct {
	Action      Action
	Target      string
	User        UserInfo
	BrokenRules *BrokenRuleList
}

// RuleID returns the key of the rules that apply to the check.
func (c *AuthorizationContext) RuleID() string {
	return RuleID(c.Action, c.Target)
}

// AuthorizationFunc returns nil to allow, or a result to deny.
type AuthorizationFunc func(r *AuthorizationRule, ctx *AuthorizationContext) *Result

// AuthorizationRule decides whether an action is allowed.
type AuthorizationRule struct {
	Rule
	Action Action
	Target string
	check  AuthorizationFunc
}

// NewAuthorization creates a custom authorization rule.
func NewAuthorization(name string, action Action, target, message string, check AuthorizationFunc, opts ...Option) *AuthorizationRule {
	return &AuthorizationRule{Rule: newRule(name, message, opts), Action: action, Target: target, check: check}
}

// ID returns the key the rule is stored under.
func (r *AuthorizationRule) ID() string { return RuleID(r.Action, r.Target) }

// Execute runs the rule.
func (r *AuthorizationRule) Execute(ctx *AuthorizationContext) *Result {
	return r.check(r, ctx)
}

// Deny builds a denial result from the rule metadata.
func (r *AuthorizationRule) Deny() *Result {
	return &Result{
		RuleName:        r.Name,
		Property:        r.ID(),
		Message:         r.Message,
		Severity:        r.Severity,
		StopsProcessing: r.StopsProcessing,
	}
}

func roleRule(name string, action Action, target, message string, allow func(UserInfo) bool, opts []Option) *AuthorizationRule {
	if message == "" {
		message = "the user has no permission to " + RuleID(action, target)
	}
	return NewAuthorization(name, action, target, message,
		func(r *AuthorizationRule, ctx *AuthorizationContext) *Result {
			if ctx.User == nil || !ctx.User.IsAuthenticated() || !allow(ctx.User) {
				return r.Deny()
			}
			return nil
		}, opts...)
}

// IsInRole allows the action for members of role.
func IsInRole(action Action, target, role, message string, opts ...Option) *AuthorizationRule {
	return roleRule("isInRole", action, target, message, func(u UserInfo) bool {
		return u.IsInRole(role)
	}, opts)
}

// IsInAnyRole allows the action for members of at least one of roles.
func IsInAnyRole(action Action, target string, roles []string, message string, opts ...Option) *AuthorizationRule {
	return roleRule("isInAnyRole", action, target, message, func(u UserInfo) bool {
		return slices.ContainsFunc(roles, u.IsInRole)
	}, opts)
}

// IsInAllRoles allows the action for members of every one of roles.
func IsInAllRoles(action Action, target string, roles []string, message string, opts ...Option) *AuthorizationRule {
	return roleRule("isInAllRoles", action, target, message, func(u UserInfo) bool {
		for _, role := range roles {
			if !u.IsInRole(role) {
				return false
			}
		}
		return true
	}, opts)
}

// IsNotInRole denies the action to members of role.
func IsNotInRole(action Action, target, role, message string, opts ...Option) *AuthorizationRule {
	return roleRule("isNotInRole", action, target, message, func(u UserInfo) bool {
		return !u.IsInRole(role)
	}, opts)
}

// IsNotInAnyRole denies the action to members of any of roles.
func IsNotInAnyRole(action Action, target string, roles []string, message string, opts ...Option) *AuthorizationRule {
	return roleRule("isNotInAnyRole", action, target, message, func(u UserInfo) bool {
		return !slices.ContainsFunc(roles, u.IsInRole)
	}, opts)
}

// NoAccessBehavior decides actions that have no authorization rule.
type NoAccessBehavior int

const (
	// AllowWithoutRules permits actions no rule mentions.
	AllowWithoutRules NoAccessBehavior = iota
	// DenyWithoutRules refuses actions no rule mentions.
	DenyWithoutRules
)

// ParseNoAccessBehavior accepts "allow" or "deny".
func ParseNoAccessBehavior(s string) (NoAccessBehavior, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return AllowWithoutRules, true
	case "deny":
		return DenyWithoutRules, true
	default:
		return AllowWithoutRules, false
	}
}

// String implements fmt.Stringer.
func (b NoAccessBehavior) String() string {
	if b == DenyWithoutRules {
		return "deny"
	}
	return "allow"
}
