package model

import (
	"context"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/event"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/state"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Validatable is implemented by every model instance.
type Validatable interface {
	IsValid() bool
	CheckRules()
	BrokenRules() *rules.BrokenRulesOutput
}

// ChangeTrackable is implemented by every model instance. Read-only kinds
// never report changes.
type ChangeTrackable interface {
	State() state.State
	IsNew() bool
	IsDirty() bool
	IsSelfDirty() bool
	IsDeleted() bool
}

// Persistable is implemented by editable roots.
type Persistable interface {
	IsSavable() bool
	Save(ctx context.Context) error
}

// member is the downward view of a child object or child collection.
type member interface {
	Validatable
	ChangeTrackable
	Definition() *Definition

	remove() error
	markLoaded() error
	expelRemoved()

	toDto() (any, error)
	fromDto(data any) error
	toCto() (any, error)
	fromCto(ctx context.Context, data any) error

	createChild(ctx context.Context, conn ports.Connection) error
	fetchChild(ctx context.Context, conn ports.Connection, data any) error
	// saveChild runs insert, update or remove depending on the child's state.
	saveChild(ctx context.Context, conn ports.Connection) error
}

// container is the upward view a child has of its parent.
type container interface {
	Definition() *Definition
	childHasChanged() error
	keyValue(name string) (any, bool)
}

type childRef struct {
	name string
	m    member
}

// base holds what objects and collections share.
type base struct {
	def     *Definition
	env     *Env
	machine *state.Machine
	broken  *rules.BrokenRuleList
	events  *event.Emitter
	parent  container
}

func newBase(env *Env, def *Definition, parent container) (base, error) {
	if env == nil {
		return base{}, &domain.ArgumentError{Function: "model.New", Argument: "env", Message: "must not be nil"}
	}
	if def == nil {
		return base{}, &domain.ArgumentError{Function: "model.New", Argument: "def", Message: "must not be nil"}
	}
	switch {
	case def.kind.IsRoot() && parent != nil:
		return base{}, &domain.ModelError{Model: def.name, Message: def.kind.String() + " cannot have a parent"}
	case !def.kind.IsRoot() && parent == nil:
		return base{}, &domain.ModelError{Model: def.name, Message: def.kind.String() + " requires a parent"}
	case parent != nil && !def.kind.CanBeChildOf(parent.Definition().kind):
		return base{}, &domain.ModelError{Model: def.name, Message: def.kind.String() + " cannot be a child of " + parent.Definition().kind.String()}
	}

	b := base{
		def:    def,
		env:    env,
		broken: rules.NewBrokenRuleList(def.name),
		events: event.NewEmitter(env.Events),
		parent: parent,
	}
	if def.kind.IsEditable() {
		b.machine = state.NewMachine(def.name)
	}
	return b, nil
}

// Definition returns the model type.
func (b *base) Definition() *Definition { return b.def }

func (b *base) environment() *Env { return b.env }

func (b *base) emit(ctx context.Context, e event.Event) { b.events.Emit(ctx, e) }

// On subscribes h to a lifecycle event of this instance.
func (b *base) On(name event.Name, h event.Handler) { b.events.On(name, h) }

func (b *base) hasPermission(action rules.Action, target string) bool {
	return b.def.rules.HasPermission(&rules.AuthorizationContext{
		Action:      action,
		Target:      target,
		User:        b.env.User,
		BrokenRules: b.broken,
	})
}

// CanDo reports whether the environment's user may perform action on
// target. A denial is recorded like any other permission check.
func (b *base) CanDo(action rules.Action, target string) bool {
	return b.hasPermission(action, target)
}

// State returns the lifecycle state. Read-only kinds and commands report
// state.None.
func (b *base) State() state.State {
	if b.machine == nil {
		return state.None
	}
	return b.machine.State()
}

func (b *base) IsNew() bool       { return b.machine != nil && b.machine.IsNew() }
func (b *base) IsSelfDirty() bool { return b.machine != nil && b.machine.IsSelfDirty() }
func (b *base) IsDeleted() bool   { return b.machine != nil && b.machine.IsDeleted() }

// acceptsChildChange reports whether a child's change notice applies.
// Notices reaching a parent that is still being created, or that is gone,
// are dropped.
func (b *base) acceptsChildChange() bool {
	switch b.State() {
	case state.Pristine, state.Created, state.Changed:
		return true
	}
	return false
}

// saveAuth returns the permission the save of a model in st requires.
func saveAuth(st state.State) (rules.Action, bool) {
	switch st {
	case state.Created:
		return rules.CreateObject, true
	case state.Changed:
		return rules.UpdateObject, true
	case state.MarkedForRemoval:
		return rules.RemoveObject, true
	}
	return "", false
}

func newMember(env *Env, def *Definition, parent container) (member, error) {
	if def.kind.IsCollection() {
		return newCollection(env, def, parent)
	}
	return newObject(env, def, parent)
}

func (b *base) requireKind(method string, ok bool) error {
	if ok {
		return nil
	}
	return &domain.MethodError{Type: b.def.name, Method: method, Message: "not supported by " + b.def.kind.String()}
}
