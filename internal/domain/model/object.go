package model

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/state"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Object is an instance of an object kind: editable root or child,
// read-only root or child, or command. An Object is not safe for concurrent
// use; callers serialize actions against one instance.
type Object struct {
	base
	store     *property.Store
	validated bool
}

func newObject(env *Env, def *Definition, parent container) (*Object, error) {
	if def != nil && def.kind.IsCollection() {
		return nil, &domain.ArgumentError{Function: "model.newObject", Argument: "def", Message: def.name + " is a collection"}
	}
	b, err := newBase(env, def, parent)
	if err != nil {
		return nil, err
	}
	o := &Object{base: b, store: property.NewStore()}
	for _, p := range def.props.All() {
		if !p.IsChild() {
			if err := o.store.InitValue(p); err != nil {
				return nil, err
			}
			continue
		}
		child, err := newMember(env, p.Child().(*Definition), o)
		if err != nil {
			return nil, err
		}
		if err := o.store.InitValue(p, child); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Create builds a new editable root object and runs the create action.
// On a data portal failure the instance is returned with the error.
func Create(ctx context.Context, env *Env, def *Definition) (*Object, error) {
	if err := expectKind(def, "Create", EditableRootObject); err != nil {
		return nil, err
	}
	o, err := newObject(env, def, nil)
	if err != nil {
		return nil, err
	}
	return o, o.create(ctx, nil)
}

// Fetch builds an editable or read-only root object and loads it.
// On a data portal failure the instance is returned with the error.
func Fetch(ctx context.Context, env *Env, def *Definition, filter any, method string) (*Object, error) {
	if err := expectKind(def, "Fetch", EditableRootObject, ReadOnlyRootObject); err != nil {
		return nil, err
	}
	o, err := newObject(env, def, nil)
	if err != nil {
		return nil, err
	}
	return o, o.fetch(ctx, filter, method)
}

// NewCommand builds a command object. Set its inputs, then call Execute.
func NewCommand(env *Env, def *Definition) (*Object, error) {
	if err := expectKind(def, "NewCommand", CommandObject); err != nil {
		return nil, err
	}
	return newObject(env, def, nil)
}

func expectKind(def *Definition, fn string, kinds ...Kind) error {
	if def == nil {
		return &domain.ArgumentError{Function: "model." + fn, Argument: "def", Message: "must not be nil"}
	}
	for _, k := range kinds {
		if def.kind == k {
			return nil
		}
	}
	return &domain.ArgumentError{Function: "model." + fn, Argument: "def", Message: def.name + " is a " + def.kind.String()}
}

func (o *Object) property(name string) (*property.Definition, error) {
	p, ok := o.def.props.Get(name)
	if !ok {
		return nil, &domain.PropertyError{Model: o.def.name, Property: name, Message: "no such property"}
	}
	return p, nil
}

// Get returns a property value. For child properties it returns the child
// *Object or *Collection. A denied read returns nil without error.
func (o *Object) Get(name string) (any, error) {
	p, err := o.property(name)
	if err != nil {
		return nil, err
	}
	if !o.hasPermission(rules.ReadProperty, name) {
		return nil, nil
	}
	return o.read(p), nil
}

func (o *Object) read(p *property.Definition) any {
	if g := p.Getter(); g != nil {
		return g(property.NewContext(p, o.def.props, o.store))
	}
	return o.store.GetValue(p)
}

// raw reads a value bypassing authorization.
func (o *Object) raw(name string) (any, bool) {
	p, ok := o.def.props.Get(name)
	if !ok {
		return nil, false
	}
	return o.read(p), true
}

// Set writes a property value. It fails for unknown or read-only
// properties, on read-only models, and with a *domain.DataTypeError when
// the value does not fit. A denied write leaves the value unchanged and
// returns nil; the denial shows in BrokenRules after the next CheckRules.
// A change marks the object changed, notifies the parent and validates the
// property.
func (o *Object) Set(name string, value any) error {
	return o.write(name, value, true)
}

func (o *Object) write(name string, value any, authorize bool) error {
	p, err := o.property(name)
	if err != nil {
		return err
	}
	if o.machine == nil && o.def.kind != CommandObject {
		return &domain.ModelError{Model: o.def.name, Message: "read-only model; cannot set " + name}
	}
	if p.IsReadOnly() {
		return &domain.ModelError{Model: o.def.name, Message: "property " + name + " is read-only"}
	}
	if o.machine != nil {
		if st := o.machine.State(); st == state.None || st == state.Removed {
			return domain.NewTransitionError(o.def.name, st.String(), state.Changed.String())
		}
	}
	if authorize && !o.hasPermission(rules.WriteProperty, name) {
		return nil
	}

	var changed bool
	if s := p.Setter(); s != nil {
		changed, err = s(property.NewContext(p, o.def.props, o.store), value)
	} else {
		changed, err = o.store.SetValue(p, value)
	}
	if err != nil || !changed {
		return err
	}

	o.validated = false
	if o.machine != nil {
		if err := o.markAsChanged(true); err != nil {
			return err
		}
	}
	o.def.rules.Validate(name, o.validationContext())
	return nil
}

// load stores a value without authorization, rules or change tracking.
func (o *Object) load(name string, value any) error {
	p, err := o.property(name)
	if err != nil {
		return err
	}
	_, err = o.store.SetValue(p, value)
	return err
}

func (o *Object) markAsChanged(isSelf bool) error {
	changed, err := o.machine.MarkAsChanged(isSelf)
	if err != nil {
		return err
	}
	o.validated = false
	if changed && o.parent != nil {
		return o.parent.childHasChanged()
	}
	return nil
}

func (o *Object) childHasChanged() error {
	if !o.acceptsChildChange() {
		return nil
	}
	return o.markAsChanged(false)
}

func (o *Object) keyValue(name string) (any, bool) {
	return o.raw(name)
}

func (o *Object) children() []childRef {
	defs := o.def.props.Children()
	out := make([]childRef, 0, len(defs))
	for _, p := range defs {
		out = append(out, childRef{name: p.Name(), m: o.store.GetValue(p).(member)})
	}
	return out
}

// Child returns the child object stored under name.
func (o *Object) Child(name string) (*Object, error) {
	p, err := o.property(name)
	if err != nil {
		return nil, err
	}
	c, ok := o.store.GetValue(p).(*Object)
	if !ok {
		return nil, &domain.PropertyError{Model: o.def.name, Property: name, Message: "not a child object"}
	}
	return c, nil
}

// Collection returns the child collection stored under name.
func (o *Object) Collection(name string) (*Collection, error) {
	p, err := o.property(name)
	if err != nil {
		return nil, err
	}
	c, ok := o.store.GetValue(p).(*Collection)
	if !ok {
		return nil, &domain.PropertyError{Model: o.def.name, Property: name, Message: "not a child collection"}
	}
	return c, nil
}

// IsDirty reports whether the object or any descendant needs saving.
func (o *Object) IsDirty() bool {
	if o.machine == nil {
		return false
	}
	if o.machine.IsDirty() {
		return true
	}
	for _, c := range o.children() {
		if c.m.IsDirty() {
			return true
		}
	}
	return false
}

// IsSavable reports whether Save would do something: the object is dirty,
// valid, and the user holds the permission its state requires.
func (o *Object) IsSavable() bool {
	if o.machine == nil || !o.IsDirty() {
		return false
	}
	action, ok := saveAuth(o.machine.State())
	if !ok {
		return false
	}
	return o.hasPermission(action, "") && o.IsValid()
}

func (o *Object) validationContext() *rules.ValidationContext {
	return &rules.ValidationContext{
		GetValue: func(name string) any {
			v, _ := o.raw(name)
			return v
		},
		BrokenRules: o.broken,
	}
}

// CheckRules validates every property and every descendant and makes
// pending authorization denials visible.
func (o *Object) CheckRules() {
	vc := o.validationContext()
	for _, p := range o.def.props.All() {
		if !p.IsChild() {
			o.def.rules.Validate(p.Name(), vc)
		}
	}
	o.broken.Publish()
	for _, c := range o.children() {
		c.m.CheckRules()
	}
	o.validated = true
}

// IsValid reports whether neither the object nor a descendant breaks an
// error-severity rule. Rules run when nothing was checked since the last
// change.
func (o *Object) IsValid() bool {
	if o.validated {
		o.broken.Publish()
	} else {
		o.CheckRules()
	}
	if !o.broken.IsValid() {
		return false
	}
	for _, c := range o.children() {
		if !c.m.IsValid() {
			return false
		}
	}
	return true
}

// BrokenRules returns the visible broken rules of the object with child
// outputs nested under the child property names.
func (o *Object) BrokenRules() *rules.BrokenRulesOutput {
	out := o.broken.Output()
	for _, c := range o.children() {
		switch m := c.m.(type) {
		case *Collection:
			out.AddChildren(c.name, m.itemOutputs())
		default:
			out.AddChild(c.name, m.BrokenRules())
		}
	}
	return out
}

// Remove marks the object and its descendants for removal. A created
// object is removed at once since it was never stored.
func (o *Object) Remove() error {
	if err := o.requireKind("Remove", o.machine != nil); err != nil {
		return err
	}
	return o.remove()
}

func (o *Object) remove() error {
	prev := o.machine.State()
	st, err := o.machine.MarkForRemoval()
	if err != nil {
		return err
	}
	if st == prev {
		return nil
	}
	for _, c := range o.children() {
		if err := c.m.remove(); err != nil {
			return err
		}
	}
	o.validated = false
	if o.parent != nil {
		return o.parent.childHasChanged()
	}
	return nil
}

// markLoaded marks the object and its descendants pristine after data was
// loaded outside the data portal.
func (o *Object) markLoaded() error {
	if o.machine != nil {
		if err := o.machine.MarkAsPristine(); err != nil {
			return err
		}
	}
	for _, c := range o.children() {
		if err := c.m.markLoaded(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Object) expelRemoved() {
	for _, c := range o.children() {
		c.m.expelRemoved()
	}
}

func (o *Object) transferContext(tracked bool) *TransferContext {
	return &TransferContext{obj: o, tracked: tracked}
}

// ownDto returns the persistence shape of the object's own properties.
func (o *Object) ownDto() (ports.DTO, error) {
	if hook := o.def.ext.ToDto; hook != nil {
		return hook(o.transferContext(false))
	}
	dto := make(ports.DTO, o.def.props.Len())
	for _, p := range o.def.props.All() {
		if !p.IsChild() && p.IsOnDto() {
			dto[p.Name()] = o.store.GetValue(p)
		}
	}
	return dto, nil
}

func (o *Object) loadOwnDto(dto ports.DTO) error {
	if hook := o.def.ext.FromDto; hook != nil {
		return hook(o.transferContext(false), dto)
	}
	for _, p := range o.def.props.All() {
		if p.IsChild() || !p.IsOnDto() {
			continue
		}
		if v, ok := dto[p.Name()]; ok {
			if err := o.load(p.Name(), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToDto returns the persistence shape of the object with child data nested
// under the child property names.
func (o *Object) ToDto() (ports.DTO, error) {
	dto, err := o.ownDto()
	if err != nil {
		return nil, err
	}
	for _, c := range o.children() {
		p, _ := o.def.props.Get(c.name)
		if !p.IsOnDto() {
			continue
		}
		v, err := c.m.toDto()
		if err != nil {
			return nil, err
		}
		dto[c.name] = v
	}
	return dto, nil
}

func (o *Object) toDto() (any, error) { return o.ToDto() }

// FromDto loads persistence data into the object and its children without
// change tracking.
func (o *Object) FromDto(dto ports.DTO) error {
	if err := o.loadOwnDto(dto); err != nil {
		return err
	}
	for _, c := range o.children() {
		v, ok := dto[c.name]
		if !ok {
			continue
		}
		if err := c.m.fromDto(v); err != nil {
			return err
		}
	}
	return nil
}

func (o *Object) fromDto(data any) error {
	if data == nil {
		return nil
	}
	dto, err := asDTO(o.def, data)
	if err != nil {
		return err
	}
	return o.FromDto(dto)
}

// ToCto returns the client shape of the object with children nested under
// their property names.
func (o *Object) ToCto() (map[string]any, error) {
	var cto map[string]any
	if hook := o.def.ext.ToCto; hook != nil {
		var err error
		if cto, err = hook(o.transferContext(false)); err != nil {
			return nil, err
		}
	} else {
		cto = make(map[string]any, o.def.props.Len())
		for _, p := range o.def.props.All() {
			if !p.IsChild() && p.IsOnCto() {
				cto[p.Name()] = o.read(p)
			}
		}
	}
	for _, c := range o.children() {
		p, _ := o.def.props.Get(c.name)
		if !p.IsOnCto() {
			continue
		}
		v, err := c.m.toCto()
		if err != nil {
			return nil, err
		}
		cto[c.name] = v
	}
	return cto, nil
}

func (o *Object) toCto() (any, error) { return o.ToCto() }

// FromCto applies client data. Writable properties present in cto go
// through Set, so permissions, change tracking and rules apply; read-only
// properties are ignored. Children are updated recursively; collections
// are reconciled by key.
func (o *Object) FromCto(ctx context.Context, cto map[string]any) error {
	if hook := o.def.ext.FromCto; hook != nil {
		if err := hook(o.transferContext(true), cto); err != nil {
			return err
		}
	} else {
		for _, p := range o.def.props.All() {
			if p.IsChild() || p.IsReadOnly() || !p.IsOnCto() {
				continue
			}
			v, ok := cto[p.Name()]
			if !ok {
				continue
			}
			if err := o.Set(p.Name(), v); err != nil {
				return err
			}
		}
	}
	for _, c := range o.children() {
		v, ok := cto[c.name]
		if !ok {
			continue
		}
		if err := c.m.fromCto(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (o *Object) fromCto(ctx context.Context, data any) error {
	if data == nil {
		return nil
	}
	cto, ok := data.(map[string]any)
	if !ok {
		return &domain.ArgumentError{Function: o.def.name + ".FromCto", Argument: "cto", Message: fmt.Sprintf("expected an object, got %T", data)}
	}
	return o.FromCto(ctx, cto)
}

func asDTO(def *Definition, data any) (ports.DTO, error) {
	switch v := data.(type) {
	case map[string]any:
		return v, nil
	case nil:
		return nil, fmt.Errorf("%s: no data: %w", def.name, domain.ErrNotFound)
	default:
		return nil, &domain.ArgumentError{Function: def.name + ".fromDto", Argument: "data", Message: fmt.Sprintf("expected a DTO, got %T", data)}
	}
}

// Value returns a property value of o as T. Nil values yield the zero T.
func Value[T any](o *Object, name string) (T, error) {
	var zero T
	v, err := o.Get(name)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &domain.DataTypeError{Property: name, Type: fmt.Sprintf("%T", zero), Value: v}
	}
	return t, nil
}
