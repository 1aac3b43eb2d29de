// Package property declares model properties and stores their values.
//
// A Definition is built once per model type and never changes afterwards.
// A Store holds one value slot per definition for a single model instance.
package property

import (
	"strings"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
)

// Flags modify how a property takes part in transfers and writes.
type Flags uint8

const (
	// ReadOnly properties reject writes through the model's setter. Data
	// portal loads still fill them.
	ReadOnly Flags = 1 << iota

	// Key marks a business key, used to match collection items.
	Key

	// ParentKey properties are copied from the parent before insert.
	ParentKey

	// NotOnDto excludes the property from the persistence shape.
	NotOnDto

	// NotOnCto excludes the property from the client shape.
	NotOnCto
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Model is implemented by model definitions usable as a child property type.
type Model interface {
	Name() string
}

// Getter computes a property value on read.
type Getter func(ctx *Context) any

// Setter replaces the default store write. It reports whether anything changed.
type Setter func(ctx *Context, value any) (bool, error)

// Definition describes one property of a model type.
type Definition struct {
	name   string
	dt     datatype.DataType
	child  Model
	flags  Flags
	getter Getter
	setter Setter

	parentProp string
}

// Option configures a Definition.
type Option func(*Definition)

// WithFlags sets the property flags.
func WithFlags(flags Flags) Option {
	return func(d *Definition) {
		d.flags |= flags
	}
}

// ParentKeyOf marks the property as a parent key filled from the parent's
// property named parentProperty before insert.
func ParentKeyOf(parentProperty string) Option {
	return func(d *Definition) {
		d.flags |= ParentKey
		d.parentProp = parentProperty
	}
}

// WithGetter installs a custom getter.
func WithGetter(g Getter) Option {
	return func(d *Definition) {
		d.getter = g
	}
}

// WithSetter installs a custom setter.
func WithSetter(s Setter) Option {
	return func(d *Definition) {
		d.setter = s
	}
}

// New creates a scalar property definition.
func New(name string, dt datatype.DataType, opts ...Option) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ConstructorError{Type: "property.Definition", Argument: "name", Message: "must not be empty"}
	}
	if dt == nil {
		return nil, &domain.ConstructorError{Type: "property.Definition", Argument: "dt", Message: name + ": data type is required"}
	}
	d := &Definition{name: name, dt: dt}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewChild creates a property whose value is a child model or collection.
// Child properties are always read-only; the framework owns their value.
func NewChild(name string, model Model, opts ...Option) (*Definition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &domain.ConstructorError{Type: "property.Definition", Argument: "name", Message: "must not be empty"}
	}
	if model == nil {
		return nil, &domain.ConstructorError{Type: "property.Definition", Argument: "model", Message: name + ": child model is required"}
	}
	d := &Definition{name: name, child: model}
	for _, opt := range opts {
		opt(d)
	}
	d.flags |= ReadOnly
	return d, nil
}

// MustNew is New for package-level definitions. It panics on error.
func MustNew(name string, dt datatype.DataType, opts ...Option) *Definition {
	d, err := New(name, dt, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// MustNewChild is NewChild for package-level definitions. It panics on error.
func MustNewChild(name string, model Model, opts ...Option) *Definition {
	d, err := NewChild(name, model, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Definition) Name() string                { return d.name }
func (d *Definition) DataType() datatype.DataType { return d.dt }
func (d *Definition) Flags() Flags                { return d.flags }
func (d *Definition) Getter() Getter              { return d.getter }
func (d *Definition) Setter() Setter              { return d.setter }

// Child returns the child model type, or nil for scalar properties.
func (d *Definition) Child() Model { return d.child }

func (d *Definition) IsChild() bool     { return d.child != nil }
func (d *Definition) IsReadOnly() bool  { return d.flags.Has(ReadOnly) }
func (d *Definition) IsKey() bool       { return d.flags.Has(Key) }
func (d *Definition) IsParentKey() bool { return d.flags.Has(ParentKey) }
func (d *Definition) IsOnDto() bool     { return !d.flags.Has(NotOnDto) }
func (d *Definition) IsOnCto() bool     { return !d.flags.Has(NotOnCto) }

// ParentProperty returns the parent property a parent key is copied from.
// It defaults to the property's own name.
func (d *Definition) ParentProperty() string {
	if d.parentProp == "" {
		return d.name
	}
	return d.parentProp
}
