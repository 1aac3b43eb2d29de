package property

import (
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
)

// Store holds the values of one model instance, one slot per property.
// It performs type checks and change detection only; it never runs rules
// or notifies anyone.
type Store struct {
	values map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]any)}
}

// InitValue sets the initial slot for def. Without a value the data type's
// zero value is used. Child properties take the child instance as value and
// are not type checked.
func (s *Store) InitValue(def *Definition, value ...any) error {
	if def.IsChild() {
		if len(value) == 0 {
			return &domain.ArgumentError{Function: "Store.InitValue", Argument: "value", Message: def.name + ": child instance is required"}
		}
		s.values[def.name] = value[0]
		return nil
	}
	if len(value) == 0 {
		s.values[def.name] = def.dt.Zero()
		return nil
	}
	v, ok := def.dt.Convert(value[0])
	if !ok {
		return &domain.DataTypeError{Property: def.name, Type: def.dt.Name(), Value: value[0]}
	}
	s.values[def.name] = v
	return nil
}

// GetValue returns the current slot content of def.
func (s *Store) GetValue(def *Definition) any {
	return s.values[def.name]
}

// SetValue type-checks value, stores it, and reports whether the stored
// value changed. On a type mismatch nothing is stored.
func (s *Store) SetValue(def *Definition, value any) (bool, error) {
	if def.IsChild() {
		return false, &domain.PropertyError{Property: def.name, Message: "child properties cannot be assigned"}
	}
	v, ok := def.dt.Convert(value)
	if !ok {
		return false, &domain.DataTypeError{Property: def.name, Type: def.dt.Name(), Value: value}
	}
	old, had := s.values[def.name]
	s.values[def.name] = v
	return !had || !datatype.Equal(old, v), nil
}

// Context gives custom getters and setters access to the instance's
// values by property name.
type Context struct {
	def   *Definition
	list  *List
	store *Store
}

// NewContext binds a context to one property of an instance.
func NewContext(def *Definition, list *List, store *Store) *Context {
	return &Context{def: def, list: list, store: store}
}

// Property returns the property being read or written.
func (c *Context) Property() *Definition { return c.def }

// GetValue returns the stored value of the named property, or nil when the
// model has no such property.
func (c *Context) GetValue(name string) any {
	d, ok := c.list.Get(name)
	if !ok {
		return nil
	}
	return c.store.GetValue(d)
}

// SetValue stores a value for the named property.
func (c *Context) SetValue(name string, value any) (bool, error) {
	d, ok := c.list.Get(name)
	if !ok {
		return false, &domain.PropertyError{Property: name, Message: "no such property"}
	}
	return c.store.SetValue(d, value)
}
