package property

import (
	"strconv"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// List is the ordered, immutable property table of a model type.
type List struct {
	defs   []*Definition
	byName map[string]*Definition
}

// NewList builds a list, rejecting nil entries and duplicate names.
func NewList(defs ...*Definition) (*List, error) {
	l := &List{
		defs:   make([]*Definition, 0, len(defs)),
		byName: make(map[string]*Definition, len(defs)),
	}
	for i, d := range defs {
		if d == nil {
			return nil, &domain.ConstructorError{Type: "property.List", Argument: "defs", Message: "nil definition at position " + strconv.Itoa(i)}
		}
		if _, dup := l.byName[d.name]; dup {
			return nil, &domain.ConstructorError{Type: "property.List", Argument: "defs", Message: "duplicate property " + d.name}
		}
		l.defs = append(l.defs, d)
		l.byName[d.name] = d
	}
	return l, nil
}

// All returns the definitions in declaration order. The slice must not be modified.
func (l *List) All() []*Definition { return l.defs }

// Len returns the number of properties.
func (l *List) Len() int { return len(l.defs) }

// Get looks a definition up by name.
func (l *List) Get(name string) (*Definition, bool) {
	d, ok := l.byName[name]
	return d, ok
}

// Children returns the child model properties in declaration order.
func (l *List) Children() []*Definition {
	var out []*Definition
	for _, d := range l.defs {
		if d.IsChild() {
			out = append(out, d)
		}
	}
	return out
}

// Keys returns the business key properties.
func (l *List) Keys() []*Definition {
	var out []*Definition
	for _, d := range l.defs {
		if d.IsKey() {
			out = append(out, d)
		}
	}
	return out
}
