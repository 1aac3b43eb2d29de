// Package state implements the lifecycle state machine of editable models.
//
// The legal moves are fixed by a table; anything outside it is a
// programming error reported as a *domain.ModelError naming both states.
//
//	              pristine created changed marked removed
//	(none)            +       +       N       N      N
//	pristine          o       -       +       +      -
//	created           +       o       o      (-)     +
//	changed           +       -       o       +      -
//	markedForRemoval  -       -       o       o      +
//	removed           -       -       -       -      o
//
// + performs the move, o is a no-op, - and N fail. MarkForRemoval on a
// created model short-circuits to removed.
package state

import (
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
)

// State is the lifecycle state of an editable model.
type State int

const (
	// None is the state of a model that was neither created nor loaded yet.
	None State = iota
	Pristine
	Created
	Changed
	MarkedForRemoval
	Removed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Pristine:
		return "pristine"
	case Created:
		return "created"
	case Changed:
		return "changed"
	case MarkedForRemoval:
		return "markedForRemoval"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

type move int

const (
	illegal move = iota
	perform
	noop
)

// table[from][to]; None never appears as a target.
var table = [6][6]move{
	None:             {None: illegal, Pristine: perform, Created: perform, Changed: illegal, MarkedForRemoval: illegal, Removed: illegal},
	Pristine:         {Pristine: noop, Created: illegal, Changed: perform, MarkedForRemoval: perform, Removed: illegal},
	Created:          {Pristine: perform, Created: noop, Changed: noop, MarkedForRemoval: illegal, Removed: perform},
	Changed:          {Pristine: perform, Created: illegal, Changed: noop, MarkedForRemoval: perform, Removed: illegal},
	MarkedForRemoval: {Pristine: illegal, Created: illegal, Changed: noop, MarkedForRemoval: noop, Removed: perform},
	Removed:          {Pristine: illegal, Created: illegal, Changed: illegal, MarkedForRemoval: illegal, Removed: noop},
}

// Machine tracks the state and the self-dirty flag of one model instance.
// The zero value is a machine in state None. A Machine is not safe for
// concurrent use.
type Machine struct {
	model string
	state State
	dirty bool
}

// NewMachine creates a machine for the named model.
func NewMachine(model string) *Machine {
	return &Machine{model: model}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// IsSelfDirty reports whether the model's own properties changed.
func (m *Machine) IsSelfDirty() bool { return m.dirty }

// IsDirty reports whether the model needs saving: it is new, changed, or
// marked for removal.
func (m *Machine) IsDirty() bool {
	switch m.state {
	case Created, Changed, MarkedForRemoval:
		return true
	default:
		return m.dirty
	}
}

// IsNew reports whether the model was created and never persisted.
func (m *Machine) IsNew() bool { return m.state == Created }

// IsDeleted reports whether the model is marked for removal.
func (m *Machine) IsDeleted() bool { return m.state == MarkedForRemoval }

func (m *Machine) check(to State) (bool, error) {
	switch table[m.state][to] {
	case perform:
		return true, nil
	case noop:
		return false, nil
	default:
		return false, domain.NewTransitionError(m.model, m.state.String(), to.String())
	}
}

// MarkAsCreated moves a fresh model to created and sets the dirty flag.
// It reports whether the state changed.
func (m *Machine) MarkAsCreated() (bool, error) {
	ok, err := m.check(Created)
	if err != nil || !ok {
		return false, err
	}
	m.state = Created
	m.dirty = true
	return true, nil
}

// MarkAsChanged records a change. isSelfChange is true when the model's own
// property changed and false when a descendant did. It reports whether the
// state or the dirty flag changed, which is when the parent must hear about it.
func (m *Machine) MarkAsChanged(isSelfChange bool) (bool, error) {
	ok, err := m.check(Changed)
	if err != nil {
		return false, err
	}
	if m.state == MarkedForRemoval {
		return false, nil
	}
	changed := false
	if ok {
		m.state = Changed
		changed = true
	}
	if isSelfChange && !m.dirty {
		m.dirty = true
		changed = true
	}
	return changed, nil
}

// MarkForRemoval schedules the model for deletion and returns the resulting
// state. A created model goes straight to removed since it was never stored.
func (m *Machine) MarkForRemoval() (State, error) {
	if m.state == Created {
		m.state = Removed
		m.dirty = false
		return Removed, nil
	}
	ok, err := m.check(MarkedForRemoval)
	if err != nil {
		return m.state, err
	}
	if ok {
		m.state = MarkedForRemoval
	}
	return m.state, nil
}

// MarkAsRemoved is the terminal move after a successful delete.
func (m *Machine) MarkAsRemoved() error {
	ok, err := m.check(Removed)
	if err != nil || !ok {
		return err
	}
	m.state = Removed
	m.dirty = false
	return nil
}

// MarkAsPristine records that the model matches its stored form.
func (m *Machine) MarkAsPristine() error {
	if _, err := m.check(Pristine); err != nil {
		return err
	}
	m.state = Pristine
	m.dirty = false
	return nil
}
