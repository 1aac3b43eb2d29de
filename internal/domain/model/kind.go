package model

import "slices"

// Kind selects the behavior of a model type. It is fixed when the
// definition is built.
type Kind int

const (
	EditableRootObject Kind = iota + 1
	EditableChildObject
	ReadOnlyRootObject
	ReadOnlyChildObject
	EditableRootCollection
	EditableChildCollection
	ReadOnlyRootCollection
	ReadOnlyChildCollection
	CommandObject
)

var kindNames = map[Kind]string{
	EditableRootObject:      "EditableRootObject",
	EditableChildObject:     "EditableChildObject",
	ReadOnlyRootObject:      "ReadOnlyRootObject",
	ReadOnlyChildObject:     "ReadOnlyChildObject",
	EditableRootCollection:  "EditableRootCollection",
	EditableChildCollection: "EditableChildCollection",
	ReadOnlyRootCollection:  "ReadOnlyRootCollection",
	ReadOnlyChildCollection: "ReadOnlyChildCollection",
	CommandObject:           "CommandObject",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// allowedParents lists the kinds a child kind may be nested in.
var allowedParents = map[Kind][]Kind{
	EditableChildObject:     {EditableRootObject, EditableChildObject, EditableRootCollection, EditableChildCollection},
	EditableChildCollection: {EditableRootObject, EditableChildObject},
	ReadOnlyChildObject:     {ReadOnlyRootObject, ReadOnlyChildObject, ReadOnlyRootCollection, ReadOnlyChildCollection, CommandObject},
	ReadOnlyChildCollection: {ReadOnlyRootObject, ReadOnlyChildObject, CommandObject},
}

// CanBeChildOf reports whether a model of kind k may have a parent of kind p.
func (k Kind) CanBeChildOf(p Kind) bool {
	return slices.Contains(allowedParents[k], p)
}

func (k Kind) IsValid() bool { return k >= EditableRootObject && k <= CommandObject }

// IsRoot reports whether instances of the kind stand on their own.
func (k Kind) IsRoot() bool {
	switch k {
	case EditableRootObject, ReadOnlyRootObject, EditableRootCollection, ReadOnlyRootCollection, CommandObject:
		return true
	}
	return false
}

// IsCollection reports whether the kind holds items of another model.
func (k Kind) IsCollection() bool {
	switch k {
	case EditableRootCollection, EditableChildCollection, ReadOnlyRootCollection, ReadOnlyChildCollection:
		return true
	}
	return false
}

// IsEditable reports whether instances track changes and can be saved.
func (k Kind) IsEditable() bool {
	switch k {
	case EditableRootObject, EditableChildObject, EditableRootCollection, EditableChildCollection:
		return true
	}
	return false
}

// itemKind returns the kind collection items must have.
func (k Kind) itemKind() Kind {
	switch k {
	case EditableRootCollection, EditableChildCollection:
		return EditableChildObject
	case ReadOnlyRootCollection, ReadOnlyChildCollection:
		return ReadOnlyChildObject
	}
	return 0
}
