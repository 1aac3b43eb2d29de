// Package todo defines the todo models: the editable todo owned by a
// project, the collection that holds a project's todos, and the read-only
// search list.
package todo

import (
	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/model"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
)

// Model names. DAOName is the DAO every todo model persists through.
const (
	ModelName  = "todo"
	ListName   = "todos"
	InfoName   = "todoInfo"
	SearchName = "todoSearch"
	DAOName    = "todos"
)

// Property names shared by the todo models and their DAOs.
const (
	FieldID          = "id"
	FieldProjectID   = "project_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldCategory    = "category"
	FieldProgress    = "progress_percent"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// MaxTitleLength bounds todo titles.
const MaxTitleLength = 200

// Models groups the todo definitions.
type Models struct {
	// Todo is an editable child of a project.
	Todo *model.Definition
	// List holds a project's todos.
	List *model.Definition
	// Info is one row of a search result.
	Info *model.Definition
	// Search is a read-only list of todos matching a Filter.
	Search *model.Definition
}

// Define builds the todo definitions. noAccess decides actions no rule
// names.
func Define(noAccess rules.NoAccessBehavior) (*Models, error) {
	item, err := model.NewDefinition(ModelName, model.EditableChildObject,
		model.WithDAO(DAOName),
		model.WithNoAccessBehavior(noAccess),
		model.WithProperties(
			property.MustNew(FieldID, datatype.Integer, property.WithFlags(property.Key|property.ReadOnly)),
			property.MustNew(FieldProjectID, datatype.Integer, property.ParentKeyOf("id"), property.WithFlags(property.ReadOnly)),
			property.MustNew(FieldTitle, datatype.Text),
			property.MustNew(FieldDescription, datatype.Text),
			property.MustNew(FieldStatus, datatype.Text),
			property.MustNew(FieldCategory, datatype.Text),
			property.MustNew(FieldProgress, datatype.Integer),
			property.MustNew(FieldCreatedAt, datatype.DateTime, property.WithFlags(property.ReadOnly)),
			property.MustNew(FieldUpdatedAt, datatype.DateTime, property.WithFlags(property.ReadOnly)),
		),
		model.WithRules(
			rules.Required(FieldTitle, ""),
			rules.MaxLength(FieldTitle, MaxTitleLength, ""),
			rules.Required(FieldDescription, ""),
			rules.OneOf(FieldStatus, domain.TodoStatuses(), ""),
			rules.OneOf(FieldCategory, domain.TodoCategories(), ""),
			rules.MinValue(FieldProgress, 0, ""),
			rules.MaxValue(FieldProgress, 100, ""),
			doneRequiresFullProgress(),
			rules.Dependency(FieldProgress, []string{FieldStatus}),
		),
		model.WithExtensions(model.Extensions{DataCreate: initTodo}),
	)
	if err != nil {
		return nil, err
	}
	list, err := model.NewDefinition(ListName, model.EditableChildCollection,
		model.WithItem(item),
		model.WithNoAccessBehavior(noAccess),
	)
	if err != nil {
		return nil, err
	}
	info, err := model.NewDefinition(InfoName, model.ReadOnlyChildObject,
		model.WithNoAccessBehavior(noAccess),
		model.WithProperties(
			property.MustNew(FieldID, datatype.Integer, property.WithFlags(property.Key)),
			property.MustNew(FieldProjectID, datatype.Integer),
			property.MustNew(FieldTitle, datatype.Text),
			property.MustNew(FieldStatus, datatype.Text),
			property.MustNew(FieldCategory, datatype.Text),
			property.MustNew(FieldProgress, datatype.Integer),
		),
	)
	if err != nil {
		return nil, err
	}
	search, err := model.NewDefinition(SearchName, model.ReadOnlyRootCollection,
		model.WithItem(info),
		model.WithDAO(DAOName),
		model.WithNoAccessBehavior(noAccess),
	)
	if err != nil {
		return nil, err
	}
	return &Models{Todo: item, List: list, Info: info, Search: search}, nil
}

// initTodo sets the values a new todo starts with.
func initTodo(dc *model.DataContext) error {
	defaults := map[string]any{
		FieldStatus:   domain.StatusPending.String(),
		FieldCategory: domain.CategoryOther.String(),
		FieldProgress: 0,
	}
	for name, v := range defaults {
		if err := dc.SetValue(name, v); err != nil {
			return err
		}
	}
	return nil
}

// doneRequiresFullProgress breaks when a todo is done below 100 percent.
func doneRequiresFullProgress() *rules.ValidationRule {
	return rules.NewValidation("doneRequiresFullProgress", FieldStatus,
		"a done todo must be at 100 percent",
		func(r *rules.ValidationRule, in rules.Inputs) *rules.Result {
			if in.String(FieldStatus) != domain.StatusDone.String() {
				return nil
			}
			if p, ok := in.Number(FieldProgress); ok && p < 100 {
				return r.Fail()
			}
			return nil
		},
		rules.WithInputs(FieldProgress),
	)
}
