// Package project defines the project models: the editable project root
// that owns its todos, the read-only project list, and the command that
// completes every todo of a project.
package project

import (
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/model"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/todo"
)

// Model names.
const (
	ModelName    = "project"
	InfoName     = "projectInfo"
	ListName     = "projectList"
	CompleteName = "completeProject"
)

// DAO names.
const (
	DAOName         = "projects"
	SummaryDAOName  = "projectSummaries"
	CompleteDAOName = "projectCompletions"
)

// Property names.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldTodos       = "todos"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
	FieldTodoCount   = "todo_count"
	FieldProgress    = "progress_percent"
	FieldProjectID   = "project_id"
	FieldCompleted   = "completed"
	FieldProject     = "project"
)

// Roles the project rules check.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// MaxNameLength bounds project names.
const MaxNameLength = 100

// ListFilter narrows the project list. An empty Query lists every project.
type ListFilter struct {
	Query string
}

// Models groups the project definitions together with the todo models
// they nest.
type Models struct {
	Project  *model.Definition
	Info     *model.Definition
	List     *model.Definition
	Complete *model.Definition
	Todos    *todo.Models
}

// Define builds the project and todo definitions. noAccess decides actions
// no rule names.
func Define(noAccess rules.NoAccessBehavior) (*Models, error) {
	todos, err := todo.Define(noAccess)
	if err != nil {
		return nil, err
	}
	writers := []string{RoleEditor, RoleAdmin}

	root, err := model.NewDefinition(ModelName, model.EditableRootObject,
		model.WithDAO(DAOName),
		model.WithNoAccessBehavior(noAccess),
		model.WithProperties(
			property.MustNew(FieldID, datatype.Integer, property.WithFlags(property.Key|property.ReadOnly)),
			property.MustNew(FieldName, datatype.Text),
			property.MustNew(FieldDescription, datatype.Text),
			property.MustNew(FieldCreatedAt, datatype.DateTime, property.WithFlags(property.ReadOnly)),
			property.MustNew(FieldUpdatedAt, datatype.DateTime, property.WithFlags(property.ReadOnly)),
			property.MustNewChild(FieldTodos, todos.List),
		),
		model.WithRules(
			rules.Required(FieldName, ""),
			rules.MaxLength(FieldName, MaxNameLength, ""),
			rules.Required(FieldDescription, ""),
			rules.IsInAnyRole(rules.CreateObject, "", writers, "only editors may create projects"),
			rules.IsInAnyRole(rules.UpdateObject, "", writers, "only editors may change projects"),
			rules.IsInRole(rules.RemoveObject, "", RoleAdmin, "only admins may delete projects"),
		),
	)
	if err != nil {
		return nil, err
	}

	info, err := model.NewDefinition(InfoName, model.ReadOnlyChildObject,
		model.WithNoAccessBehavior(noAccess),
		model.WithProperties(
			property.MustNew(FieldID, datatype.Integer, property.WithFlags(property.Key)),
			property.MustNew(FieldName, datatype.Text),
			property.MustNew(FieldDescription, datatype.Text),
			property.MustNew(FieldTodoCount, datatype.Integer),
			property.MustNew(FieldProgress, datatype.Integer),
		),
	)
	if err != nil {
		return nil, err
	}

	list, err := model.NewDefinition(ListName, model.ReadOnlyRootCollection,
		model.WithItem(info),
		model.WithDAO(SummaryDAOName),
		model.WithNoAccessBehavior(noAccess),
	)
	if err != nil {
		return nil, err
	}

	complete, err := model.NewDefinition(CompleteName, model.CommandObject,
		model.WithDAO(CompleteDAOName),
		model.WithNoAccessBehavior(noAccess),
		model.WithProperties(
			property.MustNew(FieldProjectID, datatype.Integer),
			property.MustNew(FieldCompleted, datatype.Integer, property.WithFlags(property.ReadOnly)),
			property.MustNewChild(FieldProject, info),
		),
		model.WithRules(
			rules.MinValue(FieldProjectID, 1, "project_id must be a positive project id"),
			rules.IsInAnyRole(rules.ExecuteCommand, "", writers, "only editors may complete projects"),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Models{Project: root, Info: info, List: list, Complete: complete, Todos: todos}, nil
}
