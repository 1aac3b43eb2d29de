package model

import (
	"context"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Extensions are optional hooks replacing the standard transfer mapping or
// data access of a model type. Nil hooks fall back to the standard path.
//
// Transfer hooks handle the model's own properties; children are always
// recursed into by the framework.
type Extensions struct {
	ToDto   func(tc *TransferContext) (ports.DTO, error)
	FromDto func(tc *TransferContext, dto ports.DTO) error
	ToCto   func(tc *TransferContext) (map[string]any, error)
	FromCto func(tc *TransferContext, cto map[string]any) error

	// DataCreate initializes a new object through dc.SetValue.
	DataCreate func(dc *DataContext) error

	// DataFetch loads data. Objects set their values through dc.SetValue
	// and return the DTO their children read from (nil when they have
	// none); collections return the item DTOs as []ports.DTO.
	DataFetch func(dc *DataContext, filter any, method string) (any, error)

	DataInsert  func(dc *DataContext) error
	DataUpdate  func(dc *DataContext) error
	DataRemove  func(dc *DataContext) error
	DataExecute func(dc *DataContext, method string) error
}

// DataContext is handed to data hooks for the duration of one action.
type DataContext struct {
	ctx  context.Context
	conn ports.Connection
	env  *Env
	def  *Definition
	obj  *Object
}

func newDataContext(ctx context.Context, conn ports.Connection, env *Env, def *Definition, obj *Object) *DataContext {
	return &DataContext{ctx: ctx, conn: conn, env: env, def: def, obj: obj}
}

// Context returns the context of the running action.
func (c *DataContext) Context() context.Context { return c.ctx }

// Connection returns the connection or transaction of the running action.
func (c *DataContext) Connection() ports.Connection { return c.conn }

// ModelName returns the name of the model being processed.
func (c *DataContext) ModelName() string { return c.def.name }

// User returns the caller the action runs for.
func (c *DataContext) User() rules.UserInfo { return c.env.User }

// DAO resolves the model's DAO.
func (c *DataContext) DAO() (ports.DAO, error) { return resolveDAO(c.env, c.def) }

// GetValue returns a property value without authorization checks.
// Collections have no properties; it returns nil for them.
func (c *DataContext) GetValue(name string) any {
	if c.obj == nil {
		return nil
	}
	v, _ := c.obj.raw(name)
	return v
}

// SetValue stores a property value without authorization checks, rules
// or change tracking.
func (c *DataContext) SetValue(name string, value any) error {
	if c.obj == nil {
		return &domain.MethodError{Type: c.def.name, Method: "SetValue", Message: "collections have no properties"}
	}
	return c.obj.load(name, value)
}

// IsSelfDirty reports whether the object's own properties changed.
func (c *DataContext) IsSelfDirty() bool {
	return c.obj != nil && c.obj.IsSelfDirty()
}

// TransferContext is handed to transfer hooks.
type TransferContext struct {
	obj *Object
	// tracked writes mark the object changed; used when reading client data.
	tracked bool
}

// ModelName returns the name of the model being transferred.
func (c *TransferContext) ModelName() string { return c.obj.def.name }

// User returns the caller of the object's environment.
func (c *TransferContext) User() rules.UserInfo { return c.obj.env.User }

// GetValue returns a property value without authorization checks.
func (c *TransferContext) GetValue(name string) any {
	v, _ := c.obj.raw(name)
	return v
}

// SetValue stores a property value without authorization checks. During
// FromCto the write is change tracked and validated like a regular set.
func (c *TransferContext) SetValue(name string, value any) error {
	if c.tracked {
		return c.obj.write(name, value, false)
	}
	return c.obj.load(name, value)
}

func resolveDAO(env *Env, def *Definition) (ports.DAO, error) {
	if env.DAOs == nil {
		return nil, &domain.ArgumentError{Function: "model.Env", Argument: "DAOs", Message: "no DAO resolver configured"}
	}
	return env.DAOs.DAO(def.daoName)
}
