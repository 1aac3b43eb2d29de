package model

import (
	"context"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/event"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/state"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

func (o *Object) dataContext(ctx context.Context, conn ports.Connection) *DataContext {
	return newDataContext(ctx, conn, o.env, o.def, o)
}

// creator returns the DAO's Creator, or nil when the model has no DAO or
// the DAO cannot create.
func (o *Object) creator() ports.Creator {
	dao, err := resolveDAO(o.env, o.def)
	if err != nil {
		return nil
	}
	c, _ := dao.(ports.Creator)
	return c
}

func (o *Object) cascade(ctx context.Context, fn func(context.Context, childRef) error) error {
	return cascade(ctx, o.env, o.children(), fn)
}

func (o *Object) createChild(ctx context.Context, conn ports.Connection) error {
	return o.create(ctx, conn)
}

func (o *Object) create(ctx context.Context, conn ports.Connection) error {
	mode := noConnection
	creator := o.creator()
	if o.def.hasCreateHook() || creator != nil {
		mode = plainConnection
	}
	call := portalCall{action: ActionCreate, auth: rules.CreateObject, conn: conn, mode: mode}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		switch {
		case o.def.ext.DataCreate != nil:
			if err := o.def.ext.DataCreate(o.dataContext(ctx, conn)); err != nil {
				return err
			}
		case creator != nil:
			dto, err := creator.Create(ctx, conn)
			if err != nil {
				return err
			}
			if err := o.loadOwnDto(dto); err != nil {
				return err
			}
		}
		err := o.cascade(ctx, func(ctx context.Context, c childRef) error {
			return c.m.createChild(ctx, conn)
		})
		if err != nil {
			return err
		}
		if _, err := o.machine.MarkAsCreated(); err != nil {
			return err
		}
		if o.parent != nil {
			return o.parent.childHasChanged()
		}
		return nil
	})
}

func (o *Object) fetch(ctx context.Context, filter any, method string) error {
	auth, target := fetchAuth(method)
	call := portalCall{action: ActionFetch, auth: auth, target: target, method: method, mode: plainConnection}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		var data ports.DTO
		if hook := o.def.ext.DataFetch; hook != nil {
			res, err := hook(o.dataContext(ctx, conn), filter, method)
			if err != nil {
				return err
			}
			data, _ = res.(ports.DTO)
		} else {
			res, err := fetchData(ctx, o.env, o.def, conn, filter, method)
			if err != nil {
				return err
			}
			if data, err = asDTO(o.def, res); err != nil {
				return err
			}
			if err := o.loadOwnDto(data); err != nil {
				return err
			}
		}
		return o.fetched(ctx, conn, data)
	})
}

// fetchChild loads a child from the data its parent fetched. Nil data
// leaves the child with its initial values.
func (o *Object) fetchChild(ctx context.Context, conn ports.Connection, data any) error {
	call := portalCall{action: ActionFetch, auth: rules.FetchObject, conn: conn}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		var dto ports.DTO
		if data != nil {
			var err error
			if dto, err = asDTO(o.def, data); err != nil {
				return err
			}
			if err := o.loadOwnDto(dto); err != nil {
				return err
			}
		}
		return o.fetched(ctx, conn, dto)
	})
}

// fetched cascades the fetch into the children, each reading the entry of
// dto under its property name, then marks the object pristine.
func (o *Object) fetched(ctx context.Context, conn ports.Connection, dto ports.DTO) error {
	err := o.cascade(ctx, func(ctx context.Context, c childRef) error {
		return c.m.fetchChild(ctx, conn, dto[c.name])
	})
	if err != nil {
		return err
	}
	o.validated = false
	if o.machine != nil {
		return o.machine.MarkAsPristine()
	}
	return nil
}

func (o *Object) saveChild(ctx context.Context, conn ports.Connection) error {
	switch o.State() {
	case state.Created:
		return o.insert(ctx, conn)
	case state.Changed:
		return o.update(ctx, conn)
	case state.MarkedForRemoval:
		return o.delete(ctx, conn)
	}
	return nil
}

func (o *Object) saveChildren(ctx context.Context, conn ports.Connection) error {
	return o.cascade(ctx, func(ctx context.Context, c childRef) error {
		return c.m.saveChild(ctx, conn)
	})
}

// copyParentKeys fills parent key properties from the parent.
func (o *Object) copyParentKeys() error {
	if o.parent == nil {
		return nil
	}
	for _, p := range o.def.props.All() {
		if !p.IsParentKey() {
			continue
		}
		if v, ok := o.parent.keyValue(p.ParentProperty()); ok {
			if err := o.load(p.Name(), v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Object) insert(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionInsert, auth: rules.CreateObject, conn: conn, mode: transaction}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		if err := o.copyParentKeys(); err != nil {
			return err
		}
		if hook := o.def.ext.DataInsert; hook != nil {
			if err := hook(o.dataContext(ctx, conn)); err != nil {
				return err
			}
		} else if err := o.persist(ctx, conn, func(dao ports.DAO, dto ports.DTO) (ports.DTO, error) {
			return dao.Insert(ctx, conn, dto)
		}); err != nil {
			return err
		}
		if err := o.saveChildren(ctx, conn); err != nil {
			return err
		}
		return o.machine.MarkAsPristine()
	})
}

func (o *Object) update(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionUpdate, auth: rules.UpdateObject, conn: conn, mode: transaction}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		if o.machine.IsSelfDirty() {
			if hook := o.def.ext.DataUpdate; hook != nil {
				if err := hook(o.dataContext(ctx, conn)); err != nil {
					return err
				}
			} else if err := o.persist(ctx, conn, func(dao ports.DAO, dto ports.DTO) (ports.DTO, error) {
				return dao.Update(ctx, conn, dto)
			}); err != nil {
				return err
			}
		}
		if err := o.saveChildren(ctx, conn); err != nil {
			return err
		}
		return o.machine.MarkAsPristine()
	})
}

// persist sends the object's DTO through call and loads the returned row.
func (o *Object) persist(ctx context.Context, conn ports.Connection, call func(ports.DAO, ports.DTO) (ports.DTO, error)) error {
	dao, err := resolveDAO(o.env, o.def)
	if err != nil {
		return err
	}
	dto, err := o.ownDto()
	if err != nil {
		return err
	}
	res, err := call(dao, dto)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	return o.loadOwnDto(res)
}

// delete runs the remove action: children first, then the object's row.
func (o *Object) delete(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionRemove, auth: rules.RemoveObject, conn: conn, mode: transaction}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		if err := o.saveChildren(ctx, conn); err != nil {
			return err
		}
		if hook := o.def.ext.DataRemove; hook != nil {
			if err := hook(o.dataContext(ctx, conn)); err != nil {
				return err
			}
		} else {
			dao, err := resolveDAO(o.env, o.def)
			if err != nil {
				return err
			}
			if err := dao.Remove(ctx, conn, o.keyFilter()); err != nil {
				return err
			}
		}
		return o.machine.MarkAsRemoved()
	})
}

// keyFilter returns the key properties, or every DTO property when the
// model declares no key.
func (o *Object) keyFilter() ports.DTO {
	keys := o.def.props.Keys()
	if len(keys) == 0 {
		dto, _ := o.ownDto()
		return dto
	}
	filter := make(ports.DTO, len(keys))
	for _, p := range keys {
		filter[p.Name()] = o.store.GetValue(p)
	}
	return filter
}

// Save persists an editable root object according to its state: insert
// when created, update when changed, remove when marked for removal. It
// does nothing when the object is not savable. After an update or remove,
// removed descendants are expelled from their collections.
func (o *Object) Save(ctx context.Context) error {
	if err := o.requireKind("Save", o.def.kind == EditableRootObject); err != nil {
		return err
	}
	if !o.IsSavable() {
		return nil
	}
	return save(ctx, o, o.State(), o.insert, o.update, o.delete, o.expelRemoved)
}

// save brackets the action chosen by st with preSave and postSave.
func save(ctx context.Context, h host, st state.State, insert, update, remove func(context.Context, ports.Connection) error, expel func()) error {
	def := h.Definition()
	h.emit(ctx, event.Event{Name: event.PreSave, Action: actionSave, ModelName: def.name})

	var err error
	switch st {
	case state.Created:
		err = insert(ctx, nil)
	case state.Changed:
		err = update(ctx, nil)
		if err == nil {
			expel()
		}
	case state.MarkedForRemoval:
		err = remove(ctx, nil)
		if err == nil {
			expel()
		}
	}

	h.emit(ctx, event.Event{Name: event.PostSave, Action: actionSave, ModelName: def.name, Err: err})
	return err
}

// Execute runs a command object. It does nothing when the command's inputs
// are invalid or the user may not execute it. An empty method checks
// executeCommand, a named one executeMethod.method. The command's output
// values and read-only children are loaded from the result.
func (o *Object) Execute(ctx context.Context, method string) error {
	if err := o.requireKind("Execute", o.def.kind == CommandObject); err != nil {
		return err
	}
	if !o.IsValid() {
		return nil
	}
	call := portalCall{action: ActionExecute, auth: rules.ExecuteCommand, method: method, mode: transaction}
	if method != "" {
		call.auth, call.target = rules.ExecuteMethod, method
	}
	return runPortal(ctx, o, call, func(ctx context.Context, conn ports.Connection) error {
		if hook := o.def.ext.DataExecute; hook != nil {
			if err := hook(o.dataContext(ctx, conn), method); err != nil {
				return err
			}
			return o.fetched(ctx, conn, nil)
		}
		dao, err := resolveDAO(o.env, o.def)
		if err != nil {
			return err
		}
		exec, ok := dao.(ports.Executor)
		if !ok {
			return &domain.MethodError{Type: o.def.name, Method: "Execute", Message: "DAO " + o.def.daoName + " cannot execute commands"}
		}
		dto, err := o.ownDto()
		if err != nil {
			return err
		}
		res, err := exec.Execute(ctx, conn, method, dto)
		if err != nil {
			return err
		}
		if err := o.loadOwnDto(res); err != nil {
			return err
		}
		return o.fetched(ctx, conn, res)
	})
}
