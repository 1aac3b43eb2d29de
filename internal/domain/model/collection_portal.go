package model

import (
	"context"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/state"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

func (c *Collection) createChild(ctx context.Context, conn ports.Connection) error {
	return c.create(ctx, conn)
}

// create starts an empty collection. Items are added with CreateItem.
func (c *Collection) create(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionCreate, auth: rules.CreateObject, conn: conn}
	return runPortal(ctx, c, call, func(context.Context, ports.Connection) error {
		if _, err := c.machine.MarkAsCreated(); err != nil {
			return err
		}
		if c.parent != nil {
			return c.parent.childHasChanged()
		}
		return nil
	})
}

func (c *Collection) fetch(ctx context.Context, filter any, method string) error {
	auth, target := fetchAuth(method)
	call := portalCall{action: ActionFetch, auth: auth, target: target, method: method, mode: plainConnection}
	return runPortal(ctx, c, call, func(ctx context.Context, conn ports.Connection) error {
		var (
			res any
			err error
		)
		if hook := c.def.ext.DataFetch; hook != nil {
			res, err = hook(newDataContext(ctx, conn, c.env, c.def, nil), filter, method)
		} else {
			res, err = fetchData(ctx, c.env, c.def, conn, filter, method)
		}
		if err != nil {
			return err
		}
		return c.fetchItems(ctx, conn, res)
	})
}

// fetchChild loads a child collection from the list its parent fetched.
func (c *Collection) fetchChild(ctx context.Context, conn ports.Connection, data any) error {
	call := portalCall{action: ActionFetch, auth: rules.FetchObject, conn: conn}
	return runPortal(ctx, c, call, func(ctx context.Context, conn ports.Connection) error {
		return c.fetchItems(ctx, conn, data)
	})
}

// fetchItems builds one item per entry of data, fetches the items
// concurrently and marks the collection pristine once all succeeded.
func (c *Collection) fetchItems(ctx context.Context, conn ports.Connection, data any) error {
	dtos, err := asDTOList(c.def, data)
	if err != nil {
		return err
	}
	type pending struct {
		item *Object
		dto  ports.DTO
	}
	work := make([]pending, 0, len(dtos))
	for _, dto := range dtos {
		item, err := newObject(c.env, c.def.item, c)
		if err != nil {
			return err
		}
		work = append(work, pending{item: item, dto: dto})
	}
	err = cascade(ctx, c.env, work, func(ctx context.Context, p pending) error {
		return p.item.fetchChild(ctx, conn, p.dto)
	})
	if err != nil {
		return err
	}
	c.items = make([]*Object, 0, len(work))
	for _, p := range work {
		c.items = append(c.items, p.item)
	}
	if c.machine != nil {
		return c.machine.MarkAsPristine()
	}
	return nil
}

func (c *Collection) saveChild(ctx context.Context, conn ports.Connection) error {
	switch c.State() {
	case state.Created:
		return c.insert(ctx, conn)
	case state.Changed:
		return c.update(ctx, conn)
	case state.MarkedForRemoval:
		return c.delete(ctx, conn)
	}
	return nil
}

// saveItems saves the items one after another in position order, so a store
// that assigns keys on insert numbers them the way the collection lists them.
func (c *Collection) saveItems(ctx context.Context, conn ports.Connection) error {
	for _, it := range c.items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := it.saveChild(ctx, conn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) insert(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionInsert, auth: rules.CreateObject, conn: conn, mode: transaction}
	return runPortal(ctx, c, call, func(ctx context.Context, conn ports.Connection) error {
		if err := c.saveItems(ctx, conn); err != nil {
			return err
		}
		return c.machine.MarkAsPristine()
	})
}

func (c *Collection) update(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionUpdate, auth: rules.UpdateObject, conn: conn, mode: transaction}
	return runPortal(ctx, c, call, func(ctx context.Context, conn ports.Connection) error {
		if err := c.saveItems(ctx, conn); err != nil {
			return err
		}
		return c.machine.MarkAsPristine()
	})
}

func (c *Collection) delete(ctx context.Context, conn ports.Connection) error {
	call := portalCall{action: ActionRemove, auth: rules.RemoveObject, conn: conn, mode: transaction}
	return runPortal(ctx, c, call, func(ctx context.Context, conn ports.Connection) error {
		if err := c.saveItems(ctx, conn); err != nil {
			return err
		}
		return c.machine.MarkAsRemoved()
	})
}

// Save persists an editable root collection: new items are inserted,
// changed items updated and items marked for removal deleted, all in one
// transaction. Removed items are expelled afterwards.
func (c *Collection) Save(ctx context.Context) error {
	if err := c.requireKind("Save", c.def.kind == EditableRootCollection); err != nil {
		return err
	}
	if !c.IsSavable() {
		return nil
	}
	return save(ctx, c, c.State(), c.insert, c.update, c.delete, c.expelRemoved)
}
