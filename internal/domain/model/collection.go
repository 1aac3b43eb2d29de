package model

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/state"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// Collection is an instance of a collection kind. Items marked for removal
// or removed are hidden from the accessors but stay in the collection until
// a save deletes and expels them. A Collection is not safe for concurrent use.
type Collection struct {
	base
	items []*Object
}

func newCollection(env *Env, def *Definition, parent container) (*Collection, error) {
	if def != nil && !def.kind.IsCollection() {
		return nil, &domain.ArgumentError{Function: "model.newCollection", Argument: "def", Message: def.name + " is not a collection"}
	}
	b, err := newBase(env, def, parent)
	if err != nil {
		return nil, err
	}
	return &Collection{base: b}, nil
}

// CreateCollection builds a new, empty editable root collection.
func CreateCollection(ctx context.Context, env *Env, def *Definition) (*Collection, error) {
	if err := expectKind(def, "CreateCollection", EditableRootCollection); err != nil {
		return nil, err
	}
	c, err := newCollection(env, def, nil)
	if err != nil {
		return nil, err
	}
	return c, c.create(ctx, nil)
}

// FetchCollection builds an editable or read-only root collection and
// loads its items. On a data portal failure the instance is returned with
// the error.
func FetchCollection(ctx context.Context, env *Env, def *Definition, filter any, method string) (*Collection, error) {
	if err := expectKind(def, "FetchCollection", EditableRootCollection, ReadOnlyRootCollection); err != nil {
		return nil, err
	}
	c, err := newCollection(env, def, nil)
	if err != nil {
		return nil, err
	}
	return c, c.fetch(ctx, filter, method)
}

func isLive(o *Object) bool {
	st := o.State()
	return st != state.Removed && st != state.MarkedForRemoval
}

func (c *Collection) live() []*Object {
	out := make([]*Object, 0, len(c.items))
	for _, it := range c.items {
		if isLive(it) {
			out = append(out, it)
		}
	}
	return out
}

// Count returns the number of live items.
func (c *Collection) Count() int { return len(c.live()) }

// Items returns the live items in order.
func (c *Collection) Items() []*Object { return c.live() }

// At returns the live item at index.
func (c *Collection) At(index int) (*Object, error) {
	live := c.live()
	if index < 0 || index >= len(live) {
		return nil, &domain.ArgumentError{Function: c.def.name + ".At", Argument: "index", Message: fmt.Sprintf("%d out of range [0,%d)", index, len(live))}
	}
	return live[index], nil
}

// All iterates over the live items with their positions.
func (c *Collection) All() iter.Seq2[int, *Object] {
	return func(yield func(int, *Object) bool) {
		for i, it := range c.live() {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Filter returns the live items fn accepts.
func (c *Collection) Filter(fn func(*Object) bool) []*Object {
	var out []*Object
	for _, it := range c.live() {
		if fn(it) {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the first live item fn accepts.
func (c *Collection) Find(fn func(*Object) bool) (*Object, bool) {
	for _, it := range c.live() {
		if fn(it) {
			return it, true
		}
	}
	return nil, false
}

// CreateItem creates a new item and inserts it before the live item at
// index; a negative or out of range index appends. When the user may not
// create items it returns nil without error.
func (c *Collection) CreateItem(ctx context.Context, index int) (*Object, error) {
	if err := c.requireKind("CreateItem", c.machine != nil); err != nil {
		return nil, err
	}
	item, err := newObject(c.env, c.def.item, c)
	if err != nil {
		return nil, err
	}
	if err := item.create(ctx, nil); err != nil {
		return nil, err
	}
	if item.State() != state.Created {
		return nil, nil
	}
	c.insertAt(index, item)
	return item, nil
}

func (c *Collection) insertAt(index int, item *Object) {
	live := c.live()
	if index < 0 || index >= len(live) {
		c.items = append(c.items, item)
		return
	}
	pos := slices.Index(c.items, live[index])
	c.items = slices.Insert(c.items, pos, item)
}

// RemoveAt marks the live item at index for removal.
func (c *Collection) RemoveAt(index int) error {
	if err := c.requireKind("RemoveAt", c.machine != nil); err != nil {
		return err
	}
	item, err := c.At(index)
	if err != nil {
		return err
	}
	return item.remove()
}

// Remove marks item for removal.
func (c *Collection) Remove(item *Object) error {
	if err := c.requireKind("Remove", c.machine != nil); err != nil {
		return err
	}
	if item == nil || !slices.Contains(c.items, item) {
		return &domain.ArgumentError{Function: c.def.name + ".Remove", Argument: "item", Message: "not an item of this collection"}
	}
	return item.remove()
}

// RemoveAll marks the collection and every item for removal.
func (c *Collection) RemoveAll() error {
	if err := c.requireKind("RemoveAll", c.machine != nil); err != nil {
		return err
	}
	return c.remove()
}

func (c *Collection) remove() error {
	prev := c.machine.State()
	st, err := c.machine.MarkForRemoval()
	if err != nil {
		return err
	}
	if st == prev {
		return nil
	}
	for _, it := range c.live() {
		if err := it.remove(); err != nil {
			return err
		}
	}
	if c.parent != nil {
		return c.parent.childHasChanged()
	}
	return nil
}

func (c *Collection) childHasChanged() error {
	if !c.acceptsChildChange() {
		return nil
	}
	changed, err := c.machine.MarkAsChanged(false)
	if err != nil {
		return err
	}
	if changed && c.parent != nil {
		return c.parent.childHasChanged()
	}
	return nil
}

// keyValue hands parent key lookups of items to the collection's parent.
func (c *Collection) keyValue(name string) (any, bool) {
	if c.parent == nil {
		return nil, false
	}
	return c.parent.keyValue(name)
}

func (c *Collection) markLoaded() error {
	if c.machine != nil {
		if err := c.machine.MarkAsPristine(); err != nil {
			return err
		}
	}
	for _, it := range c.items {
		if err := it.markLoaded(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) expelRemoved() {
	c.items = slices.DeleteFunc(c.items, func(it *Object) bool {
		return it.State() == state.Removed
	})
	for _, it := range c.items {
		it.expelRemoved()
	}
}

// IsDirty reports whether the collection or any item needs saving.
func (c *Collection) IsDirty() bool {
	if c.machine == nil {
		return false
	}
	if c.machine.IsDirty() {
		return true
	}
	for _, it := range c.items {
		if it.IsDirty() {
			return true
		}
	}
	return false
}

// IsSavable reports whether Save would do something.
func (c *Collection) IsSavable() bool {
	if c.machine == nil || !c.IsDirty() {
		return false
	}
	action, ok := saveAuth(c.machine.State())
	if !ok {
		return false
	}
	return c.hasPermission(action, "") && c.IsValid()
}

// CheckRules checks every live item and makes pending denials of the
// collection visible.
func (c *Collection) CheckRules() {
	c.broken.Publish()
	for _, it := range c.live() {
		it.CheckRules()
	}
}

// IsValid reports whether every live item is valid.
func (c *Collection) IsValid() bool {
	c.broken.Publish()
	if !c.broken.IsValid() {
		return false
	}
	for _, it := range c.live() {
		if !it.IsValid() {
			return false
		}
	}
	return true
}

func (c *Collection) itemOutputs() []rules.Item {
	live := c.live()
	out := make([]rules.Item, 0, len(live))
	for i, it := range live {
		out = append(out, rules.Item{Index: i, Output: it.BrokenRules()})
	}
	return out
}

// BrokenRules returns the collection's own broken rules with the item
// outputs nested under "items".
func (c *Collection) BrokenRules() *rules.BrokenRulesOutput {
	out := c.broken.Output()
	out.AddChildren("items", c.itemOutputs())
	return out
}

// ToDto returns the persistence shapes of the live items.
func (c *Collection) ToDto() ([]ports.DTO, error) {
	live := c.live()
	out := make([]ports.DTO, 0, len(live))
	for _, it := range live {
		dto, err := it.ToDto()
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (c *Collection) toDto() (any, error) { return c.ToDto() }

// FromDto replaces the items with new items loaded from dtos. Editable
// items start pristine.
func (c *Collection) FromDto(dtos []ports.DTO) error {
	items := make([]*Object, 0, len(dtos))
	for _, dto := range dtos {
		it, err := newObject(c.env, c.def.item, c)
		if err != nil {
			return err
		}
		if err := it.FromDto(dto); err != nil {
			return err
		}
		if err := it.markLoaded(); err != nil {
			return err
		}
		items = append(items, it)
	}
	c.items = items
	return nil
}

func (c *Collection) fromDto(data any) error {
	dtos, err := asDTOList(c.def, data)
	if err != nil {
		return err
	}
	return c.FromDto(dtos)
}

// ToCto returns the client shapes of the live items.
func (c *Collection) ToCto() ([]map[string]any, error) {
	live := c.live()
	out := make([]map[string]any, 0, len(live))
	for _, it := range live {
		cto, err := it.ToCto()
		if err != nil {
			return nil, err
		}
		out = append(out, cto)
	}
	return out, nil
}

func (c *Collection) toCto() (any, error) { return c.ToCto() }

// FromCto reconciles the items with a client array. Entries matching a
// live item on every key property update that item; other entries become
// new items appended in order; live items no entry matched are marked for
// removal.
func (c *Collection) FromCto(ctx context.Context, ctos []map[string]any) error {
	if err := c.requireKind("FromCto", c.machine != nil); err != nil {
		return err
	}
	live := c.live()
	keys := c.def.item.props.Keys()
	matched := make(map[*Object]bool, len(live))

	for _, cto := range ctos {
		item := matchItem(live, keys, cto, matched)
		if item == nil {
			var err error
			if item, err = c.CreateItem(ctx, -1); err != nil {
				return err
			}
			if item == nil {
				continue
			}
		}
		matched[item] = true
		if err := item.FromCto(ctx, cto); err != nil {
			return err
		}
	}

	for _, it := range live {
		if !matched[it] {
			if err := it.remove(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Collection) fromCto(ctx context.Context, data any) error {
	var ctos []map[string]any
	switch v := data.(type) {
	case nil:
	case []map[string]any:
		ctos = v
	case []any:
		ctos = make([]map[string]any, 0, len(v))
		for i, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return &domain.ArgumentError{Function: c.def.name + ".FromCto", Argument: "cto", Message: fmt.Sprintf("item %d: expected an object, got %T", i, e)}
			}
			ctos = append(ctos, m)
		}
	default:
		return &domain.ArgumentError{Function: c.def.name + ".FromCto", Argument: "cto", Message: fmt.Sprintf("expected an array, got %T", data)}
	}
	return c.FromCto(ctx, ctos)
}

// matchItem finds the unmatched live item whose key values equal the
// entry's. Models without keys never match.
func matchItem(live []*Object, keys []*property.Definition, cto map[string]any, matched map[*Object]bool) *Object {
	if len(keys) == 0 {
		return nil
	}
	want := make([]any, len(keys))
	for i, k := range keys {
		raw, ok := cto[k.Name()]
		if !ok || raw == nil {
			return nil
		}
		v, ok := k.DataType().Convert(raw)
		if !ok {
			return nil
		}
		want[i] = v
	}
	for _, it := range live {
		if matched[it] {
			continue
		}
		same := true
		for i, k := range keys {
			if !datatype.Equal(it.store.GetValue(k), want[i]) {
				same = false
				break
			}
		}
		if same {
			return it
		}
	}
	return nil
}

func asDTOList(def *Definition, data any) ([]ports.DTO, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case []ports.DTO:
		return v, nil
	case []any:
		out := make([]ports.DTO, 0, len(v))
		for i, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, &domain.ArgumentError{Function: def.name + ".fromDto", Argument: "data", Message: fmt.Sprintf("item %d: expected a DTO, got %T", i, e)}
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, &domain.ArgumentError{Function: def.name + ".fromDto", Argument: "data", Message: fmt.Sprintf("expected a DTO list, got %T", data)}
	}
}
