// Package event defines the lifecycle events models emit around data portal
// actions and the per-instance subscription API.
package event

import (
	"context"
	"slices"
)

// Name identifies a lifecycle event.
type Name string

const (
	PreCreate   Name = "preCreate"
	PostCreate  Name = "postCreate"
	PreFetch    Name = "preFetch"
	PostFetch   Name = "postFetch"
	PreInsert   Name = "preInsert"
	PostInsert  Name = "postInsert"
	PreUpdate   Name = "preUpdate"
	PostUpdate  Name = "postUpdate"
	PreRemove   Name = "preRemove"
	PostRemove  Name = "postRemove"
	PreSave     Name = "preSave"
	PostSave    Name = "postSave"
	PreExecute  Name = "preExecute"
	PostExecute Name = "postExecute"
)

// Pre returns the pre event of a data portal action, e.g. "insert" -> preInsert.
func Pre(action string) Name { return Name("pre" + capitalize(action)) }

// Post returns the post event of a data portal action.
func Post(action string) Name { return Name("post" + capitalize(action)) }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// Event is the payload handed to handlers. Err is set on post events of
// failed actions and carries the wrapped data portal error.
type Event struct {
	Name      Name
	Action    string
	ModelName string
	Method    string
	Err       error
}

// Handler receives events. The context is the one of the running action;
// handlers run synchronously on the action's goroutine.
type Handler func(ctx context.Context, e Event)

// Subscriptions maps event names to handlers. An environment carries one
// set and copies it into every instance it creates.
type Subscriptions map[Name][]Handler

// Add appends h for name.
func (s Subscriptions) Add(name Name, h Handler) {
	s[name] = append(s[name], h)
}

// Clone returns an independent copy.
func (s Subscriptions) Clone() Subscriptions {
	out := make(Subscriptions, len(s))
	for name, hs := range s {
		out[name] = slices.Clone(hs)
	}
	return out
}

// Emitter is embedded by model instances.
type Emitter struct {
	subs Subscriptions
}

// NewEmitter creates an emitter seeded with a copy of subs.
func NewEmitter(subs Subscriptions) *Emitter {
	return &Emitter{subs: subs.Clone()}
}

// On registers h for name on this instance only.
func (e *Emitter) On(name Name, h Handler) {
	if e.subs == nil {
		e.subs = make(Subscriptions)
	}
	e.subs.Add(name, h)
}

// Emit calls the handlers of ev.Name in registration order.
func (e *Emitter) Emit(ctx context.Context, ev Event) {
	for _, h := range e.subs[ev.Name] {
		h(ctx, ev)
	}
}
