package model

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/event"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/state"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

func TestScenario_CreateThenSave(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	projectDAO := f.dao(t, "project")
	noteDAO := f.dao(t, "note")

	p, err := Create(ctx, f.env, projectDef)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.State() != state.Created || !p.IsDirty() || !p.IsNew() {
		t.Fatalf("after create: state=%v dirty=%v new=%v, want created/true/true", p.State(), p.IsDirty(), p.IsNew())
	}
	if err := p.Set("name", "Alpha"); err != nil {
		t.Fatalf("Set(name) error = %v", err)
	}

	f.expectCommit()
	projectDAO.EXPECT().
		Insert(mock.Anything, f.conn, ports.DTO{"id": int64(0), "name": "Alpha", "budget": float64(0)}).
		Return(ports.DTO{"id": 7}, nil).Once()
	noteDAO.EXPECT().Insert(mock.Anything, f.conn, ports.DTO{"text": ""}).Return(nil, nil).Once()

	if err := p.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.State() != state.Pristine || p.IsDirty() {
		t.Fatalf("after save: state=%v dirty=%v, want pristine/false", p.State(), p.IsDirty())
	}
	if id, _ := Value[int64](p, "id"); id != 7 {
		t.Errorf("id = %d, want 7 (generated key loaded back)", id)
	}
	if st := mustCollection(t, p, "tasks").State(); st != state.Pristine {
		t.Errorf("tasks state = %v, want pristine", st)
	}
}

func TestScenario_Fetch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	p, _ := fetchProject(t, f)

	if p.State() != state.Pristine || p.IsDirty() {
		t.Fatalf("state=%v dirty=%v, want pristine/false", p.State(), p.IsDirty())
	}
	if name, _ := Value[string](p, "name"); name != "Alpha" {
		t.Errorf("name = %q, want Alpha", name)
	}
	if budget, _ := Value[float64](p, "budget"); budget != 2.5 {
		t.Errorf("budget = %v, want 2.5", budget)
	}
	note := mustChild(t, p, "note")
	if text, _ := Value[string](note, "text"); text != "hello" || note.State() != state.Pristine {
		t.Errorf("note text=%q state=%v, want hello/pristine", text, note.State())
	}
	tasks := mustCollection(t, p, "tasks")
	if tasks.Count() != 2 || tasks.State() != state.Pristine {
		t.Fatalf("tasks count=%d state=%v, want 2/pristine", tasks.Count(), tasks.State())
	}
	for i, it := range tasks.All() {
		if it.State() != state.Pristine {
			t.Errorf("task %d state = %v, want pristine", i, it.State())
		}
	}
}

func TestScenario_ChangeRemoveSave(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p, projectDAO := fetchProject(t, f)
	noteDAO := f.dao(t, "note")
	taskDAO := f.dao(t, "task")

	if err := p.Set("name", "Beta"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if p.State() != state.Changed || !p.IsSelfDirty() {
		t.Fatalf("after set: state=%v selfDirty=%v, want changed/true", p.State(), p.IsSelfDirty())
	}

	if err := p.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if p.State() != state.MarkedForRemoval || !p.IsDeleted() {
		t.Fatalf("after remove: state=%v, want markedForRemoval", p.State())
	}
	tasks := mustCollection(t, p, "tasks")
	if st := mustChild(t, p, "note").State(); st != state.MarkedForRemoval {
		t.Errorf("note state = %v, want markedForRemoval", st)
	}
	if tasks.State() != state.MarkedForRemoval {
		t.Errorf("tasks state = %v, want markedForRemoval", tasks.State())
	}
	for _, it := range tasks.items {
		if it.State() != state.MarkedForRemoval {
			t.Errorf("task state = %v, want markedForRemoval", it.State())
		}
	}

	f.expectCommit()
	noteDAO.EXPECT().Remove(mock.Anything, f.conn, ports.DTO{"text": "hello"}).Return(nil).Once()
	taskDAO.EXPECT().Remove(mock.Anything, f.conn, ports.DTO{"id": int64(10)}).Return(nil).Once()
	taskDAO.EXPECT().Remove(mock.Anything, f.conn, ports.DTO{"id": int64(11)}).Return(nil).Once()
	projectDAO.EXPECT().Remove(mock.Anything, f.conn, ports.DTO{"id": int64(1)}).Return(nil).Once()

	if err := p.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.State() != state.Removed {
		t.Errorf("state = %v, want removed", p.State())
	}
	if len(tasks.items) != 0 {
		t.Errorf("removed tasks still held: %d", len(tasks.items))
	}
}

func TestScenario_RemovedItemLeavesCollection(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p, _ := fetchProject(t, f)
	taskDAO := f.dao(t, "task")
	tasks := mustCollection(t, p, "tasks")

	first, _ := tasks.At(0)
	if err := first.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if tasks.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 live item", tasks.Count())
	}
	if p.State() != state.Changed || p.IsSelfDirty() {
		t.Fatalf("project state=%v selfDirty=%v, want changed/false", p.State(), p.IsSelfDirty())
	}

	f.expectCommit()
	taskDAO.EXPECT().Remove(mock.Anything, f.conn, ports.DTO{"id": int64(10)}).Return(nil).Once()

	if err := p.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first.State() != state.Removed {
		t.Errorf("removed task state = %v, want removed", first.State())
	}
	if len(tasks.items) != 1 || tasks.items[0] == first {
		t.Errorf("removed task not expelled from collection")
	}
	if p.State() != state.Pristine || tasks.State() != state.Pristine {
		t.Errorf("after save project=%v tasks=%v, want pristine", p.State(), tasks.State())
	}
}

func TestScenario_DeniedWriteIsSilent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("secret", EditableRootObject,
		WithProperties(property.MustNew("code", datatype.Text)),
		WithRules(rules.IsInRole(rules.WriteProperty, "code", "admin", "admins only")),
	)

	o, err := Create(context.Background(), f.env, def)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := o.Set("code", "x"); err != nil {
		t.Fatalf("denied Set() error = %v, want nil", err)
	}
	if v, _ := o.Get("code"); v != "" {
		t.Fatalf("code = %v, want unchanged empty value", v)
	}
	if n := o.BrokenRules().Count(); n != 0 {
		t.Fatalf("BrokenRules().Count() before CheckRules = %d, want 0", n)
	}

	o.CheckRules()

	got := o.BrokenRules().Notices(rules.RuleID(rules.WriteProperty, "code"))
	want := []rules.Notice{{Message: "admins only", Severity: rules.Error}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("denial notices mismatch (-want +got):\n%s", diff)
	}
	if !o.IsValid() {
		t.Error("denials must not make the object invalid")
	}

	admin := f.env.WithUser(&rules.User{Code: "a", Roles: []string{"admin"}})
	o2, _ := Create(context.Background(), admin, def)
	if err := o2.Set("code", "x"); err != nil {
		t.Fatalf("allowed Set() error = %v", err)
	}
	if v, _ := Value[string](o2, "code"); v != "x" {
		t.Errorf("code = %q, want x", v)
	}
}

func TestObject_DeniedReadReturnsNil(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("payroll", EditableRootObject,
		WithProperties(property.MustNew("salary", datatype.Decimal)),
		WithRules(rules.IsInRole(rules.ReadProperty, "salary", "hr", "")),
	)
	o, _ := Create(context.Background(), f.env, def)

	v, err := o.Get("salary")
	if err != nil || v != nil {
		t.Fatalf("Get() = %v, %v, want nil, nil", v, err)
	}
	if !o.CanDo(rules.WriteProperty, "salary") {
		t.Error("CanDo(writeProperty.salary) = false, want true without rules")
	}
}

func TestObject_SetErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	roDef := MustDefine("report", ReadOnlyRootObject, WithProperties(property.MustNew("total", datatype.Integer)))
	lockedDef := MustDefine("locked", EditableRootObject, WithProperties(
		property.MustNew("id", datatype.Integer, property.WithFlags(property.ReadOnly)),
	))

	p, _ := Create(context.Background(), f.env, projectDef)
	ro, _ := newObject(f.env, roDef, nil)
	locked, _ := Create(context.Background(), f.env, lockedDef)
	fresh, _ := newObject(f.env, projectDef, nil)

	tests := []struct {
		name    string
		obj     *Object
		prop    string
		value   any
		wantErr error
	}{
		{name: "unknown property", obj: p, prop: "nope", value: 1, wantErr: domain.ErrProperty},
		{name: "wrong type", obj: p, prop: "budget", value: "lots", wantErr: domain.ErrDataType},
		{name: "child property", obj: p, prop: "note", value: "x", wantErr: domain.ErrModel},
		{name: "read-only model", obj: ro, prop: "total", value: 1, wantErr: domain.ErrModel},
		{name: "read-only property", obj: locked, prop: "id", value: 1, wantErr: domain.ErrModel},
		{name: "state none", obj: fresh, prop: "name", value: "x", wantErr: domain.ErrModel},
	}

	// Subtests share instances and run sequentially.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obj.Set(tt.prop, tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Set(%q) error = %v, want %v", tt.prop, err, tt.wantErr)
			}
		})
	}
}

func TestObject_SetSameValueKeepsPristine(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := fetchProject(t, f)

	if err := p.Set("budget", 2.5); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if p.State() != state.Pristine {
		t.Fatalf("state = %v, want pristine after writing the same value", p.State())
	}
}

func TestObject_ChildChangePropagates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := fetchProject(t, f)
	tasks := mustCollection(t, p, "tasks")
	second, _ := tasks.At(1)

	if err := second.Set("title", "renamed"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if second.State() != state.Changed || !second.IsSelfDirty() {
		t.Errorf("task state=%v selfDirty=%v, want changed/true", second.State(), second.IsSelfDirty())
	}
	if tasks.State() != state.Changed {
		t.Errorf("tasks state = %v, want changed", tasks.State())
	}
	if p.State() != state.Changed || p.IsSelfDirty() || !p.IsDirty() {
		t.Errorf("project state=%v selfDirty=%v dirty=%v, want changed/false/true", p.State(), p.IsSelfDirty(), p.IsDirty())
	}
}

func TestObject_ValidationIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := Create(context.Background(), f.env, projectDef)

	if err := p.Set("name", "far too long a name"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	p.CheckRules()
	first := p.BrokenRules().Count()
	p.CheckRules()
	p.CheckRules()
	if got := p.BrokenRules().Count(); got != first || first != 1 {
		t.Fatalf("broken count after repeated CheckRules = %d (first %d), want 1", got, first)
	}
	if p.IsValid() {
		t.Fatal("IsValid() = true with an over-long name")
	}

	_ = p.Set("name", "ok")
	if !p.IsValid() {
		t.Fatalf("IsValid() = false after fixing the name: %v", p.BrokenRules().Count())
	}
}

func TestObject_BrokenRulesNestChildren(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := fetchProject(t, f)
	tasks := mustCollection(t, p, "tasks")
	second, _ := tasks.At(1)
	_ = second.Set("title", "")

	if p.IsValid() {
		t.Fatal("IsValid() = true with an untitled task")
	}
	out := p.BrokenRules()
	items := out.Items("tasks")
	if len(items) != 1 || items[0].Index != 1 {
		t.Fatalf("Items(tasks) = %+v, want one entry at index 1", items)
	}
	if n := len(items[0].Output.Notices("title")); n != 1 {
		t.Errorf("task title notices = %d, want 1", n)
	}
	if out.Count() != 1 {
		t.Errorf("Count() = %d, want 1", out.Count())
	}
}

func TestObject_SaveInvalidIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := Create(context.Background(), f.env, projectDef)

	if p.IsSavable() {
		t.Fatal("IsSavable() = true without a name")
	}
	// No connection or DAO expectations: nothing may be called.
	if err := p.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.State() != state.Created {
		t.Errorf("state = %v, want created", p.State())
	}
}

func TestObject_SaveRequiresRoot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := Create(context.Background(), f.env, projectDef)

	err := mustChild(t, p, "note").Save(context.Background())
	if !errors.Is(err, domain.ErrMethod) {
		t.Fatalf("child Save() error = %v, want ErrMethod", err)
	}
}

func TestObject_DtoRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := fetchProject(t, f)

	dto, err := p.ToDto()
	if err != nil {
		t.Fatalf("ToDto() error = %v", err)
	}
	want := ports.DTO{
		"id": int64(1), "name": "Alpha", "budget": 2.5,
		"note": ports.DTO{"text": "hello"},
		"tasks": []ports.DTO{
			{"id": int64(10), "project_id": int64(1), "title": "first", "done": false},
			{"id": int64(11), "project_id": int64(1), "title": "second", "done": true},
		},
	}
	if diff := cmp.Diff(want, dto); diff != "" {
		t.Fatalf("ToDto() mismatch (-want +got):\n%s", diff)
	}

	q, _ := newObject(f.env, projectDef, nil)
	if err := q.FromDto(dto); err != nil {
		t.Fatalf("FromDto() error = %v", err)
	}
	again, _ := q.ToDto()
	if diff := cmp.Diff(dto, again); diff != "" {
		t.Fatalf("round trip mismatch (-first +second):\n%s", diff)
	}
	if q.State() != state.None {
		t.Errorf("FromDto changed root state to %v", q.State())
	}
}

func TestObject_CtoHonorsFlags(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("account", EditableRootObject, WithProperties(
		property.MustNew("id", datatype.Integer, property.WithFlags(property.Key|property.ReadOnly)),
		property.MustNew("secret", datatype.Text, property.WithFlags(property.NotOnCto)),
		property.MustNew("display", datatype.Text, property.WithFlags(property.NotOnDto)),
	))
	o, _ := Create(context.Background(), f.env, def)
	_ = o.load("secret", "s3")
	_ = o.load("display", "Acme")

	cto, _ := o.ToCto()
	if diff := cmp.Diff(map[string]any{"id": int64(0), "display": "Acme"}, cto); diff != "" {
		t.Errorf("ToCto() mismatch (-want +got):\n%s", diff)
	}
	dto, _ := o.ToDto()
	if diff := cmp.Diff(ports.DTO{"id": int64(0), "secret": "s3"}, dto); diff != "" {
		t.Errorf("ToDto() mismatch (-want +got):\n%s", diff)
	}

	if err := o.FromCto(context.Background(), map[string]any{"id": 99, "display": "New"}); err != nil {
		t.Fatalf("FromCto() error = %v", err)
	}
	if id, _ := Value[int64](o, "id"); id != 0 {
		t.Errorf("read-only id changed to %d through FromCto", id)
	}
	if d, _ := Value[string](o, "display"); d != "New" {
		t.Errorf("display = %q, want New", d)
	}
}

func TestObject_TransferHooks(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("temp", EditableRootObject,
		WithProperties(property.MustNew("celsius", datatype.Decimal)),
		WithExtensions(Extensions{
			ToCto: func(tc *TransferContext) (map[string]any, error) {
				c, _ := tc.GetValue("celsius").(float64)
				return map[string]any{"fahrenheit": c*9/5 + 32}, nil
			},
			FromCto: func(tc *TransferContext, cto map[string]any) error {
				fh, _ := cto["fahrenheit"].(float64)
				return tc.SetValue("celsius", (fh-32)*5/9)
			},
		}),
	)
	o, _ := Create(context.Background(), f.env, def)

	if err := o.FromCto(context.Background(), map[string]any{"fahrenheit": 212.0}); err != nil {
		t.Fatalf("FromCto() error = %v", err)
	}
	if c, _ := Value[float64](o, "celsius"); c != 100 {
		t.Errorf("celsius = %v, want 100", c)
	}
	if o.State() != state.Created || !o.IsSelfDirty() {
		t.Errorf("tracked hook write: state=%v selfDirty=%v", o.State(), o.IsSelfDirty())
	}
	cto, _ := o.ToCto()
	if diff := cmp.Diff(map[string]any{"fahrenheit": 212.0}, cto); diff != "" {
		t.Errorf("ToCto() mismatch (-want +got):\n%s", diff)
	}
}

func TestObject_CustomGetterSetter(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("person", EditableRootObject, WithProperties(
		property.MustNew("first", datatype.Text),
		property.MustNew("last", datatype.Text),
		property.MustNew("full", datatype.Text,
			property.WithGetter(func(c *property.Context) any {
				return c.GetValue("first").(string) + " " + c.GetValue("last").(string)
			}),
			property.WithSetter(func(c *property.Context, v any) (bool, error) {
				s, _ := v.(string)
				first, last, _ := strings.Cut(s, " ")
				a, err := c.SetValue("first", first)
				if err != nil {
					return false, err
				}
				b, err := c.SetValue("last", last)
				return a || b, err
			}),
		),
	))
	o, _ := Create(context.Background(), f.env, def)

	if err := o.Set("full", "Ada Lovelace"); err != nil {
		t.Fatalf("Set(full) error = %v", err)
	}
	if got, _ := Value[string](o, "full"); got != "Ada Lovelace" {
		t.Errorf("full = %q", got)
	}
	if got, _ := Value[string](o, "last"); got != "Lovelace" {
		t.Errorf("last = %q", got)
	}
}

func TestValue_TypeMismatch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := fetchProject(t, f)

	if _, err := Value[string](p, "budget"); !errors.Is(err, domain.ErrDataType) {
		t.Fatalf("Value[string](budget) error = %v, want ErrDataType", err)
	}
	if _, err := Value[string](p, "missing"); !errors.Is(err, domain.ErrProperty) {
		t.Fatalf("Value(missing) error = %v, want ErrProperty", err)
	}
}

func TestObject_EventsBracketSave(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	def := MustDefine("memo", EditableRootObject, WithProperties(property.MustNew("text", datatype.Text)))
	dao := f.dao(t, "memo")

	var got []event.Name
	f.env.Events = event.Subscriptions{}
	for _, n := range []event.Name{event.PreSave, event.PreInsert, event.PostInsert, event.PostSave} {
		f.env.Events.Add(n, func(_ context.Context, e event.Event) { got = append(got, e.Name) })
	}

	o, _ := Create(ctx, f.env, def)
	_ = o.Set("text", "hi")
	f.expectCommit()
	dao.EXPECT().Insert(mock.Anything, f.conn, mock.Anything).Return(nil, nil).Once()

	if err := o.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := []event.Name{event.PreSave, event.PreInsert, event.PostInsert, event.PostSave}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestObject_DeniedCreateIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("guarded", EditableRootObject,
		WithProperties(property.MustNew("x", datatype.Text)),
		WithRules(rules.IsInRole(rules.CreateObject, "", "admin", "")),
	)
	var events int
	f.env.Events = event.Subscriptions{}
	f.env.Events.Add(event.PreCreate, func(context.Context, event.Event) { events++ })

	o, err := Create(context.Background(), f.env, def)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if o.State() != state.None || events != 0 {
		t.Fatalf("state=%v events=%d, want none/0", o.State(), events)
	}
	o.CheckRules()
	if n := len(o.BrokenRules().Notices(string(rules.CreateObject))); n != 1 {
		t.Errorf("createObject notices = %d, want 1", n)
	}
}
