package model

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
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
	"github.com/jsamuelsen11/go-business-objects/mocks"
)

// An order with three independent child parts, fetched in parallel.
var (
	partDef = MustDefine("part", EditableChildObject, WithProperties(
		property.MustNew("sku", datatype.Text),
		property.MustNew("qty", datatype.Integer),
	))
	orderDef = MustDefine("order", EditableRootObject, WithProperties(
		property.MustNew("id", datatype.Integer, property.WithFlags(property.Key)),
		property.MustNewChild("a", partDef),
		property.MustNewChild("b", partDef),
		property.MustNewChild("c", partDef),
	))
)

func orderRow(bQty any) ports.DTO {
	return ports.DTO{
		"id": 5,
		"a":  ports.DTO{"sku": "A", "qty": 1},
		"b":  ports.DTO{"sku": "B", "qty": bQty},
		"c":  ports.DTO{"sku": "C", "qty": 3},
	}
}

func TestFetch_ThreeChildrenFanOut(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	dao := f.dao(t, "order")
	f.expectRead()
	dao.EXPECT().Fetch(mock.Anything, f.conn, "", 5).Return(orderRow(2), nil).Once()

	var started atomic.Int32
	f.env.Events = event.Subscriptions{}
	f.env.Events.Add(event.PreFetch, func(_ context.Context, e event.Event) {
		if e.ModelName == "part" {
			started.Add(1)
		}
	})

	o, err := Fetch(context.Background(), f.env, orderDef, 5, "")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if o.State() != state.Pristine {
		t.Fatalf("order state = %v, want pristine", o.State())
	}
	for i, name := range []string{"a", "b", "c"} {
		part := mustChild(t, o, name)
		if part.State() != state.Pristine {
			t.Errorf("part %s state = %v, want pristine", name, part.State())
		}
		if qty, _ := Value[int64](part, "qty"); qty != int64(i+1) {
			t.Errorf("part %s qty = %d, want %d", name, qty, i+1)
		}
	}
	if got := started.Load(); got != 3 {
		t.Errorf("child fetches = %d, want 3", got)
	}
}

func TestFetch_FailingChild(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	dao := f.dao(t, "order")
	f.expectRead()
	dao.EXPECT().Fetch(mock.Anything, f.conn, "", 5).Return(orderRow("lots"), nil).Once()
	rec := &fakeRecorder{}
	f.env.Recorder = rec

	o, err := Fetch(context.Background(), f.env, orderDef, 5, "")
	if err == nil {
		t.Fatal("Fetch() error = nil, want failure from part b")
	}

	var outer *domain.DataPortalError
	if !errors.As(err, &outer) || outer.ModelName != "order" || outer.Action != ActionFetch {
		t.Fatalf("outer error = %v, want order fetch DataPortalError", err)
	}
	inner, ok := outer.Inner.(*domain.DataPortalError)
	if !ok || inner.ModelName != "part" {
		t.Fatalf("inner error = %v, want part DataPortalError", outer.Inner)
	}
	var dtErr *domain.DataTypeError
	if !errors.As(err, &dtErr) || dtErr.Property != "qty" {
		t.Fatalf("root cause = %v, want DataTypeError on qty", err)
	}
	if o.State() == state.Pristine {
		t.Error("order must not be pristine after a failed child fetch")
	}
	if st := mustChild(t, o, "b").State(); st == state.Pristine {
		t.Error("failing part must not be pristine")
	}

	var failed []string
	for _, a := range rec.actions() {
		if a.failed {
			failed = append(failed, a.model)
		}
	}
	if diff := cmp.Diff([]string{"part", "order"}, failed); diff != "" {
		t.Errorf("failed recordings mismatch (-want +got):\n%s", diff)
	}
}

func TestFetch_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	dao := f.dao(t, "order")
	f.expectRead()
	dao.EXPECT().Fetch(mock.Anything, f.conn, "", 9).Return(nil, domain.ErrNotFound).Once()

	_, err := Fetch(context.Background(), f.env, orderDef, 9, "")
	if !errors.Is(err, domain.ErrNotFound) || !errors.Is(err, domain.ErrDataPortal) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound through ErrDataPortal", err)
	}
}

func TestFetch_NamedMethodUsesExecuteMethodPermission(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("archive", ReadOnlyRootObject,
		WithProperties(property.MustNew("total", datatype.Integer)),
		WithRules(rules.IsInRole(rules.ExecuteMethod, "byYear", "auditor", "")),
	)
	f.dao(t, "archive")

	// Denied: no connection, no DAO call.
	o, err := Fetch(context.Background(), f.env, def, 2024, "byYear")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	o.CheckRules()
	if n := len(o.BrokenRules().Notices("executeMethod.byYear")); n != 1 {
		t.Fatalf("executeMethod.byYear notices = %d, want 1", n)
	}
}

func TestSave_ChildFailureRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	projectDAO := f.dao(t, "project")
	noteDAO := f.dao(t, "note")
	boom := errors.New("disk full")

	p, _ := Create(ctx, f.env, projectDef)
	_ = p.Set("name", "Alpha")

	f.expectRollback()
	projectDAO.EXPECT().Insert(mock.Anything, f.conn, mock.Anything).Return(ports.DTO{"id": 3}, nil).Once()
	noteDAO.EXPECT().Insert(mock.Anything, f.conn, mock.Anything).Return(nil, boom).Once()

	err := p.Save(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("Save() error = %v, want %v", err, boom)
	}
	var dpe *domain.DataPortalError
	if !errors.As(err, &dpe) || dpe.ModelName != "project" || dpe.Action != ActionInsert {
		t.Fatalf("Save() error = %v, want project insert DataPortalError", err)
	}
	if p.State() != state.Created {
		t.Errorf("state = %v, want created after rollback", p.State())
	}
}

func TestSave_CommitFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	def := MustDefine("memo", EditableRootObject, WithProperties(property.MustNew("text", datatype.Text)))
	dao := f.dao(t, "memo")
	commitErr := errors.New("serialization failure")

	o, _ := Create(ctx, f.env, def)
	_ = o.Set("text", "x")

	f.conns.EXPECT().BeginTransaction(mock.Anything, "test").Return(f.conn, nil).Once()
	f.conns.EXPECT().CommitTransaction(mock.Anything, "test", f.conn).Return(commitErr).Once()
	dao.EXPECT().Insert(mock.Anything, f.conn, ports.DTO{"text": "x"}).Return(nil, nil).Once()

	err := o.Save(ctx)
	if !errors.Is(err, commitErr) || !errors.Is(err, domain.ErrDataPortal) {
		t.Fatalf("Save() error = %v, want wrapped commit failure", err)
	}
}

func TestSave_PostEventFollowsCommit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		commitErr error
	}{
		{name: "commit succeeds"},
		{name: "commit fails", commitErr: errors.New("serialization failure")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			ctx := context.Background()
			def := MustDefine("memo", EditableRootObject, WithProperties(property.MustNew("text", datatype.Text)))
			dao := f.dao(t, "memo")

			var (
				committed bool
				seen      []string
				postErr   error
			)
			f.env.Events = event.Subscriptions{}
			f.env.Events.Add(event.PostInsert, func(_ context.Context, e event.Event) {
				seen = append(seen, fmt.Sprintf("post committed=%v", committed))
				postErr = e.Err
			})

			o, _ := Create(ctx, f.env, def)
			_ = o.Set("text", "x")

			f.conns.EXPECT().BeginTransaction(mock.Anything, "test").Return(f.conn, nil).Once()
			f.conns.EXPECT().CommitTransaction(mock.Anything, "test", f.conn).
				Run(func(context.Context, string, ports.Connection) { committed = true }).
				Return(tt.commitErr).Once()
			dao.EXPECT().Insert(mock.Anything, f.conn, ports.DTO{"text": "x"}).Return(nil, nil).Once()

			err := o.Save(ctx)

			if diff := cmp.Diff([]string{"post committed=true"}, seen); diff != "" {
				t.Errorf("post events mismatch (-want +got):\n%s", diff)
			}
			if tt.commitErr == nil {
				if err != nil || postErr != nil {
					t.Errorf("Save() = %v, post event Err = %v, want both nil", err, postErr)
				}
				return
			}
			if !errors.Is(err, tt.commitErr) || !errors.Is(postErr, tt.commitErr) {
				t.Errorf("Save() = %v, post event Err = %v, want both to carry the commit failure", err, postErr)
			}
		})
	}
}

func TestSave_BeginFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	def := MustDefine("memo", EditableRootObject, WithProperties(property.MustNew("text", datatype.Text)))
	f.dao(t, "memo")
	down := errors.New("connection refused")

	o, _ := Create(ctx, f.env, def)
	_ = o.Set("text", "x")
	f.conns.EXPECT().BeginTransaction(mock.Anything, "test").Return(nil, down).Once()

	if err := o.Save(ctx); !errors.Is(err, down) {
		t.Fatalf("Save() error = %v, want %v", err, down)
	}
	if o.State() != state.Created {
		t.Errorf("state = %v, want created", o.State())
	}
}

func TestSave_ParentKeysCopiedToChildren(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	p, projectDAO := fetchProject(t, f)
	taskDAO := f.dao(t, "task")
	tasks := mustCollection(t, p, "tasks")

	item, err := tasks.CreateItem(ctx, -1)
	if err != nil || item == nil {
		t.Fatalf("CreateItem() = %v, %v", item, err)
	}
	_ = item.Set("title", "third")

	f.expectCommit()
	taskDAO.EXPECT().
		Insert(mock.Anything, f.conn, ports.DTO{"id": int64(0), "project_id": int64(1), "title": "third", "done": false}).
		Return(ports.DTO{"id": 12}, nil).Once()

	if err := p.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id, _ := Value[int64](item, "id"); id != 12 {
		t.Errorf("new task id = %d, want 12", id)
	}
	projectDAO.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_UsesCreator(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	def := MustDefine("ticket", EditableRootObject, WithProperties(
		property.MustNew("number", datatype.Integer),
		property.MustNew("status", datatype.Text),
	))
	creator := mocks.NewMockCreator(t)
	f.daos["ticket"] = struct {
		*mocks.MockDAO
		*mocks.MockCreator
	}{mocks.NewMockDAO(t), creator}

	f.expectRead()
	creator.EXPECT().Create(mock.Anything, f.conn).Return(ports.DTO{"number": 100, "status": "open"}, nil).Once()

	o, err := Create(context.Background(), f.env, def)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n, _ := Value[int64](o, "number"); n != 100 {
		t.Errorf("number = %d, want 100", n)
	}
	if o.State() != state.Created {
		t.Errorf("state = %v, want created", o.State())
	}
}

func TestDataHooksReplaceDAO(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var inserted ports.DTO

	def := MustDefine("counter", EditableRootObject,
		WithProperties(property.MustNew("n", datatype.Integer)),
		WithExtensions(Extensions{
			DataCreate: func(dc *DataContext) error { return dc.SetValue("n", 41) },
			DataInsert: func(dc *DataContext) error {
				inserted = ports.DTO{"n": dc.GetValue("n"), "user": dc.User().UserCode()}
				return nil
			},
		}),
	)

	f.expectRead()
	o, err := Create(ctx, f.env, def)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_ = o.Set("n", 42)

	f.expectCommit()
	if err := o.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if diff := cmp.Diff(ports.DTO{"n": int64(42), "user": "u1"}, inserted); diff != "" {
		t.Fatalf("hook saw (-want +got):\n%s", diff)
	}
}

func TestRecorderSeesEveryAction(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	rec := &fakeRecorder{}
	f.env.Recorder = rec

	_, _ = fetchProject(t, f)

	want := map[string]int{"project": 1, "note": 1, "tasks": 1, "task": 2}
	got := map[string]int{}
	for _, a := range rec.actions() {
		if a.action != ActionFetch || a.failed {
			t.Errorf("unexpected recording %+v", a)
		}
		got[a.model]++
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("recordings mismatch (-want +got):\n%s", diff)
	}
}

// A command that closes a project and reports how many tasks it closed.
var closeProjectDef = MustDefine("closeProject", CommandObject,
	WithProperties(
		property.MustNew("project_id", datatype.Integer),
		property.MustNew("closed", datatype.Integer, property.WithFlags(property.ReadOnly)),
		property.MustNewChild("summary", MustDefine("summary", ReadOnlyChildObject,
			WithProperties(property.MustNew("text", datatype.Text)),
		)),
	),
	WithRules(rules.MinValue("project_id", 1, "")),
)

func TestCommand_Execute(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	exec := mocks.NewMockExecutor(t)
	f.daos["closeProject"] = struct {
		*mocks.MockDAO
		*mocks.MockExecutor
	}{mocks.NewMockDAO(t), exec}

	cmd, err := NewCommand(f.env, closeProjectDef)
	if err != nil {
		t.Fatalf("NewCommand() error = %v", err)
	}
	if err := cmd.Set("project_id", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	f.expectCommit()
	exec.EXPECT().
		Execute(mock.Anything, f.conn, "", ports.DTO{"project_id": int64(1), "closed": int64(0)}).
		Return(ports.DTO{"closed": 4, "summary": ports.DTO{"text": "4 tasks closed"}}, nil).Once()

	if err := cmd.Execute(context.Background(), ""); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if n, _ := Value[int64](cmd, "closed"); n != 4 {
		t.Errorf("closed = %d, want 4", n)
	}
	if text, _ := Value[string](mustChild(t, cmd, "summary"), "text"); text != "4 tasks closed" {
		t.Errorf("summary = %q", text)
	}
}

func TestCommand_InvalidOrDeniedIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.daos["closeProject"] = mocks.NewMockDAO(t)

	cmd, _ := NewCommand(f.env, closeProjectDef)
	if err := cmd.Execute(context.Background(), ""); err != nil {
		t.Fatalf("Execute() on invalid command error = %v", err)
	}
	if cmd.IsValid() {
		t.Fatal("command without project_id must be invalid")
	}

	guarded := MustDefine("purge", CommandObject, WithRules(rules.IsInRole(rules.ExecuteCommand, "", "admin", "")))
	g, _ := NewCommand(f.env, guarded)
	if err := g.Execute(context.Background(), ""); err != nil {
		t.Fatalf("denied Execute() error = %v", err)
	}
}

func TestCommand_DAOWithoutExecutor(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.daos["closeProject"] = mocks.NewMockDAO(t)
	f.expectRollback()

	cmd, _ := NewCommand(f.env, closeProjectDef)
	_ = cmd.Set("project_id", 1)
	if err := cmd.Execute(context.Background(), ""); !errors.Is(err, domain.ErrMethod) {
		t.Fatalf("Execute() error = %v, want ErrMethod", err)
	}
}

func TestExecute_RequiresCommand(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p, _ := Create(context.Background(), f.env, projectDef)
	if err := p.Execute(context.Background(), ""); !errors.Is(err, domain.ErrMethod) {
		t.Fatalf("Execute() on editable root error = %v, want ErrMethod", err)
	}
}

func TestReadOnlyRootCollection_Fetch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	row := MustDefine("projectInfo", ReadOnlyChildObject, WithProperties(
		property.MustNew("id", datatype.Integer, property.WithFlags(property.Key)),
		property.MustNew("name", datatype.Text),
	))
	list := MustDefine("projectList", ReadOnlyRootCollection, WithItem(row))
	dao := f.dao(t, "projectList")
	f.expectRead()
	dao.EXPECT().Fetch(mock.Anything, f.conn, "", nil).
		Return([]ports.DTO{{"id": 1, "name": "Alpha"}, {"id": 2, "name": "Beta"}}, nil).Once()

	c, err := FetchCollection(context.Background(), f.env, list, nil, "")
	if err != nil {
		t.Fatalf("FetchCollection() error = %v", err)
	}
	if c.Count() != 2 || c.State() != state.None || c.IsDirty() {
		t.Fatalf("count=%d state=%v dirty=%v, want 2/none/false", c.Count(), c.State(), c.IsDirty())
	}
	cto, _ := c.ToCto()
	want := []map[string]any{{"id": int64(1), "name": "Alpha"}, {"id": int64(2), "name": "Beta"}}
	if diff := cmp.Diff(want, cto); diff != "" {
		t.Fatalf("ToCto() mismatch (-want +got):\n%s", diff)
	}
	first, _ := c.At(0)
	if err := first.Set("name", "x"); !errors.Is(err, domain.ErrModel) {
		t.Errorf("Set() on read-only item error = %v, want ErrModel", err)
	}
	if _, err := c.CreateItem(context.Background(), -1); !errors.Is(err, domain.ErrMethod) {
		t.Errorf("CreateItem() on read-only collection error = %v, want ErrMethod", err)
	}
}
