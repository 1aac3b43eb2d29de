package property_test

import (
	"errors"
	"testing"

	"github.com/jsamuelsen11/go-business-objects/internal/domain"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/datatype"
	"github.com/jsamuelsen11/go-business-objects/internal/domain/property"
)

func TestStore_InitValueDefaults(t *testing.T) {
	t.Parallel()

	name := property.MustNew("name", datatype.Text)
	count := property.MustNew("count", datatype.Integer)

	s := property.NewStore()
	if err := s.InitValue(name); err != nil {
		t.Fatalf("InitValue(name) error: %v", err)
	}
	if err := s.InitValue(count, 5); err != nil {
		t.Fatalf("InitValue(count, 5) error: %v", err)
	}

	if got := s.GetValue(name); got != "" {
		t.Errorf("GetValue(name) = %#v, want empty string", got)
	}
	if got := s.GetValue(count); got != int64(5) {
		t.Errorf("GetValue(count) = %#v, want int64(5)", got)
	}
}

func TestStore_SetValueReportsChange(t *testing.T) {
	t.Parallel()

	name := property.MustNew("name", datatype.Text)
	s := property.NewStore()
	if err := s.InitValue(name, "a"); err != nil {
		t.Fatalf("InitValue error: %v", err)
	}

	tests := []struct {
		value   any
		changed bool
	}{
		{value: "a", changed: false},
		{value: "b", changed: true},
		{value: "b", changed: false},
		{value: nil, changed: true},
		{value: nil, changed: false},
	}

	for i, tt := range tests {
		changed, err := s.SetValue(name, tt.value)
		if err != nil {
			t.Fatalf("step %d: SetValue(%v) error: %v", i, tt.value, err)
		}
		if changed != tt.changed {
			t.Errorf("step %d: SetValue(%v) changed = %v, want %v", i, tt.value, changed, tt.changed)
		}
		if got := s.GetValue(name); got != tt.value {
			t.Errorf("step %d: GetValue = %#v, want %#v", i, got, tt.value)
		}
	}
}

func TestStore_SetValueTypeMismatchStoresNothing(t *testing.T) {
	t.Parallel()

	count := property.MustNew("count", datatype.Integer)
	s := property.NewStore()
	if err := s.InitValue(count, 1); err != nil {
		t.Fatalf("InitValue error: %v", err)
	}

	changed, err := s.SetValue(count, "two")
	if !errors.Is(err, domain.ErrDataType) {
		t.Fatalf("SetValue(\"two\") error = %v, want ErrDataType", err)
	}
	if changed {
		t.Error("SetValue(\"two\") changed = true, want false")
	}
	if got := s.GetValue(count); got != int64(1) {
		t.Errorf("GetValue after rejected write = %#v, want int64(1)", got)
	}
}

func TestStore_ChildPropertyNotAssignable(t *testing.T) {
	t.Parallel()

	child := property.MustNewChild("items", namedModel("Items"))
	s := property.NewStore()

	if _, err := s.SetValue(child, "x"); !errors.Is(err, domain.ErrProperty) {
		t.Errorf("SetValue(child) error = %v, want ErrProperty", err)
	}
	if err := s.InitValue(child); !errors.Is(err, domain.ErrArgument) {
		t.Errorf("InitValue(child) without value error = %v, want ErrArgument", err)
	}
	if !child.IsReadOnly() {
		t.Error("child property IsReadOnly() = false, want true")
	}
}

func TestNewList_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := property.NewList(
		property.MustNew("a", datatype.Text),
		property.MustNew("a", datatype.Integer),
	)
	if !errors.Is(err, domain.ErrConstructor) {
		t.Fatalf("NewList(duplicate) error = %v, want ErrConstructor", err)
	}
}

func TestContext_CrossPropertyAccess(t *testing.T) {
	t.Parallel()

	first := property.MustNew("first", datatype.Text)
	last := property.MustNew("last", datatype.Text)
	full := property.MustNew("full", datatype.Text, property.WithGetter(func(ctx *property.Context) any {
		return ctx.GetValue("first").(string) + " " + ctx.GetValue("last").(string)
	}))
	list, err := property.NewList(first, last, full)
	if err != nil {
		t.Fatalf("NewList error: %v", err)
	}

	s := property.NewStore()
	for _, d := range list.All() {
		if err := s.InitValue(d); err != nil {
			t.Fatalf("InitValue(%s) error: %v", d.Name(), err)
		}
	}

	ctx := property.NewContext(full, list, s)
	if _, err := ctx.SetValue("first", "Ada"); err != nil {
		t.Fatalf("SetValue(first) error: %v", err)
	}
	if _, err := ctx.SetValue("last", "Lovelace"); err != nil {
		t.Fatalf("SetValue(last) error: %v", err)
	}

	if got := full.Getter()(ctx); got != "Ada Lovelace" {
		t.Errorf("getter = %q, want %q", got, "Ada Lovelace")
	}
	if _, err := ctx.SetValue("missing", 1); !errors.Is(err, domain.ErrProperty) {
		t.Errorf("SetValue(missing) error = %v, want ErrProperty", err)
	}
}

type namedModel string

func (n namedModel) Name() string { return string(n) }

func TestDefinition_ParentProperty(t *testing.T) {
	t.Parallel()

	same := property.MustNew("project_id", datatype.Integer, property.WithFlags(property.ParentKey))
	mapped := property.MustNew("project_id", datatype.Integer, property.ParentKeyOf("id"))

	if !same.IsParentKey() || same.ParentProperty() != "project_id" {
		t.Errorf("same-name parent key: IsParentKey=%v ParentProperty=%q", same.IsParentKey(), same.ParentProperty())
	}
	if !mapped.IsParentKey() || mapped.ParentProperty() != "id" {
		t.Errorf("mapped parent key: IsParentKey=%v ParentProperty=%q", mapped.IsParentKey(), mapped.ParentProperty())
	}
}
