package domain

import "testing"

func TestTodoValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{value: "pending", valid: true},
		{value: "in_progress", valid: true},
		{value: "done", valid: true},
		{value: "work", valid: true},
		{value: "personal", valid: true},
		{value: "Done", valid: false},
		{value: "", valid: false},
	}
	for _, tt := range tests {
		got := TodoStatus(tt.value).IsValid() || TodoCategory(tt.value).IsValid()
		if got != tt.valid {
			t.Errorf("%q valid = %v, want %v", tt.value, got, tt.valid)
		}
	}

	if got := TodoStatuses(); len(got) != 3 || got[0] != "pending" || got[2] != "done" {
		t.Errorf("TodoStatuses() = %v, want workflow order", got)
	}
	if got := TodoCategories(); len(got) != 3 {
		t.Errorf("TodoCategories() = %v, want 3 values", got)
	}
}
