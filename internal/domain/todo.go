package domain

import "slices"

// TodoStatus is a todo's place in its workflow.
type TodoStatus string

// TodoCategory groups todos for filtering.
type TodoCategory string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusDone       TodoStatus = "done"

	CategoryPersonal TodoCategory = "personal"
	CategoryWork     TodoCategory = "work"
	CategoryOther    TodoCategory = "other"
)

var (
	todoStatuses   = []TodoStatus{StatusPending, StatusInProgress, StatusDone}
	todoCategories = []TodoCategory{CategoryPersonal, CategoryWork, CategoryOther}
)

func (s TodoStatus) IsValid() bool    { return slices.Contains(todoStatuses, s) }
func (s TodoStatus) String() string   { return string(s) }
func (c TodoCategory) IsValid() bool  { return slices.Contains(todoCategories, c) }
func (c TodoCategory) String() string { return string(c) }

// TodoStatuses lists the accepted status values in workflow order.
func TodoStatuses() []string { return names(todoStatuses) }

// TodoCategories lists the accepted category values.
func TodoCategories() []string { return names(todoCategories) }

func names[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// TodoFilter holds the criteria of a todo search. Zero-value fields mean
// "no filter" for that dimension.
type TodoFilter struct {
	Status    TodoStatus
	Category  TodoCategory
	ProjectID *int64
}
