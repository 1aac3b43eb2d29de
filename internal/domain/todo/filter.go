package todo

import "github.com/jsamuelsen11/go-business-objects/internal/domain"

// Matcher returns the predicate a stored todo row must satisfy for f.
func Matcher(f domain.TodoFilter) func(row map[string]any) bool {
	return func(row map[string]any) bool {
		if f.Status != "" && row[FieldStatus] != f.Status.String() {
			return false
		}
		if f.Category != "" && row[FieldCategory] != f.Category.String() {
			return false
		}
		if f.ProjectID != nil {
			id, ok := row[FieldProjectID].(int64)
			if !ok || id != *f.ProjectID {
				return false
			}
		}
		return true
	}
}
