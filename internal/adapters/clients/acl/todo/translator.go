package todo

import (
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	domtodo "github.com/jsamuelsen11/go-business-objects/internal/domain/todo"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// DTO converts t to the todo's persistence shape. An ungrouped todo has a
// nil project_id; unparsable timestamps are left out.
func (t *Todo) DTO() ports.DTO {
	dto := ports.DTO{
		domtodo.FieldID:          t.ID,
		domtodo.FieldProjectID:   nil,
		domtodo.FieldTitle:       t.Title,
		domtodo.FieldDescription: t.Description,
		domtodo.FieldStatus:      t.Status,
		domtodo.FieldCategory:    t.Category,
		domtodo.FieldProgress:    t.ProgressPercent,
	}
	if t.GroupID != nil {
		dto[domtodo.FieldProjectID] = *t.GroupID
	}
	for field, raw := range map[string]string{domtodo.FieldCreatedAt: t.CreatedAt, domtodo.FieldUpdatedAt: t.UpdatedAt} {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			dto[field] = ts
		}
	}
	return dto
}

// DTOs converts every todo in l.
func (l List) DTOs() []ports.DTO {
	out := make([]ports.DTO, len(l.Todos))
	for i := range l.Todos {
		out[i] = l.Todos[i].DTO()
	}
	return out
}

// NewCreateRequest builds the create body from a todo DTO.
func NewCreateRequest(dto ports.DTO) CreateRequest {
	progress, _ := persistence.Int(dto, domtodo.FieldProgress)
	return CreateRequest{
		Title:           persistence.Text(dto, domtodo.FieldTitle),
		Description:     persistence.Text(dto, domtodo.FieldDescription),
		Status:          persistence.Text(dto, domtodo.FieldStatus),
		Category:        persistence.Text(dto, domtodo.FieldCategory),
		ProgressPercent: progress,
		GroupID:         groupOf(dto),
	}
}

// NewUpdateRequest builds an update body that sets every field, so the
// stored todo ends up equal to dto.
func NewUpdateRequest(dto ports.DTO) UpdateRequest {
	text := func(field string) *string {
		v := persistence.Text(dto, field)
		return &v
	}
	progress, _ := persistence.Int(dto, domtodo.FieldProgress)
	return UpdateRequest{
		Title:           text(domtodo.FieldTitle),
		Description:     text(domtodo.FieldDescription),
		Status:          text(domtodo.FieldStatus),
		Category:        text(domtodo.FieldCategory),
		ProgressPercent: &progress,
		GroupID:         groupOf(dto),
	}
}

func groupOf(dto ports.DTO) *int64 {
	if dto[domtodo.FieldProjectID] == nil {
		return nil
	}
	id, err := persistence.Int(dto, domtodo.FieldProjectID)
	if err != nil {
		return nil
	}
	return &id
}
