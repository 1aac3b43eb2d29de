package project

import (
	"time"

	"github.com/jsamuelsen11/go-business-objects/internal/adapters/persistence"
	domproject "github.com/jsamuelsen11/go-business-objects/internal/domain/project"
	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

// DTO converts g to the project's persistence shape. Timestamps that are
// not RFC 3339 are left out.
func (g Group) DTO() ports.DTO {
	dto := ports.DTO{
		domproject.FieldID:          g.ID,
		domproject.FieldName:        g.Name,
		domproject.FieldDescription: g.Description,
	}
	if t, err := time.Parse(time.RFC3339, g.CreatedAt); err == nil {
		dto[domproject.FieldCreatedAt] = t
	}
	if t, err := time.Parse(time.RFC3339, g.UpdatedAt); err == nil {
		dto[domproject.FieldUpdatedAt] = t
	}
	return dto
}

// DTOs converts every group in l.
func (l List) DTOs() []ports.DTO {
	out := make([]ports.DTO, 0, len(l.Groups))
	for _, g := range l.Groups {
		out = append(out, g.DTO())
	}
	return out
}

func NewCreateRequest(dto ports.DTO) CreateRequest {
	return CreateRequest{
		Name:        persistence.Text(dto, domproject.FieldName),
		Description: persistence.Text(dto, domproject.FieldDescription),
	}
}

// NewUpdateRequest sets both fields, replacing the stored group.
func NewUpdateRequest(dto ports.DTO) UpdateRequest {
	name := persistence.Text(dto, domproject.FieldName)
	desc := persistence.Text(dto, domproject.FieldDescription)
	return UpdateRequest{Name: &name, Description: &desc}
}
