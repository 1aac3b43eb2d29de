package todo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jsamuelsen11/go-business-objects/internal/ports"
)

func ptrInt64(v int64) *int64 { return &v }

func TestTodo_DTO(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		dto  Todo
		want ports.DTO
	}{
		{
			name: "grouped todo",
			dto: Todo{
				ID: 42, Title: "Buy groceries", Description: "Milk, eggs, bread",
				Status: "pending", Category: "personal", ProgressPercent: 25,
				GroupID:   ptrInt64(7),
				CreatedAt: "2026-02-12T15:04:05Z", UpdatedAt: "2026-02-12T15:04:05Z",
			},
			want: ports.DTO{
				"id": int64(42), "project_id": int64(7), "title": "Buy groceries",
				"description": "Milk, eggs, bread", "status": "pending", "category": "personal",
				"progress_percent": int64(25), "created_at": stamp, "updated_at": stamp,
			},
		},
		{
			name: "ungrouped todo without timestamps",
			dto:  Todo{ID: 1, Title: "t", Status: "done", Category: "work", ProgressPercent: 100},
			want: ports.DTO{
				"id": int64(1), "project_id": nil, "title": "t", "description": "",
				"status": "done", "category": "work", "progress_percent": int64(100),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.dto.DTO()); diff != "" {
				t.Errorf("DTO() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_DTOs(t *testing.T) {
	t.Parallel()

	got := List{Todos: []Todo{{ID: 1}, {ID: 2}}, Count: 2}.DTOs()
	if len(got) != 2 || got[1]["id"] != int64(2) {
		t.Errorf("DTOs() = %v", got)
	}
}

func TestNewCreateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dto  ports.DTO
		want CreateRequest
	}{
		{
			name: "maps project_id to group_id",
			dto: ports.DTO{
				"title": "Write", "description": "report", "status": "pending",
				"category": "work", "progress_percent": int64(10), "project_id": int64(3),
			},
			want: CreateRequest{
				Title: "Write", Description: "report", Status: "pending",
				Category: "work", ProgressPercent: 10, GroupID: ptrInt64(3),
			},
		},
		{
			name: "nil project_id stays ungrouped",
			dto:  ports.DTO{"title": "Loose", "project_id": nil},
			want: CreateRequest{Title: "Loose"},
		},
		{
			name: "json numbers convert",
			dto:  ports.DTO{"title": "n", "progress_percent": float64(50), "project_id": float64(9)},
			want: CreateRequest{Title: "n", ProgressPercent: 50, GroupID: ptrInt64(9)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, NewCreateRequest(tt.dto)); diff != "" {
				t.Errorf("NewCreateRequest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewUpdateRequest_SetsEveryField(t *testing.T) {
	t.Parallel()

	got := NewUpdateRequest(ports.DTO{
		"title": "a", "description": "b", "status": "done", "category": "other",
		"progress_percent": int64(100), "project_id": int64(2),
	})
	if got.Title == nil || got.Description == nil || got.Status == nil || got.Category == nil || got.ProgressPercent == nil {
		t.Fatalf("NewUpdateRequest() left fields unset: %+v", got)
	}
	if *got.Status != "done" || *got.ProgressPercent != 100 {
		t.Errorf("status/progress = %s/%d, want done/100", *got.Status, *got.ProgressPercent)
	}
	if got.GroupID == nil || *got.GroupID != 2 {
		t.Errorf("GroupID = %v, want 2", got.GroupID)
	}
}
