package handler

import (
	"time"

	"github.com/rezkam/daily/internal/domain"
	"github.com/rezkam/daily/internal/ptr"
)

// TaskDTO is the API representation of a task.
type TaskDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *string    `json:"dueDate,omitempty"`
	Comments    []string   `json:"comments"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task TaskDTO `json:"task"`
}

// ListTasksResponse is returned by GET /v1/tasks.
type ListTasksResponse struct {
	Tasks    []TaskDTO       `json:"tasks"`
	Counters domain.Counters `json:"counters"`
}

// CalendarDay is one day of a month view.
type CalendarDay struct {
	Date  string    `json:"date"`
	Tasks []TaskDTO `json:"tasks"`
}

// CalendarResponse is returned by GET /v1/calendar.
type CalendarResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// ImportResponse is returned by POST /v1/import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// CreateTaskRequest is the body of POST /v1/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
}

// TaskFields carries the values of a partial update.
type TaskFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status"`
}

// UpdateTaskRequest is the body of PATCH /v1/tasks/{id}.
// Without an update mask every non-null field in Task is applied.
type UpdateTaskRequest struct {
	Task       *TaskFields `json:"task"`
	UpdateMask []string    `json:"update_mask"`
}

// SetStatusRequest is the body of PUT /v1/tasks/{id}/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// AddCommentRequest is the body of POST /v1/tasks/{id}/comments.
type AddCommentRequest struct {
	Text string `json:"text"`
}

// MapTaskToDTO converts domain.Task to TaskDTO.
func MapTaskToDTO(t domain.Task) TaskDTO {
	dto := TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Completed:   t.Completed(),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Comments:    t.Comments,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
	if dto.Comments == nil {
		dto.Comments = []string{}
	}
	if t.DueDate != nil {
		s := t.DueDate.String()
		dto.DueDate = &s
	}
	return dto
}

// MapTasksToDTO converts a collection, never returning nil.
func MapTasksToDTO(tasks []domain.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i := range tasks {
		out[i] = MapTaskToDTO(tasks[i])
	}
	return out
}

// toUpdateParams builds domain params from a PATCH body. Value parsing
// errors are domain validation errors.
func toUpdateParams(id string, req UpdateTaskRequest) (domain.UpdateTaskParams, error) {
	fields := req.Task
	if fields == nil {
		fields = &TaskFields{}
	}

	mask := req.UpdateMask
	if len(mask) == 0 {
		mask = providedFields(fields)
	}

	params := domain.UpdateTaskParams{
		TaskID:      id,
		UpdateMask:  mask,
		Title:       fields.Title,
		Description: fields.Description,
	}

	// A masked but absent priority or category resets it to the default.
	if params.Has(domain.FieldPriority) {
		p, err := domain.NewPriority(ptr.Deref(fields.Priority, ""))
		if err != nil {
			return params, err
		}
		params.Priority = &p
	}
	if params.Has(domain.FieldCategory) {
		c, err := domain.NewCategory(ptr.Deref(fields.Category, ""))
		if err != nil {
			return params, err
		}
		params.Category = &c
	}
	if params.Has(domain.FieldStatus) && fields.Status != nil {
		st, err := domain.NewStatus(*fields.Status)
		if err != nil {
			return params, err
		}
		params.Status = &st
	}
	if params.Has(domain.FieldDueDate) && fields.DueDate != nil {
		d, err := domain.NewDueDatePtr(*fields.DueDate)
		if err != nil {
			return params, err
		}
		params.DueDate = d
	}

	return params, nil
}

func providedFields(f *TaskFields) []string {
	var mask []string
	if f.Title != nil {
		mask = append(mask, domain.FieldTitle)
	}
	if f.Description != nil {
		mask = append(mask, domain.FieldDescription)
	}
	if f.Priority != nil {
		mask = append(mask, domain.FieldPriority)
	}
	if f.Category != nil {
		mask = append(mask, domain.FieldCategory)
	}
	if f.DueDate != nil {
		mask = append(mask, domain.FieldDueDate)
	}
	if f.Status != nil {
		mask = append(mask, domain.FieldStatus)
	}
	return mask
}
