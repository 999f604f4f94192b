package domain

import (
	"fmt"
	"slices"

	"github.com/rezkam/daily/internal/ptr"
)

// UpdateTaskParams is a field-by-field partial update.
//
// A field is applied only when its name is in UpdateMask; the pointer carries
// the new value. DueDate is the one clearable field: naming it in the mask
// with a nil pointer removes the deadline.
type UpdateTaskParams struct {
	TaskID     string
	UpdateMask []string

	Title       *string
	Description *string
	Priority    *Priority
	Category    *Category
	DueDate     *DueDate
	Status      *Status
}

var updateTaskValidFields = map[string]struct{}{
	FieldTitle:       {},
	FieldDescription: {},
	FieldPriority:    {},
	FieldCategory:    {},
	FieldDueDate:     {},
	FieldStatus:      {},
}

// Has reports whether field is in the update mask.
func (p UpdateTaskParams) Has(field string) bool {
	return slices.Contains(p.UpdateMask, field)
}

// Validate checks that UpdateMask contains only known fields and that
// required fields have valid non-nil values when included in the mask.
// Title is normalized in place.
func (p *UpdateTaskParams) Validate() error {
	if len(p.UpdateMask) == 0 {
		return ErrEmptyUpdateMask
	}

	for _, field := range p.UpdateMask {
		if _, ok := updateTaskValidFields[field]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	if p.Has(FieldTitle) {
		if p.Title == nil {
			return ErrTitleRequired
		}
		title, err := NewTitle(*p.Title)
		if err != nil {
			return err
		}
		normalized := title.String()
		p.Title = &normalized
	}
	if p.Has(FieldDescription) && p.Description == nil {
		empty := ""
		p.Description = &empty
	}
	if p.Has(FieldPriority) {
		if p.Priority == nil || p.Priority.Rank() == 0 {
			return fmt.Errorf("%w: %q", ErrInvalidPriority, ptr.ToString(p.Priority))
		}
	}
	if p.Has(FieldCategory) {
		if p.Category == nil || !slices.Contains(Categories, *p.Category) {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, ptr.ToString(p.Category))
		}
	}
	if p.Has(FieldStatus) {
		if p.Status == nil || !slices.Contains(Statuses, *p.Status) {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, ptr.ToString(p.Status))
		}
	}

	return nil
}
