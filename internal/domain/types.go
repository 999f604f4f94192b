package domain

// CreateTaskParams is the field bundle accepted when creating a task.
// Values are raw user input; the task store validates them.
//
// Empty Priority and Category fall back to DefaultPriority and
// DefaultCategory. Empty DueDate means no deadline.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     string
}

// Field names accepted in UpdateTaskParams.UpdateMask.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldCategory    = "category"
	FieldDueDate     = "due_date"
	FieldStatus      = "status"
)
