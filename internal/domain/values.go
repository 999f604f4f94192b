package domain

// Status represents the lifecycle state of a task.
// Value object - immutable string enum.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusExpired    Status = "expired"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusExpired}

// Priority represents the priority level of a task.
// Value object - immutable string enum.
type Priority string

const (
	PriorityHigh   Priority = "Alta"
	PriorityMedium Priority = "Media"
	PriorityLow    Priority = "Baja"
)

// Priorities lists every priority from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort weight of the priority (Alta=3, Media=2, Baja=1).
// Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Category groups tasks by area of life.
// Value object - immutable string enum.
type Category string

const (
	CategoryWork     Category = "Trabajo"
	CategoryPersonal Category = "Personal"
	CategoryHome     Category = "Hogar"
	CategoryStudies  Category = "Estudios"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHome, CategoryStudies}

// Defaults applied when a creation request leaves priority or category empty.
const (
	DefaultPriority = PriorityMedium
	DefaultCategory = CategoryPersonal
)
