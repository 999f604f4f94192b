package domain

import (
	"slices"
	"time"

	"github.com/rezkam/daily/internal/ptr"
)

// Task is the single persisted entity: a trackable unit of work.
//
// Status is the only source of truth for completion. The legacy boolean is
// derived by Completed and exists only at the JSON boundary.
type Task struct {
	ID          string
	Title       string
	Description string

	Status   Status
	Priority Priority
	Category Category

	// DueDate is optional. A task without one never expires.
	DueDate *DueDate

	// Comments keep insertion order; duplicates are allowed.
	Comments []string

	CreatedAt   time.Time
	CompletedAt *time.Time // set iff Status == StatusCompleted
}

// Completed reports whether the task is in the completed state.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// ApplyStatus transitions the task and keeps CompletedAt consistent:
// entering completed stamps now, re-completing keeps the original stamp,
// leaving completed clears it.
// Returns true if anything changed.
func (t *Task) ApplyStatus(status Status, now time.Time) bool {
	changed := t.Status != status

	if status == StatusCompleted {
		if t.Status != StatusCompleted || t.CompletedAt == nil {
			stamp := now
			t.CompletedAt = &stamp
			changed = true
		}
	} else if t.CompletedAt != nil {
		t.CompletedAt = nil
		changed = true
	}

	t.Status = status
	return changed
}

// ExpireIfOverdue moves an open task with a passed deadline to expired.
// Completed and already expired tasks are never touched.
func (t *Task) ExpireIfOverdue(now time.Time, loc *time.Location) bool {
	if t.Status == StatusCompleted || t.Status == StatusExpired {
		return false
	}
	if t.DueDate == nil || !t.DueDate.OverdueAt(now, loc) {
		return false
	}
	t.Status = StatusExpired
	t.CompletedAt = nil
	return true
}

// Clone returns a deep copy safe to hand outside the owning store.
func (t Task) Clone() Task {
	c := t
	c.Comments = slices.Clone(t.Comments)
	if c.Comments == nil {
		c.Comments = []string{}
	}
	c.DueDate = ptr.Clone(t.DueDate)
	c.CompletedAt = ptr.Clone(t.CompletedAt)
	return c
}

// CloneTasks deep-copies a collection, preserving order.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// Counters are derived from a collection and never stored.
type Counters struct {
	Total     int `json:"total"`
	Completed int `json:"completedCount"`
	Pending   int `json:"pendingCount"` // Total - Completed
}

// CountTasks recomputes the counters with a direct scan.
func CountTasks(tasks []Task) Counters {
	c := Counters{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed() {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}
