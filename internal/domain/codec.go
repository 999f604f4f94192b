package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// taskRecord is the wire shape of a task in the persisted JSON array and in
// exports. Field names match what earlier versions of the app wrote, so
// old blobs keep loading.
type taskRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      *string  `json:"status,omitempty"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"`
	Category    string   `json:"category"`
	DueDate     string   `json:"dueDate,omitempty"`
	Comments    []string `json:"comments"`
	CreatedAt   millis   `json:"createdAt"`
	CompletedAt *millis  `json:"completedAt,omitempty"`
}

// millis is a timestamp encoded as milliseconds since the Unix epoch.
// Decoding tolerates fractional values.
type millis int64

func (m millis) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(m), 10), nil
}

func (m *millis) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	f = math.Round(f)
	// float64(math.MaxInt64) rounds up to 2^63, which no int64 holds.
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("timestamp %s out of range", b)
	}
	*m = millis(f)
	return nil
}

func (m millis) time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

func toMillis(t time.Time) millis {
	return millis(t.UnixMilli())
}

// EncodeTasks serializes a collection as the persisted JSON array.
// An empty or nil collection encodes as [].
func EncodeTasks(tasks []Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for i := range tasks {
		records = append(records, toRecord(&tasks[i]))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// EncodeTask serializes a single task in the persisted record format.
func EncodeTask(t Task) ([]byte, error) {
	data, err := json.Marshal(toRecord(&t))
	if err != nil {
		return nil, fmt.Errorf("failed to encode task: %w", err)
	}
	return data, nil
}

func toRecord(t *Task) taskRecord {
	status := string(t.Status)
	rec := taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      &status,
		Completed:   t.Completed(),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Comments:    t.Comments,
		CreatedAt:   toMillis(t.CreatedAt),
	}
	if rec.Comments == nil {
		rec.Comments = []string{}
	}
	if t.DueDate != nil {
		rec.DueDate = t.DueDate.String()
	}
	if t.CompletedAt != nil {
		ms := toMillis(*t.CompletedAt)
		rec.CompletedAt = &ms
	}
	return rec
}

// DecodeResult is the outcome of decoding a persisted collection.
type DecodeResult struct {
	Tasks   []Task
	Skipped int // records dropped because they could not be repaired
}

// DecodeTasks parses a persisted JSON array, repairing records written by
// older versions:
//   - missing status is derived from the legacy completed flag
//   - missing comments become an empty list
//   - unknown priority or category fall back to the defaults
//   - an unparseable due date is dropped
//   - an expired record without a usable due date reopens as pending
//   - completedAt is reconciled with the status
//   - a missing id is replaced with newID()
//
// Records without a title, with a duplicate id, or of the wrong shape are
// skipped. An error is returned only when data is not a JSON array
// (JSON null included).
func DecodeTasks(data []byte, newID func() (string, error)) (DecodeResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DecodeResult{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if raw == nil {
		return DecodeResult{}, fmt.Errorf("%w: not a JSON array", ErrInvalidBackup)
	}

	result := DecodeResult{Tasks: make([]Task, 0, len(raw))}
	seen := make(map[string]struct{}, len(raw))

	for _, item := range raw {
		var rec taskRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			result.Skipped++
			continue
		}

		task, ok := fromRecord(rec)
		if !ok {
			result.Skipped++
			continue
		}

		if task.ID == "" {
			id, err := newID()
			if err != nil {
				return DecodeResult{}, fmt.Errorf("failed to generate id: %w", err)
			}
			task.ID = id
		}
		if _, dup := seen[task.ID]; dup {
			result.Skipped++
			continue
		}
		seen[task.ID] = struct{}{}

		result.Tasks = append(result.Tasks, task)
	}

	return result, nil
}

func fromRecord(rec taskRecord) (Task, bool) {
	title, err := NewTitle(rec.Title)
	if err != nil {
		return Task{}, false
	}

	task := Task{
		ID:          rec.ID,
		Title:       title.String(),
		Description: rec.Description,
		Comments:    rec.Comments,
		CreatedAt:   rec.CreatedAt.time(),
	}
	if task.Comments == nil {
		task.Comments = []string{}
	}

	task.Status = StatusPending
	if rec.Completed {
		task.Status = StatusCompleted
	}
	if rec.Status != nil {
		if status, err := NewStatus(*rec.Status); err == nil {
			task.Status = status
		}
	}

	if task.Priority, err = NewPriority(rec.Priority); err != nil {
		task.Priority = DefaultPriority
	}
	if task.Category, err = NewCategory(rec.Category); err != nil {
		task.Category = DefaultCategory
	}

	if rec.DueDate != "" {
		if due, err := ParseDueDate(rec.DueDate); err == nil {
			task.DueDate = &due
		}
	}
	if task.Status == StatusExpired && task.DueDate == nil {
		task.Status = StatusPending
	}

	if task.Status == StatusCompleted {
		stamp := task.CreatedAt
		if rec.CompletedAt != nil {
			stamp = rec.CompletedAt.time()
		}
		task.CompletedAt = &stamp
	}

	return task, true
}
