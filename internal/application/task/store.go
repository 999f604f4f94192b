// Package task owns the authoritative in-memory task collection.
//
// A Store is hydrated once from its Persistence and writes the whole
// collection back after every mutating call. Validation, not-found and
// out-of-range failures leave the collection untouched. Failed writes never
// roll back a mutation; they are reported as *domain.PersistenceWarning.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/rezkam/daily/internal/domain"
)

const defaultSaveTimeout = 5 * time.Second

// Persistence loads and saves the whole collection.
type Persistence interface {
	Load(ctx context.Context, newID func() (string, error)) ([]domain.Task, error)
	Save(ctx context.Context, tasks []domain.Task) error
}

// Snapshot is a point-in-time copy of the collection, most recent first.
type Snapshot struct {
	Tasks    []domain.Task
	Counters domain.Counters
}

// Store serializes every operation behind one mutex.
type Store struct {
	mu    sync.Mutex
	tasks []domain.Task

	persistence   Persistence
	now           func() time.Time
	newID         func() (string, error)
	loc           *time.Location
	onWarning     func(context.Context, *domain.PersistenceWarning)
	saveTimeout   time.Duration
	meterProvider metric.MeterProvider
	metrics       *storeMetrics
}

// NewStore hydrates a store from persistence.
// A missing or malformed stored collection yields an empty store; only a
// failure to reach the backend is returned.
func NewStore(ctx context.Context, persistence Persistence, opts ...Option) (*Store, error) {
	s := &Store{
		persistence: persistence,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       newUUID,
		loc:         time.Local,
		saveTimeout: defaultSaveTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.meterProvider == nil {
		s.meterProvider = otel.GetMeterProvider()
	}

	m, err := newStoreMetrics(s.meterProvider, s)
	if err != nil {
		return nil, err
	}
	s.metrics = m

	tasks, err := persistence.Load(ctx, s.newID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	s.tasks = tasks

	slog.InfoContext(ctx, "task store hydrated", "tasks", len(tasks))
	return s, nil
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Location returns the zone used for due dates without an offset.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Now reads the store clock in the store's location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// Create validates params and inserts a new pending task at the head of the
// collection. Empty priority and category take the defaults.
func (s *Store) Create(ctx context.Context, params domain.CreateTaskParams) (domain.Task, error) {
	title, err := domain.NewTitle(params.Title)
	if err != nil {
		return domain.Task{}, err
	}
	priority, err := domain.NewPriority(params.Priority)
	if err != nil {
		return domain.Task{}, err
	}
	category, err := domain.NewCategory(params.Category)
	if err != nil {
		return domain.Task{}, err
	}
	dueDate, err := domain.NewDueDatePtr(params.DueDate)
	if err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to generate id: %w", err)
	}

	t := domain.Task{
		ID:          id,
		Title:       title.String(),
		Description: params.Description,
		Status:      domain.StatusPending,
		Priority:    priority,
		Category:    category,
		DueDate:     dueDate,
		Comments:    []string{},
		CreatedAt:   s.now(),
	}
	s.tasks = slices.Insert(s.tasks, 0, t)

	s.commit(ctx, OpCreate)
	return t.Clone(), nil
}

// Delete removes the task with id. An absent id is not an error; the
// collection is still written once.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}

	s.commit(ctx, OpDelete)
	return nil
}

// SetStatus moves a task to status. Entering completed stamps completedAt,
// re-completing keeps the original stamp and any other status clears it.
// Only a task with a due date can be marked expired.
func (s *Store) SetStatus(ctx context.Context, id string, status domain.Status) (domain.Task, error) {
	if !slices.Contains(domain.Statuses, status) {
		return domain.Task{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	if status == domain.StatusExpired && s.tasks[i].DueDate == nil {
		return domain.Task{}, domain.ErrExpiredWithoutDueDate
	}

	s.tasks[i].ApplyStatus(status, s.now())

	s.commit(ctx, OpSetStatus)
	return s.tasks[i].Clone(), nil
}

// ToggleComplete sends a completed task back to pending and completes
// anything else, including expired tasks.
func (s *Store) ToggleComplete(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}

	next := domain.StatusCompleted
	if s.tasks[i].Completed() {
		next = domain.StatusPending
	}
	s.tasks[i].ApplyStatus(next, s.now())

	s.commit(ctx, OpSetStatus)
	return s.tasks[i].Clone(), nil
}

// UpdateFields applies every field named in the update mask. The whole
// update is validated before anything changes, including that an expired
// task keeps a due date.
func (s *Store) UpdateFields(ctx context.Context, params domain.UpdateTaskParams) (domain.Task, error) {
	if err := params.Validate(); err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(params.TaskID)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, params.TaskID)
	}

	t := s.tasks[i]
	if params.Has(domain.FieldTitle) {
		t.Title = *params.Title
	}
	if params.Has(domain.FieldDescription) {
		t.Description = *params.Description
	}
	if params.Has(domain.FieldPriority) {
		t.Priority = *params.Priority
	}
	if params.Has(domain.FieldCategory) {
		t.Category = *params.Category
	}
	if params.Has(domain.FieldDueDate) {
		if params.DueDate == nil {
			t.DueDate = nil
		} else {
			d := *params.DueDate
			t.DueDate = &d
		}
	}
	if params.Has(domain.FieldStatus) {
		t.ApplyStatus(*params.Status, s.now())
	}
	if t.Status == domain.StatusExpired && t.DueDate == nil {
		return domain.Task{}, domain.ErrExpiredWithoutDueDate
	}
	s.tasks[i] = t

	s.commit(ctx, OpUpdate)
	return t.Clone(), nil
}

// AddComment appends a trimmed, non-empty comment.
func (s *Store) AddComment(ctx context.Context, id, text string) (domain.Task, error) {
	comment, err := domain.NewCommentText(text)
	if err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}

	s.tasks[i].Comments = append(s.tasks[i].Comments, comment)

	s.commit(ctx, OpAddComment)
	return s.tasks[i].Clone(), nil
}

// RemoveComment deletes the comment at index, shifting later comments left.
// An unknown task is reported before an invalid index.
func (s *Store) RemoveComment(ctx context.Context, id string, index int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}

	comments := s.tasks[i].Comments
	if index < 0 || index >= len(comments) {
		return domain.Task{}, fmt.Errorf("%w: index %d, task has %d", domain.ErrCommentOutOfRange, index, len(comments))
	}
	s.tasks[i].Comments = slices.Delete(comments, index, index+1)

	s.commit(ctx, OpRemoveComment)
	return s.tasks[i].Clone(), nil
}

// Clear empties the collection and writes an empty array.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []domain.Task{}

	s.commit(ctx, OpClear)
	return nil
}

// Snapshot returns a deep copy of the collection and fresh counters.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Tasks:    domain.CloneTasks(s.tasks),
		Counters: domain.CountTasks(s.tasks),
	}
}

// Get returns a copy of one task.
func (s *Store) Get(id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return s.tasks[i].Clone(), nil
}

// Export serializes the collection in the persisted format.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := domain.EncodeTasks(s.tasks)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "collection exported", "tasks", len(s.tasks), "bytes", len(data))
	return data, nil
}

// Import replaces the collection with a backup produced by Export.
// Records are repaired the same way as on load. Input that is not a JSON
// array fails with domain.ErrInvalidBackup and changes nothing.
func (s *Store) Import(ctx context.Context, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := domain.DecodeTasks(data, s.newID)
	if err != nil {
		return 0, err
	}
	if result.Skipped > 0 {
		slog.WarnContext(ctx, "import skipped unreadable records", "skipped", result.Skipped)
	}

	s.tasks = result.Tasks

	s.commit(ctx, OpImport)
	return len(result.Tasks), nil
}

// ExpireOverdue moves every open task whose deadline is strictly before now
// to expired, in one batch. The collection is written only when at least
// one task changed. Returns the ids that transitioned.
func (s *Store) ExpireOverdue(ctx context.Context, now time.Time) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for i := range s.tasks {
		if s.tasks[i].ExpireIfOverdue(now, s.loc) {
			expired = append(expired, s.tasks[i].ID)
		}
	}

	if len(expired) > 0 {
		s.metrics.recordExpired(ctx, len(expired))
		s.commit(ctx, OpExpire)
	}
	return expired, nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID == id })
}

// commit records the mutation and writes the collection. Must hold s.mu.
func (s *Store) commit(ctx context.Context, op string) {
	s.metrics.recordMutation(ctx, op)

	// The in-memory change is already applied, so the write outlives a
	// cancelled caller.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
	defer cancel()

	if err := s.persistence.Save(saveCtx, s.tasks); err != nil {
		warning := &domain.PersistenceWarning{Op: op, Err: err}
		slog.WarnContext(ctx, "Failed to persist tasks, keeping in-memory state",
			"op", op,
			"tasks", len(s.tasks),
			"error", err)
		s.metrics.recordPersistFailure(ctx, op)
		if s.onWarning != nil {
			s.onWarning(ctx, warning)
		}
	}
}
