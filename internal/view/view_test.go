package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/daily/internal/domain"
)

var (
	cet = time.FixedZone("CET", 3600)
	t0  = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

type taskOpt func(*domain.Task)

func withPriority(p domain.Priority) taskOpt { return func(t *domain.Task) { t.Priority = p } }
func withCategory(c domain.Category) taskOpt { return func(t *domain.Task) { t.Category = c } }
func withStatus(s domain.Status) taskOpt {
	return func(t *domain.Task) { t.ApplyStatus(s, t0) }
}
func withDue(s string) taskOpt {
	return func(t *domain.Task) {
		d, err := domain.ParseDueDate(s)
		if err != nil {
			panic(err)
		}
		t.DueDate = &d
	}
}
func createdAfter(d time.Duration) taskOpt {
	return func(t *domain.Task) { t.CreatedAt = t0.Add(d) }
}

func newTask(id string, opts ...taskOpt) domain.Task {
	t := domain.Task{
		ID:        id,
		Title:     id,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryPersonal,
		Comments:  []string{},
		CreatedAt: t0,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}

func TestParseSortField(t *testing.T) {
	assert.Equal(t, SortByPriority, ParseSortField("priority"))
	assert.Equal(t, SortByDueDate, ParseSortField("dueDate"))
	assert.Equal(t, SortByDueDate, ParseSortField("due_date"))
	assert.Equal(t, SortByTitle, ParseSortField(" Title "))
	assert.Equal(t, SortByCreatedAt, ParseSortField("createdAt"))
	assert.Equal(t, SortByCreatedAt, ParseSortField("color"))
	assert.Equal(t, SortByCreatedAt, ParseSortField(""))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Asc, ParseDirection("asc"))
	assert.Equal(t, Asc, ParseDirection("ASC"))
	assert.Equal(t, Desc, ParseDirection("desc"))
	assert.Equal(t, Desc, ParseDirection("sideways"))
	assert.Equal(t, Desc, ParseDirection(""))
}

func TestSort_PriorityDescending(t *testing.T) {
	tasks := []domain.Task{
		newTask("baja", withPriority(domain.PriorityLow)),
		newTask("alta", withPriority(domain.PriorityHigh)),
		newTask("media", withPriority(domain.PriorityMedium)),
	}

	got := Sort(tasks, SortOptions{Field: SortByPriority, Direction: Desc})

	assert.Equal(t, []string{"alta", "media", "baja"}, ids(got))
	assert.Equal(t, []string{"baja", "alta", "media"}, ids(tasks), "input untouched")
}

func TestSort_IsStable(t *testing.T) {
	tasks := []domain.Task{
		newTask("a1", withPriority(domain.PriorityHigh)),
		newTask("m1"),
		newTask("a2", withPriority(domain.PriorityHigh)),
		newTask("m2"),
		newTask("a3", withPriority(domain.PriorityHigh)),
	}

	for _, dir := range []Direction{Asc, Desc} {
		got := Sort(tasks, SortOptions{Field: SortByPriority, Direction: dir})
		var highs, mediums []string
		for _, task := range got {
			if task.Priority == domain.PriorityHigh {
				highs = append(highs, task.ID)
			} else {
				mediums = append(mediums, task.ID)
			}
		}
		assert.Equal(t, []string{"a1", "a2", "a3"}, highs, "direction %s", dir)
		assert.Equal(t, []string{"m1", "m2"}, mediums, "direction %s", dir)
	}
}

func TestSort_Idempotent(t *testing.T) {
	tasks := []domain.Task{
		newTask("a", withDue("2025-03-10"), createdAfter(3*time.Hour)),
		newTask("b", createdAfter(time.Hour)),
		newTask("c", withDue("2025-03-09T10:00"), withPriority(domain.PriorityLow)),
		newTask("d", withDue("2025-03-10"), createdAfter(2*time.Hour)),
	}

	for _, field := range SortFields {
		for _, dir := range []Direction{Asc, Desc} {
			opts := SortOptions{Field: field, Direction: dir, Location: cet}
			once := Sort(tasks, opts)
			twice := Sort(once, opts)
			assert.Equal(t, ids(once), ids(twice), "%s %s", field, dir)
		}
	}
}

func TestSort_DueDateUndatedLast(t *testing.T) {
	tasks := []domain.Task{
		newTask("none1"),
		newTask("late", withDue("2025-03-12")),
		newTask("none2"),
		newTask("early", withDue("2025-03-10T08:00")),
		newTask("mid", withDue("2025-03-10T20:00")),
	}

	asc := Sort(tasks, SortOptions{Field: SortByDueDate, Direction: Asc, Location: cet})
	assert.Equal(t, []string{"early", "mid", "late", "none1", "none2"}, ids(asc))

	desc := Sort(tasks, SortOptions{Field: SortByDueDate, Direction: Desc, Location: cet})
	assert.Equal(t, []string{"late", "mid", "early", "none1", "none2"}, ids(desc))
}

func TestSort_DueDateMixesZonedAndNaive(t *testing.T) {
	tasks := []domain.Task{
		// 09:30 UTC when read in CET.
		newTask("naive", withDue("2025-03-10T10:30")),
		newTask("zoned", withDue("2025-03-10T09:45:00Z")),
		// Midnight CET is 23:00 UTC on the 9th.
		newTask("dateOnly", withDue("2025-03-10")),
	}

	got := Sort(tasks, SortOptions{Field: SortByDueDate, Direction: Asc, Location: cet})

	assert.Equal(t, []string{"dateOnly", "naive", "zoned"}, ids(got))
}

func TestSort_CreatedAtDefault(t *testing.T) {
	tasks := []domain.Task{
		newTask("old"),
		newTask("new", createdAfter(time.Hour)),
		newTask("mid", createdAfter(time.Minute)),
	}

	got := Sort(tasks, SortOptions{})
	assert.Equal(t, []string{"new", "mid", "old"}, ids(got), "zero options mean newest first")

	got = Sort(tasks, SortOptions{Field: "unknown", Direction: Asc})
	assert.Equal(t, []string{"old", "mid", "new"}, ids(got))
}

func TestSort_TitleUsesSpanishCollation(t *testing.T) {
	titles := []string{"Zapato", "ñandú", "Nube", "árbol", "Mesa"}
	var tasks []domain.Task
	for _, title := range titles {
		tasks = append(tasks, newTask(title))
	}

	got := Sort(tasks, SortOptions{Field: SortByTitle, Direction: Asc})

	assert.Equal(t, []string{"árbol", "Mesa", "Nube", "ñandú", "Zapato"}, ids(got))
}

func TestSort_EmptyInput(t *testing.T) {
	got := Sort(nil, SortOptions{Field: SortByTitle})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseStatusFilter("ALL")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseStatusFilter("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusFilter(domain.StatusInProgress), f)

	_, err = ParseStatusFilter("done")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestFilterByStatus(t *testing.T) {
	tasks := []domain.Task{
		newTask("p1"),
		newTask("c1", withStatus(domain.StatusCompleted)),
		newTask("i1", withStatus(domain.StatusInProgress)),
		newTask("p2"),
	}

	assert.Equal(t, []string{"p1", "p2"}, ids(FilterByStatus(tasks, StatusFilter(domain.StatusPending))))
	assert.Equal(t, []string{"c1"}, ids(FilterByStatus(tasks, StatusFilter(domain.StatusCompleted))))
	assert.Empty(t, FilterByStatus(tasks, StatusFilter(domain.StatusExpired)))
	assert.Equal(t, ids(tasks), ids(FilterByStatus(tasks, FilterAll)))
}

func TestFilterOpen(t *testing.T) {
	tasks := []domain.Task{
		newTask("p"),
		newTask("c", withStatus(domain.StatusCompleted)),
		newTask("i", withStatus(domain.StatusInProgress)),
		newTask("e", withDue("2025-01-01"), withStatus(domain.StatusExpired)),
	}

	assert.Equal(t, []string{"p", "i", "e"}, ids(FilterOpen(tasks)))
}

func TestFilterByDate(t *testing.T) {
	tasks := []domain.Task{
		newTask("morning", withDue("2025-03-10T08:00")),
		newTask("undated"),
		newTask("allday", withDue("2025-03-10")),
		newTask("other", withDue("2025-03-11")),
		newTask("zoned", withDue("2025-03-10T23:30:00-05:00")),
	}

	got := FilterByDate(tasks, "2025-03-10")

	assert.Equal(t, []string{"morning", "allday", "zoned"}, ids(got), "calendar portion of the literal")
	assert.Empty(t, FilterByDate(tasks, "2025-03-12"))
}

func TestGroupByDate(t *testing.T) {
	tasks := []domain.Task{
		newTask("a", withDue("2025-03-10")),
		newTask("b", withDue("2025-03-11T09:00")),
		newTask("x"),
		newTask("c", withDue("2025-03-10T18:00")),
	}

	groups := GroupByDate(tasks)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a", "c"}, ids(groups["2025-03-10"]))
	assert.Equal(t, []string{"b"}, ids(groups["2025-03-11"]))
}

func TestDatesInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%02d", tt.year, tt.month), func(t *testing.T) {
			dates, err := DatesInMonth(tt.year, tt.month)
			require.NoError(t, err)
			require.Len(t, dates, tt.days)
			assert.Equal(t, fmt.Sprintf("%d-%02d-01", tt.year, tt.month), dates[0])
			assert.Equal(t, fmt.Sprintf("%d-%02d-%02d", tt.year, tt.month, tt.days), dates[len(dates)-1])
		})
	}

	_, err := DatesInMonth(2025, 13)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAggregate(t *testing.T) {
	tasks := []domain.Task{
		newTask("1", withPriority(domain.PriorityHigh), withCategory(domain.CategoryWork)),
		newTask("2", withPriority(domain.PriorityHigh), withCategory(domain.CategoryWork), withStatus(domain.StatusCompleted)),
		newTask("3", withPriority(domain.PriorityLow), withCategory(domain.CategoryHome), withStatus(domain.StatusInProgress)),
		newTask("4", withDue("2025-01-01"), withStatus(domain.StatusExpired)),
	}

	s := Aggregate(tasks)

	assert.Equal(t, domain.Counters{Total: 4, Completed: 1, Pending: 3}, s.Counters)
	assert.Equal(t, 25, s.Progress)
	assert.Equal(t, map[domain.Status]int{
		domain.StatusPending:    1,
		domain.StatusInProgress: 1,
		domain.StatusCompleted:  1,
		domain.StatusExpired:    1,
	}, s.ByStatus)
	assert.Equal(t, map[domain.Priority]int{
		domain.PriorityHigh:   1,
		domain.PriorityMedium: 1,
		domain.PriorityLow:    1,
	}, s.ByPriority, "completed tasks are not counted")
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryWork:     1,
		domain.CategoryPersonal: 1,
		domain.CategoryHome:     1,
		domain.CategoryStudies:  0,
	}, s.ByCategory)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)

	assert.Zero(t, s.Counters.Total)
	assert.Zero(t, s.Progress)
	assert.Len(t, s.ByStatus, len(domain.Statuses))
	assert.Len(t, s.ByPriority, len(domain.Priorities))
	assert.Len(t, s.ByCategory, len(domain.Categories))
}

func TestAggregate_ProgressRounds(t *testing.T) {
	tasks := []domain.Task{
		newTask("1", withStatus(domain.StatusCompleted)),
		newTask("2", withStatus(domain.StatusCompleted)),
		newTask("3"),
	}

	assert.Equal(t, 67, Aggregate(tasks).Progress)
}
