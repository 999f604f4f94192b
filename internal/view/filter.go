package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rezkam/daily/internal/domain"
)

// StatusFilter is a status or FilterAll.
type StatusFilter string

// FilterAll matches every task.
const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts a status name, "all" or an empty string (all).
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, nil
	}
	status, err := domain.NewStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(status), nil
}

// FilterByStatus keeps tasks whose status equals f. FilterAll keeps everything.
func FilterByStatus(tasks []domain.Task, f StatusFilter) []domain.Task {
	if f == FilterAll || f == "" {
		return cloneSlice(tasks)
	}
	return filter(tasks, func(t *domain.Task) bool { return t.Status == domain.Status(f) })
}

// FilterOpen keeps every task that is not completed, expired included.
func FilterOpen(tasks []domain.Task) []domain.Task {
	return filter(tasks, func(t *domain.Task) bool { return !t.Completed() })
}

// FilterByDate keeps tasks whose due date falls on date (YYYY-MM-DD).
// Undated tasks never match.
func FilterByDate(tasks []domain.Task, date string) []domain.Task {
	return filter(tasks, func(t *domain.Task) bool {
		return t.DueDate != nil && t.DueDate.CalendarDate() == date
	})
}

// GroupByDate buckets dated tasks by calendar date. Order within a bucket
// follows the input order. Undated tasks are omitted.
func GroupByDate(tasks []domain.Task) map[string][]domain.Task {
	groups := make(map[string][]domain.Task)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := t.DueDate.CalendarDate()
		groups[key] = append(groups[key], t)
	}
	return groups
}

// DatesInMonth returns every calendar key of a month in order.
func DatesInMonth(year int, month time.Month) ([]string, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", domain.ErrValidation, month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	dates := make([]string, 0, days)
	for d := range days {
		dates = append(dates, first.AddDate(0, 0, d).Format(domain.DateLayout))
	}
	return dates, nil
}

func filter(tasks []domain.Task, keep func(*domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

func cloneSlice(tasks []domain.Task) []domain.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []domain.Task{}
	}
	return out
}
