// Package view derives read-only projections from a task collection:
// ordering, filtering, calendar grouping and aggregate statistics.
// Every function returns a new slice or map and never mutates its input.
package view

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rezkam/daily/internal/domain"
)

// SortField names the attribute a collection is ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
	SortByTitle     SortField = "title"
)

// SortFields lists the supported fields.
var SortFields = []SortField{SortByCreatedAt, SortByPriority, SortByDueDate, SortByTitle}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortOptions configures Sort. Zero values mean createdAt, descending,
// local time.
type SortOptions struct {
	Field     SortField
	Direction Direction
	Location  *time.Location // zone for due dates without an offset
}

// ParseSortField maps user input to a field. Unknown input yields
// SortByCreatedAt. Matching ignores case and accepts due_date/created_at.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "priority":
		return SortByPriority
	case "duedate", "due_date", "due":
		return SortByDueDate
	case "title":
		return SortByTitle
	default:
		return SortByCreatedAt
	}
}

// ParseDirection maps user input to a direction. Unknown input yields Desc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Asc)) {
		return Asc
	}
	return Desc
}

// Sort returns a stably ordered copy of tasks. Ties keep their input order.
// When sorting by due date, undated tasks come after dated ones in both
// directions.
func Sort(tasks []domain.Task, opts SortOptions) []domain.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []domain.Task{}
	}

	field := ParseSortField(string(opts.Field))
	desc := ParseDirection(string(opts.Direction)) == Desc
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	orient := func(c int) int {
		if desc {
			return -c
		}
		return c
	}

	var compare func(a, b domain.Task) int
	switch field {
	case SortByPriority:
		compare = func(a, b domain.Task) int {
			return orient(cmp.Compare(a.Priority.Rank(), b.Priority.Rank()))
		}
	case SortByDueDate:
		compare = func(a, b domain.Task) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
			return orient(a.DueDate.Time(loc).Compare(b.DueDate.Time(loc)))
		}
	case SortByTitle:
		// Collators keep internal buffers and are not safe for concurrent use.
		col := collate.New(language.Spanish)
		compare = func(a, b domain.Task) int {
			return orient(col.CompareString(a.Title, b.Title))
		}
	default:
		compare = func(a, b domain.Task) int {
			return orient(a.CreatedAt.Compare(b.CreatedAt))
		}
	}

	slices.SortStableFunc(out, compare)
	return out
}
