package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rezkam/daily/internal/domain"
	"github.com/rezkam/daily/internal/http/response"
	"github.com/rezkam/daily/internal/view"
)

// Defaults for GET /v1/tasks when no sort is requested: most urgent first.
const (
	defaultSortField = view.SortByPriority
	defaultDirection = view.Desc
)

// ListTasks handles GET /v1/tasks?status=&date=&sort=&dir=.
// Counters always describe the whole collection, not the filtered page.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	statusFilter, err := view.ParseStatusFilter(q.Get("status"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	snap := s.store.Snapshot()
	tasks := view.FilterByStatus(snap.Tasks, statusFilter)

	if date := q.Get("date"); date != "" {
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			response.ValidationError(w, "date", "must be YYYY-MM-DD")
			return
		}
		tasks = view.FilterByDate(tasks, date)
	}

	opts := view.SortOptions{
		Field:     defaultSortField,
		Direction: defaultDirection,
		Location:  s.store.Location(),
	}
	if v := q.Get("sort"); v != "" {
		opts.Field = view.ParseSortField(v)
	}
	if v := q.Get("dir"); v != "" {
		opts.Direction = view.ParseDirection(v)
	}
	tasks = view.Sort(tasks, opts)

	response.OK(w, ListTasksResponse{
		Tasks:    MapTasksToDTO(tasks),
		Counters: snap.Counters,
	})
}

// GetStats handles GET /v1/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	response.OK(w, view.Aggregate(snap.Tasks))
}

// GetCalendar handles GET /v1/calendar?year=&month=. Missing parameters
// default to the current month in the store's location. Every day of the
// month is listed; tasks within a day are ordered by due time.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.store.Now()
	year, month := now.Year(), int(now.Month())

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			response.ValidationError(w, "year", "must be an integer")
			return
		}
		year = y
	}
	if v := q.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			response.ValidationError(w, "month", "must be an integer")
			return
		}
		month = m
	}

	dates, err := view.DatesInMonth(year, time.Month(month))
	if err != nil {
		response.ValidationError(w, "month", fmt.Sprintf("must be between 1 and 12, got %d", month))
		return
	}

	groups := view.GroupByDate(s.store.Snapshot().Tasks)
	opts := view.SortOptions{Field: view.SortByDueDate, Direction: view.Asc, Location: s.store.Location()}

	days := make([]CalendarDay, len(dates))
	for i, date := range dates {
		days[i] = CalendarDay{
			Date:  date,
			Tasks: MapTasksToDTO(view.Sort(groups[date], opts)),
		}
	}

	response.OK(w, CalendarResponse{Year: year, Month: month, Days: days})
}
