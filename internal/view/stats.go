package view

import (
	"math"

	"github.com/rezkam/daily/internal/domain"
)

// Stats aggregates a collection.
//
// ByStatus counts every task. ByPriority and ByCategory count only tasks
// that are not completed, matching what is still left to do. Every known
// key is present, zero counts included.
type Stats struct {
	Counters   domain.Counters         `json:"counters"`
	Progress   int                     `json:"progress"` // completed share, rounded percent
	ByStatus   map[domain.Status]int   `json:"byStatus"`
	ByPriority map[domain.Priority]int `json:"byPriority"`
	ByCategory map[domain.Category]int `json:"byCategory"`
}

// Aggregate computes Stats in one pass.
func Aggregate(tasks []domain.Task) Stats {
	s := Stats{
		Counters:   domain.CountTasks(tasks),
		ByStatus:   make(map[domain.Status]int, len(domain.Statuses)),
		ByPriority: make(map[domain.Priority]int, len(domain.Priorities)),
		ByCategory: make(map[domain.Category]int, len(domain.Categories)),
	}
	for _, st := range domain.Statuses {
		s.ByStatus[st] = 0
	}
	for _, p := range domain.Priorities {
		s.ByPriority[p] = 0
	}
	for _, c := range domain.Categories {
		s.ByCategory[c] = 0
	}

	for i := range tasks {
		t := &tasks[i]
		s.ByStatus[t.Status]++
		if t.Completed() {
			continue
		}
		s.ByPriority[t.Priority]++
		s.ByCategory[t.Category]++
	}

	if s.Counters.Total > 0 {
		s.Progress = int(math.Round(float64(s.Counters.Completed) / float64(s.Counters.Total) * 100))
	}
	return s
}
