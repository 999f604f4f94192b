// Package handler exposes the task store over a loopback JSON API.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/rezkam/daily/internal/application/task"
)

// Server holds the HTTP handlers for the task API.
type Server struct {
	store *task.Store
}

// NewServer creates a new HTTP handler server.
func NewServer(store *task.Store) *Server {
	return &Server{store: store}
}

// Routes registers every /v1 endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.ListTasks)
		r.Post("/", s.CreateTask)
		r.Delete("/", s.ClearTasks)

		r.Route("/{taskID}", func(r chi.Router) {
			r.Get("/", s.GetTask)
			r.Patch("/", s.UpdateTask)
			r.Delete("/", s.DeleteTask)
			r.Put("/status", s.SetStatus)
			r.Post("/toggle", s.ToggleTask)
			r.Post("/comments", s.AddComment)
			r.Delete("/comments/{index}", s.RemoveComment)
		})
	})

	r.Get("/stats", s.GetStats)
	r.Get("/calendar", s.GetCalendar)
	r.Get("/export", s.Export)
	r.Post("/import", s.Import)
}
