package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/daily/internal/domain"
	"github.com/rezkam/daily/internal/http/response"
)

// CreateTask handles POST /v1/tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	created, err := s.store.Create(r.Context(), domain.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, TaskResponse{Task: MapTaskToDTO(created)})
}

// GetTask handles GET /v1/tasks/{taskID}.
func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(chi.URLParam(r, "taskID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, TaskResponse{Task: MapTaskToDTO(t)})
}

// UpdateTask handles PATCH /v1/tasks/{taskID}.
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	params, err := toUpdateParams(chi.URLParam(r, "taskID"), req)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	updated, err := s.store.UpdateFields(r.Context(), params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, TaskResponse{Task: MapTaskToDTO(updated)})
}

// DeleteTask handles DELETE /v1/tasks/{taskID}. Deleting an unknown id
// succeeds.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}

// ClearTasks handles DELETE /v1/tasks.
func (s *Server) ClearTasks(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}

// SetStatus handles PUT /v1/tasks/{taskID}/status.
func (s *Server) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	status, err := domain.NewStatus(req.Status)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	updated, err := s.store.SetStatus(r.Context(), chi.URLParam(r, "taskID"), status)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, TaskResponse{Task: MapTaskToDTO(updated)})
}

// ToggleTask handles POST /v1/tasks/{taskID}/toggle.
func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.ToggleComplete(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, TaskResponse{Task: MapTaskToDTO(updated)})
}

// AddComment handles POST /v1/tasks/{taskID}/comments.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	updated, err := s.store.AddComment(r.Context(), chi.URLParam(r, "taskID"), req.Text)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.Created(w, TaskResponse{Task: MapTaskToDTO(updated)})
}

// RemoveComment handles DELETE /v1/tasks/{taskID}/comments/{index}.
func (s *Server) RemoveComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	// An unknown task is reported before a malformed index.
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		if _, getErr := s.store.Get(id); getErr != nil {
			response.FromDomainError(w, r, getErr)
			return
		}
		response.ValidationError(w, "index", "must be an integer")
		return
	}

	updated, err := s.store.RemoveComment(r.Context(), id, index)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, TaskResponse{Task: MapTaskToDTO(updated)})
}
