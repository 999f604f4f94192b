package handler

import (
	"io"
	"net/http"

	"github.com/rezkam/daily/internal/http/response"
)

// BackupFilename is suggested to clients downloading an export.
const BackupFilename = "daily_tasks_backup.json"

// Export handles GET /v1/export. The body is the persisted collection
// format and can be posted back to /v1/import unchanged.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Export(r.Context())
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+BackupFilename+`"`)
	response.Raw(w, http.StatusOK, data)
}

// Import handles POST /v1/import. The collection is replaced only when the
// body is a JSON array.
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "failed to read body")
		return
	}

	n, err := s.store.Import(r.Context(), data)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, ImportResponse{Imported: n})
}
