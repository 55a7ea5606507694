// internal/handlers/status/status.go
package status

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/repo"
)

// Handler serves read-only views joining complaints, work orders and crew.
type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Complaint(w http.ResponseWriter, r *http.Request) {
	v, err := h.repo.ComplaintStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, v, "")
}

func (h *Handler) WorkOrder(w http.ResponseWriter, r *http.Request) {
	v, err := h.repo.WorkOrderStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, v, "")
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	v, err := h.repo.StatusOverview(r.Context())
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, v, "")
}
