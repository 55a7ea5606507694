// internal/handlers/workorders/workorders.go
package workorders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /workorders?status&crewId&complaintId.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.WorkOrderFilter{
		Status:      models.WorkOrderStatus(q.Get("status")),
		CrewID:      q.Get("crewId"),
		ComplaintID: q.Get("complaintId"),
	}
	h.list(w, r, f)
}

func (h *Handler) ByComplaint(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repo.WorkOrderFilter{ComplaintID: chi.URLParam(r, "complaintId")})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, f repo.WorkOrderFilter) {
	items, err := h.repo.ListWorkOrders(r.Context(), f)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.List(w, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	wo, err := h.repo.GetWorkOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, wo, "")
}

// Create opens a work order; the parent complaint must exist (404 otherwise).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateWorkOrderRequest
	if err := httpserver.Decode(w, r, &in, false); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	wo, err := h.repo.CreateWorkOrder(r.Context(), in)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Created(w, wo, "Workorder created successfully")
}

// Update and UpdateStatus answer 404 for an unknown id before reading the body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetWorkOrder(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var p models.WorkOrderPatch
	if err := httpserver.Decode(w, r, &p, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	wo, err := h.repo.UpdateWorkOrder(r.Context(), id, p)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, wo, "Workorder updated successfully")
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetWorkOrder(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var u models.WorkOrderStatusUpdate
	if err := httpserver.Decode(w, r, &u, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	wo, err := h.repo.SetWorkOrderStatus(r.Context(), id, u)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, wo, "Status updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteWorkOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Message(w, "Workorder deleted successfully")
}
