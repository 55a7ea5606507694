// internal/handlers/complaints/complaints.go
package complaints

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/httpctx"
	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /complaints?status&category&userId.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.ComplaintFilter{
		Status:   models.ComplaintStatus(q.Get("status")),
		Category: q.Get("category"),
		UserID:   q.Get("userId"),
	}
	items, err := h.repo.ListComplaints(r.Context(), f)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.List(w, items)
}

func (h *Handler) ByUser(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListComplaints(r.Context(), repo.ComplaintFilter{UserID: chi.URLParam(r, "userId")})
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.List(w, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.GetComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "")
}

// Create files a complaint. Without a userId in the body the caller's
// session user is used.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateComplaintRequest
	if err := httpserver.Decode(w, r, &in, false); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	if in.UserID == "" {
		in.UserID, _ = httpctx.UserID(r.Context())
	}
	c, err := h.repo.CreateComplaint(r.Context(), in)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Created(w, c, "Complaint created successfully")
}

// Update and UpdateStatus answer 404 for an unknown id before reading the body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetComplaint(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var p models.ComplaintPatch
	if err := httpserver.Decode(w, r, &p, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	c, err := h.repo.UpdateComplaint(r.Context(), id, p)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "Complaint updated successfully")
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetComplaint(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var u models.ComplaintStatusUpdate
	if err := httpserver.Decode(w, r, &u, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	c, err := h.repo.SetComplaintStatus(r.Context(), id, u)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "Status updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteComplaint(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Message(w, "Complaint deleted successfully")
}
