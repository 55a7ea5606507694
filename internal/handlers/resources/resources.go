// internal/handlers/resources/resources.go
package resources

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

// List handles GET /resources?type&status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.repo.ListResources(r.Context(), repo.ResourceFilter{
		Type:   q.Get("type"),
		Status: models.ResourceStatus(q.Get("status")),
	})
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.List(w, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetResource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, res, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateResourceRequest
	if err := httpserver.Decode(w, r, &in, false); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	res, err := h.repo.CreateResource(r.Context(), in)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Created(w, res, "Resource created successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetResource(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var p models.ResourcePatch
	if err := httpserver.Decode(w, r, &p, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	res, err := h.repo.UpdateResource(r.Context(), id, p)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, res, "Resource updated successfully")
}

// Assign marks the resource in-use. An already assigned resource is simply
// reassigned.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetResource(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var a models.ResourceAssignment
	if err := httpserver.Decode(w, r, &a, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	res, err := h.repo.AssignResource(r.Context(), id, a)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, res, "Resource assigned successfully")
}

func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.ReleaseResource(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, res, "Resource released successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteResource(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Message(w, "Resource deleted successfully")
}
