// internal/handlers/crew/crew.go
package crew

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

// List handles GET /crew?status&skill.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.list(w, r, repo.CrewFilter{Status: models.CrewStatus(q.Get("status")), Skill: q.Get("skill")})
}

// Available lists crew members whose status is available.
func (h *Handler) Available(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repo.CrewFilter{Status: models.CrewAvailable})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, f repo.CrewFilter) {
	items, err := h.repo.ListCrew(r.Context(), f)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.List(w, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.GetCrewMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCrewRequest
	if err := httpserver.Decode(w, r, &in, false); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	c, err := h.repo.CreateCrewMember(r.Context(), in)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Created(w, c, "Crew member created successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetCrewMember(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var p models.CrewPatch
	if err := httpserver.Decode(w, r, &p, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	c, err := h.repo.UpdateCrewMember(r.Context(), id, p)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "Crew member updated successfully")
}

// UpdateStatus only touches status and currentAssignment.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetCrewMember(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var u models.CrewStatusUpdate
	if err := httpserver.Decode(w, r, &u, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	c, err := h.repo.SetCrewStatus(r.Context(), id, u)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "Status updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteCrewMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Message(w, "Crew member deleted successfully")
}
