// internal/handlers/analytics/analytics.go
package analytics

import (
	"net/http"
	"strconv"

	httpserver "github.com/sanjkatariya/infraFix/internal/http"
	"github.com/sanjkatariya/infraFix/internal/repo"
)

type Handler struct {
	repo repo.Repo
}

func New(repo repo.Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.repo.Dashboard(r.Context())
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, d, "")
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Stats(r.Context())
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, s, "")
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.CategoryStats(r.Context())
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, c, "")
}

// Trends handles GET /analytics/trends?days=N. Without days the default
// window is used; a non-numeric days is 400.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	days := repo.DefaultTrendDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpserver.Error(w, r, httpserver.BadRequest("Invalid value for field \"days\""))
			return
		}
		days = n
	}
	t, err := h.repo.Trends(r.Context(), days)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, t, "")
}
