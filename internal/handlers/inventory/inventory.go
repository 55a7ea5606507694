// internal/handlers/inventory/inventory.go
package inventory

import (
	"net/http"
	"strconv"

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

// List handles GET /inventory?category&lowStock. lowStock filters only
// when it parses as true.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	low, _ := strconv.ParseBool(q.Get("lowStock"))
	h.list(w, r, repo.InventoryFilter{Category: q.Get("category"), LowStock: low})
}

func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repo.InventoryFilter{Category: chi.URLParam(r, "category")})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, f repo.InventoryFilter) {
	items, err := h.repo.ListInventory(r.Context(), f)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.List(w, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.repo.GetInventoryItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, it, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateInventoryRequest
	if err := httpserver.Decode(w, r, &in, false); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	it, err := h.repo.CreateInventoryItem(r.Context(), in)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Created(w, it, "Inventory item created successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetInventoryItem(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var p models.InventoryPatch
	if err := httpserver.Decode(w, r, &p, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	it, err := h.repo.UpdateInventoryItem(r.Context(), id, p)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, it, "Inventory item updated successfully")
}

// UpdateStock handles PATCH /inventory/{id}/stock {quantity, action}.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.repo.GetInventoryItem(r.Context(), id); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	var u models.StockUpdate
	if err := httpserver.Decode(w, r, &u, true); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	it, err := h.repo.UpdateStock(r.Context(), id, u)
	if err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.OK(w, it, "Stock updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteInventoryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpserver.Error(w, r, err)
		return
	}
	httpserver.Message(w, "Inventory item deleted successfully")
}
