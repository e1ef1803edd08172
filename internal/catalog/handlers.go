package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nirajd/backend-pasal/internal/common"
)

// Handler exposes catalog endpoints.
type Handler struct {
	Service *Service
}

// List handles GET /api/v1/items with filters and pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params, err := h.Service.ParseListParams(r.URL.Query())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	items, total, err := h.Service.List(r.Context(), params)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data":       items,
		"pagination": common.Pagination{Page: params.Page, PerPage: params.Limit, TotalItems: int(total)},
	})
}

// Get handles GET /api/v1/items/{slug}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, item)
}

// Create handles POST /api/v1/admin/items.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.BadRequest("invalid JSON body", nil))
		return
	}
	item, err := h.Service.Create(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, item)
}

// Update handles PUT /api/v1/admin/items/{slug}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var input ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.BadRequest("invalid JSON body", nil))
		return
	}
	item, err := h.Service.Update(r.Context(), chi.URLParam(r, "slug"), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/admin/items/{slug}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
