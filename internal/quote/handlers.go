package quote

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/nirajd/backend-pasal/internal/common"
)

// SessionHeader carries the anonymous storefront session used for currency
// preference lookups.
const SessionHeader = "X-Session-ID"

// Handler exposes quotation endpoints.
type Handler struct {
	Service *Service
	Tasks   *asynq.Client
	Logger  *zerolog.Logger
}

// Create handles POST /api/v1/quotes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.BadRequest("invalid JSON body", nil))
		return
	}
	q, err := h.Service.Build(r.Context(), r.Header.Get(SessionHeader), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, q)
}

// Get handles GET /api/v1/quotes/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, q)
}

// Export handles POST /api/v1/quotes/{id}/export: it verifies the quotation
// exists and enqueues delivery to the external renderer.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, err := h.Service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if h.Tasks == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "export queue not configured", nil)
		return
	}
	task, err := NewExportTask(q.ID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	info, err := h.Tasks.EnqueueContext(r.Context(), task)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info().Str("quote_id", q.ID).Str("task_id", info.ID).Msg("export enqueued")
	}
	common.JSONData(w, http.StatusAccepted, map[string]string{"quoteId": q.ID, "taskId": info.ID})
}
