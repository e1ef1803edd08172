package currency

import (
	"encoding/json"
	"net/http"

	"github.com/nirajd/backend-pasal/internal/common"
)

// SessionHeader carries the anonymous storefront session that owns the
// currency preference.
const SessionHeader = "X-Session-ID"

// Handler exposes the supported currency list and the per-session display
// currency preference.
type Handler struct {
	Service *Service
}

type preferenceRequest struct {
	Code string `json:"code"`
}

type preferenceResponse struct {
	Currency Info `json:"currency"`
}

// List handles GET /api/v1/currencies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	common.JSONData(w, http.StatusOK, Supported())
}

// GetPreference handles GET /api/v1/currencies/preference.
func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	info := h.Service.Preference(r.Context(), r.Header.Get(SessionHeader))
	common.JSONData(w, http.StatusOK, preferenceResponse{Currency: info})
}

// SetPreference handles PUT /api/v1/currencies/preference.
func (h *Handler) SetPreference(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.BadRequest("invalid JSON body", nil))
		return
	}
	if _, ok := Lookup(req.Code); !ok {
		common.WriteError(w, common.BadRequest("unsupported currency", map[string]string{"code": req.Code}))
		return
	}
	info, err := h.Service.SetPreference(r.Context(), r.Header.Get(SessionHeader), req.Code)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, preferenceResponse{Currency: info})
}
