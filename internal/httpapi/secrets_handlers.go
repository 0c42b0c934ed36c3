package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/config"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setTokenRequest struct {
	Token string `json:"token"`
}

// SetSheetToken stores the private-sheet bearer token under the account
// named in config. The token never touches the config file or the store.
func (h SecretsHandler) SetSheetToken(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	account := strings.TrimSpace(cfg.Fetch.TokenAccount)
	if account == "" {
		WriteError(w, r, http.StatusBadRequest, "no_account", "fetch.token_account is not configured")
		return
	}

	var req setTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	if err := secrets.SetSheetToken(account, req.Token); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
