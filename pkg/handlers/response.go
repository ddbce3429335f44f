package handlers

import (
	"encoding/json"
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/models"
	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	providerUnavailable = "Data provider not available"
	invalidPayload      = "Invalid request payload"
)

func writeJSON(cfg *explorer.Config, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		cfg.Logger.Errorf("Failed to encode response: %s", err)
	}
}

func writeError(cfg *explorer.Config, w http.ResponseWriter, code int, message string) {
	writeJSON(cfg, w, code, models.ErrorResponse{Error: message})
}

// activeProvider returns the provider serving requests, writing a 500 when
// there is none.
func activeProvider(cfg *explorer.Config, w http.ResponseWriter) (trends.Provider, bool) {
	if cfg.Selector == nil {
		writeError(cfg, w, http.StatusInternalServerError, providerUnavailable)
		return nil, false
	}
	p := cfg.Selector.Active()
	if p == nil {
		writeError(cfg, w, http.StatusInternalServerError, providerUnavailable)
		return nil, false
	}
	return p, true
}
