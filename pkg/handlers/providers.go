package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/models"
)

func Providers(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.Selector == nil {
			writeError(cfg, w, http.StatusInternalServerError, providerUnavailable)
			return
		}

		writeJSON(cfg, w, http.StatusOK, models.ProvidersResponse{
			ActiveProvider: cfg.Selector.ActiveName(),
			Providers:      cfg.Selector.Status(r.Context()),
			Timestamp:      explorer.Timestamp(),
			APIVersion:     explorer.APIVersion,
		})
	})
}

func SwitchProvider(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SwitchProviderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(cfg, w, http.StatusBadRequest, invalidPayload)
			return
		}

		name := strings.TrimSpace(req.Provider)
		if name == "" {
			writeError(cfg, w, http.StatusBadRequest, "Provider name is required")
			return
		}

		if cfg.Selector == nil {
			writeError(cfg, w, http.StatusInternalServerError, providerUnavailable)
			return
		}

		old := cfg.Selector.ActiveName()
		if !cfg.Selector.Switch(name) {
			cfg.Logger.Warnf("Unable to switch provider from %s to unknown provider: %s", old, name)
			writeJSON(cfg, w, http.StatusBadRequest, models.SwitchProviderResponse{
				Success:            false,
				Error:              fmt.Sprintf("Provider %q not found", name),
				AvailableProviders: cfg.Selector.Names(),
			})
			return
		}

		writeJSON(cfg, w, http.StatusOK, models.SwitchProviderResponse{
			Success:        true,
			ActiveProvider: cfg.Selector.ActiveName(),
			Timestamp:      explorer.Timestamp(),
		})
	})
}
