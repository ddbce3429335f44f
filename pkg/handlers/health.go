package handlers

import (
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/models"
	"github.com/worldtrends/explorer/pkg/trends"
)

var features = []string{"SerpAPI", "Pytrends Fallback", "Mock Data"}

// Health reports the status of every provider. The service is healthy as
// long as the active provider can still serve requests.
func Health(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.Selector == nil || cfg.Selector.Active() == nil {
			writeJSON(cfg, w, http.StatusInternalServerError, models.HealthResponse{
				Status:    trends.StatusUnhealthy,
				Timestamp: explorer.Timestamp(),
				Service:   explorer.ServiceName,
				Note:      "Data provider initialization failed",
			})
			return
		}

		providers := cfg.Selector.Status(r.Context())
		active := cfg.Selector.ActiveName()

		status := trends.StatusDegraded
		if h, ok := providers[active]; ok && h.Usable() {
			status = trends.StatusHealthy
		}

		writeJSON(cfg, w, http.StatusOK, models.HealthResponse{
			Status:         status,
			Timestamp:      explorer.Timestamp(),
			Service:        explorer.ServiceName,
			ActiveProvider: active,
			Providers:      providers,
			Version:        explorer.APIVersion,
			Features:       features,
		})
	})
}
