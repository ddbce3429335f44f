package handlers

import (
	"fmt"
	"net/http"
	"strings"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/trends"
)

func Suggestions(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
		if keyword == "" {
			writeError(cfg, w, http.StatusBadRequest, "Keyword parameter is required")
			return
		}

		p, ok := activeProvider(cfg, w)
		if !ok {
			return
		}

		cfg.Logger.Infof("Getting suggestions for keyword: %s", keyword)

		result, err := p.Suggestions(r.Context(), keyword)
		if err != nil {
			cfg.Logger.Errorf("Error in suggestions (%s): %s", trends.ClassifyError(err), err)
			writeError(cfg, w, trends.HTTPStatus(err), fmt.Sprintf("Failed to fetch suggestions: %s", err))
			return
		}

		result.APIVersion = explorer.APIVersion
		result.ProviderUsed = p.Name()

		writeJSON(cfg, w, http.StatusOK, result)
	})
}
