package handlers

import (
	"fmt"
	"net/http"
	"strings"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

func Trending(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("geo")))
		if code == "" {
			code = trends.DefaultTrendingGeo
		}
		if !geo.Valid(code) {
			writeError(cfg, w, http.StatusBadRequest, fmt.Sprintf("Invalid geo parameter: %s", code))
			return
		}

		p, ok := activeProvider(cfg, w)
		if !ok {
			return
		}

		cfg.Logger.Infof("Getting trending searches for geo: %s", code)

		result, err := p.TrendingSearches(r.Context(), code)
		if err != nil {
			cfg.Logger.Errorf("Error in trending searches (%s): %s", trends.ClassifyError(err), err)
			writeError(cfg, w, trends.HTTPStatus(err), fmt.Sprintf("Failed to fetch trending searches: %s", err))
			return
		}

		result.APIVersion = explorer.APIVersion
		result.ProviderUsed = p.Name()

		writeJSON(cfg, w, http.StatusOK, result)
	})
}
