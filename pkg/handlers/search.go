package handlers

import (
	"fmt"
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

func Search(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		query := trends.SearchQuery{
			Keyword:   params.Get("keyword"),
			Geo:       params.Get("geo"),
			Timeframe: params.Get("timeframe"),
		}.Normalize()

		if query.Keyword == "" {
			writeError(cfg, w, http.StatusBadRequest, "Keyword parameter is required")
			return
		}
		if query.Geo != "" && !geo.Valid(query.Geo) {
			writeError(cfg, w, http.StatusBadRequest, fmt.Sprintf("Invalid geo parameter: %s", query.Geo))
			return
		}

		p, ok := activeProvider(cfg, w)
		if !ok {
			return
		}

		cfg.Logger.Infof("Searching trends for keyword: %s, geo: %s", query.Keyword, query.Geo)

		result, err := p.SearchTrends(r.Context(), query)
		if err != nil {
			cfg.Logger.Errorf("Error in search trends (%s): %s", trends.ClassifyError(err), err)
			writeError(cfg, w, trends.HTTPStatus(err), fmt.Sprintf("Failed to fetch trends data: %s", err))
			return
		}

		result.APIVersion = explorer.APIVersion
		result.ProviderUsed = p.Name()

		writeJSON(cfg, w, http.StatusOK, result)
	})
}
