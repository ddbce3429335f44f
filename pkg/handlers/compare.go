package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/models"
	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	minCompareKeywords = 2
	maxCompareKeywords = 5

	compareConcurrency = 3
)

// Compare fetches every keyword with the active provider. Keywords that
// fail are logged and left out of the comparison.
func Compare(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.CompareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(cfg, w, http.StatusBadRequest, invalidPayload)
			return
		}

		keywords := make([]string, 0, len(req.Keywords))
		for _, k := range req.Keywords {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) < minCompareKeywords {
			writeError(cfg, w, http.StatusBadRequest, "At least 2 keywords are required for comparison")
			return
		}
		if len(keywords) > maxCompareKeywords {
			writeError(cfg, w, http.StatusBadRequest, "Maximum 5 keywords allowed for comparison")
			return
		}

		base := trends.SearchQuery{Geo: req.Geo, Timeframe: req.Timeframe}.Normalize()
		if base.Geo == "" {
			base.Geo = trends.DefaultTrendingGeo
		}
		if !geo.Valid(base.Geo) {
			writeError(cfg, w, http.StatusBadRequest, "Invalid geo parameter: "+base.Geo)
			return
		}

		p, ok := activeProvider(cfg, w)
		if !ok {
			return
		}

		cfg.Logger.Infof("Comparing keywords: %v, geo: %s", keywords, base.Geo)

		results := make([]*trends.SearchResult, len(keywords))

		g, ctx := errgroup.WithContext(r.Context())
		g.SetLimit(compareConcurrency)
		for i, keyword := range keywords {
			i, query := i, base
			query.Keyword = keyword
			g.Go(func() error {
				result, err := p.SearchTrends(ctx, query)
				if err != nil {
					cfg.Logger.Warnf("Failed to get data for keyword '%s': %s", query.Keyword, err)
					return nil
				}
				results[i] = result
				return nil
			})
		}
		_ = g.Wait()

		comparison := make([]*trends.SearchResult, 0, len(results))
		for _, result := range results {
			if result != nil {
				comparison = append(comparison, result)
			}
		}

		writeJSON(cfg, w, http.StatusOK, models.CompareResponse{
			Keywords:       keywords,
			Geo:            base.Geo,
			Timeframe:      base.Timeframe,
			Timestamp:      explorer.Timestamp(),
			ComparisonData: comparison,
			APIVersion:     explorer.APIVersion,
			ProviderUsed:   p.Name(),
		})
	})
}
