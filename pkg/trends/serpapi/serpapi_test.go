package serpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	timeseriesBody = `{
		"interest_over_time": {
			"timeline_data": [
				{"date": "Jan 1 - 7, 2025", "timestamp": "1735689600", "values": [{"query": "golang", "value": "42", "extracted_value": 42}]},
				{"date": "Jan 8 - 14, 2025", "values": [{"query": "golang", "value": "<1"}]}
			]
		}
	}`
	geoMapBody = `{
		"interest_by_region": [
			{"geo": "US", "location": "United States", "value": "100", "extracted_value": 100},
			{"geo": "DE", "location": "Germany", "value": "37"}
		]
	}`
	relatedBody = `{
		"related_queries": {
			"top": [{"query": "golang tutorial", "value": "100", "extracted_value": 100}],
			"rising": [{"query": "golang 1.24", "value": "+250%"}, {"query": "golang ai"}]
		}
	}`
	trendingBody = `{
		"trending_searches": [{"query": "first"}, {"query": ""}, {"query": "second"}]
	}`
	autocompleteBody = `{
		"suggestions": [{"value": "golang tutorial"}, {"value": " "}, {"value": "golang jobs"}]
	}`
)

func newServer(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := New(srv.URL, "secret", time.Second)
	p.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

func fakeSerpAPI(geoMapStatus, relatedStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = fmt.Fprint(w, `{"error": "Invalid API key."}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch q.Get("engine") + "/" + q.Get("data_type") {
		case "google_trends/TIMESERIES":
			_, _ = fmt.Fprint(w, timeseriesBody)
		case "google_trends/GEO_MAP_0":
			w.WriteHeader(geoMapStatus)
			_, _ = fmt.Fprint(w, geoMapBody)
		case "google_trends/RELATED_QUERIES":
			w.WriteHeader(relatedStatus)
			_, _ = fmt.Fprint(w, relatedBody)
		case "google_trends_trending_now/":
			_, _ = fmt.Fprint(w, trendingBody)
		case "google_autocomplete/":
			_, _ = fmt.Fprint(w, autocompleteBody)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestSearchTrends(t *testing.T) {
	t.Parallel()

	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2004-01-01 2025-06-01", q.Get("date"))
		assert.Equal(t, "US", q.Get("geo"))
		assert.Equal(t, "golang", q.Get("q"))
		fakeSerpAPI(http.StatusOK, http.StatusOK)(w, r)
	})

	actual, err := p.SearchTrends(context.TODO(), trends.SearchQuery{Keyword: "golang", Geo: "us", Timeframe: "all"})
	require.NoError(t, err)

	assert.Equal(t, "golang", actual.Keyword)
	assert.Equal(t, "US", actual.Geo)
	assert.Equal(t, "all", actual.Timeframe)
	assert.Equal(t, "SerpAPI", actual.DataSource)

	assert.Equal(t, []trends.TimelinePoint{
		{Date: "2025-01-01T00:00:00Z", Value: 42},
		{Date: "Jan 8 - 14, 2025", Value: 0},
	}, actual.InterestOverTime)
	assert.Equal(t, []trends.RegionInterest{
		{GeoName: "United States", GeoCode: "US", Value: 100},
		{GeoName: "Germany", GeoCode: "DE", Value: 37},
	}, actual.InterestByRegion)
	assert.Equal(t, []trends.RelatedQuery{{Query: "golang tutorial", Value: "100"}}, actual.RelatedQueries.Top)
	assert.Equal(t, []trends.RelatedQuery{
		{Query: "golang 1.24", Value: "+250%"},
		{Query: "golang ai", Value: "Breakout"},
	}, actual.RelatedQueries.Rising)
}

func TestSearchTrendsOptionalFailures(t *testing.T) {
	t.Parallel()

	p := newServer(t, fakeSerpAPI(http.StatusInternalServerError, http.StatusTooManyRequests))

	actual, err := p.SearchTrends(context.TODO(), trends.SearchQuery{Keyword: "golang"})
	require.NoError(t, err)

	assert.Len(t, actual.InterestOverTime, 2)
	assert.NotNil(t, actual.InterestByRegion)
	assert.Empty(t, actual.InterestByRegion)
	assert.Empty(t, actual.RelatedQueries.Top)
	assert.Empty(t, actual.RelatedQueries.Rising)
}

func TestSearchTrendsErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		status      int
		body        string
		errorType   string
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, trends.ErrorTypeRateLimit},
		{"upstream outage", http.StatusBadGateway, ``, trends.ErrorTypeUpstream5xx},
		{"rejected key", http.StatusUnauthorized, `{"error": "Invalid API key."}`, trends.ErrorTypeConfig},
		{"error field", http.StatusOK, `{"error": "Google Trends hasn't returned any results for this query."}`, trends.ErrorTypeUpstream},
		{"malformed body", http.StatusOK, `{"interest_over_time": [`, trends.ErrorTypeUnknown},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = fmt.Fprint(w, tc.body)
			})

			_, err := p.SearchTrends(context.TODO(), trends.SearchQuery{Keyword: "golang"})
			require.Error(t, err)
			assert.Equal(t, tc.errorType, trends.ClassifyError(err))
		})
	}
}

func TestMissingKey(t *testing.T) {
	t.Parallel()

	p := New("", "  ", 0)

	_, err := p.SearchTrends(context.TODO(), trends.SearchQuery{Keyword: "golang"})
	assert.Equal(t, trends.ErrorTypeConfig, trends.ClassifyError(err))

	_, err = p.TrendingSearches(context.TODO(), "US")
	assert.Equal(t, trends.ErrorTypeConfig, trends.ClassifyError(err))

	health := p.HealthCheck(context.TODO())
	assert.Equal(t, trends.StatusUnhealthy, health.Status)
	assert.False(t, health.Usable())
}

func TestTrendingSearches(t *testing.T) {
	t.Parallel()

	p := newServer(t, fakeSerpAPI(http.StatusOK, http.StatusOK))

	actual, err := p.TrendingSearches(context.TODO(), "gb")
	require.NoError(t, err)

	assert.Equal(t, "GB", actual.Geo)
	assert.Equal(t, "United Kingdom", actual.Country)
	assert.Equal(t, []trends.TrendingSearch{{Rank: 1, Query: "first"}, {Rank: 2, Query: "second"}}, actual.TrendingSearches)
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	p := newServer(t, fakeSerpAPI(http.StatusOK, http.StatusOK))

	actual, err := p.Suggestions(context.TODO(), "golang")
	require.NoError(t, err)

	assert.Equal(t, []trends.Suggestion{
		{Mid: "/m/golang_0", Title: "golang tutorial", Type: "Topic"},
		{Mid: "/m/golang_1", Title: "golang jobs", Type: "Topic"},
	}, actual.Suggestions)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		status      int
		expected    string
	}{
		{"ok", http.StatusOK, trends.StatusHealthy},
		{"non 200", http.StatusTooManyRequests, trends.StatusDegraded},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test", r.URL.Query().Get("q"))
				w.WriteHeader(tc.status)
			})

			assert.Equal(t, tc.expected, p.HealthCheck(context.TODO()).Status)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		p := New(srv.URL, "secret", time.Second)
		assert.Equal(t, trends.StatusUnhealthy, p.HealthCheck(context.TODO()).Status)
	})
}
