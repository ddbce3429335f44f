package trends

import (
	"context"
	"strings"
)

const (
	ProviderSerpAPI = "SerpAPI"
	ProviderGoogle  = "Pytrends"
	ProviderMock    = "Mock"

	DefaultTimeframe   = "today 12-m"
	DefaultTrendingGeo = "US"

	MaxTrendingSearches = 20
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusError     = "error"
)

type Provider interface {
	Name() string
	SearchTrends(ctx context.Context, query SearchQuery) (*SearchResult, error)
	TrendingSearches(ctx context.Context, geo string) (*TrendingResult, error)
	Suggestions(ctx context.Context, keyword string) (*SuggestionsResult, error)
	HealthCheck(ctx context.Context) Health
}

type SearchQuery struct {
	Keyword   string
	Geo       string
	Timeframe string
}

func (q SearchQuery) Normalize() SearchQuery {
	out := SearchQuery{
		Keyword:   strings.TrimSpace(q.Keyword),
		Geo:       strings.ToUpper(strings.TrimSpace(q.Geo)),
		Timeframe: strings.TrimSpace(q.Timeframe),
	}
	if out.Timeframe == "" {
		out.Timeframe = DefaultTimeframe
	}
	return out
}

type TimelinePoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

type RegionInterest struct {
	GeoName string `json:"geoName"`
	GeoCode string `json:"geoCode"`
	Value   int    `json:"value"`
}

type RelatedQuery struct {
	Query string `json:"query"`
	Value string `json:"value"`
}

type RelatedQueries struct {
	Top    []RelatedQuery `json:"top"`
	Rising []RelatedQuery `json:"rising"`
}

type SearchResult struct {
	Keyword          string           `json:"keyword"`
	Geo              string           `json:"geo"`
	Timeframe        string           `json:"timeframe"`
	Timestamp        string           `json:"timestamp"`
	InterestOverTime []TimelinePoint  `json:"interest_over_time"`
	InterestByRegion []RegionInterest `json:"interest_by_region"`
	RelatedQueries   RelatedQueries   `json:"related_queries"`
	DataSource       string           `json:"data_source,omitempty"`
	Note             string           `json:"note,omitempty"`
	APIVersion       string           `json:"api_version,omitempty"`
	ProviderUsed     string           `json:"provider_used,omitempty"`
}

// NewSearchResult returns a result with every collection initialized, so
// that empty data is rendered as [] rather than null.
func NewSearchResult(q SearchQuery) *SearchResult {
	return &SearchResult{
		Keyword:          q.Keyword,
		Geo:              q.Geo,
		Timeframe:        q.Timeframe,
		InterestOverTime: []TimelinePoint{},
		InterestByRegion: []RegionInterest{},
		RelatedQueries: RelatedQueries{
			Top:    []RelatedQuery{},
			Rising: []RelatedQuery{},
		},
	}
}

type TrendingSearch struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

type TrendingResult struct {
	Geo              string           `json:"geo"`
	Country          string           `json:"country"`
	Timestamp        string           `json:"timestamp"`
	TrendingSearches []TrendingSearch `json:"trending_searches"`
	DataSource       string           `json:"data_source,omitempty"`
	APIVersion       string           `json:"api_version,omitempty"`
	ProviderUsed     string           `json:"provider_used,omitempty"`
}

// RankQueries turns an ordered list of queries into ranked entries, keeping
// at most MaxTrendingSearches non-empty ones.
func RankQueries(queries []string) []TrendingSearch {
	out := make([]TrendingSearch, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, TrendingSearch{Rank: len(out) + 1, Query: q})
		if len(out) >= MaxTrendingSearches {
			break
		}
	}
	return out
}

type Suggestion struct {
	Mid   string `json:"mid"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type SuggestionsResult struct {
	Keyword      string       `json:"keyword"`
	Suggestions  []Suggestion `json:"suggestions"`
	Timestamp    string       `json:"timestamp"`
	DataSource   string       `json:"data_source,omitempty"`
	APIVersion   string       `json:"api_version,omitempty"`
	ProviderUsed string       `json:"provider_used,omitempty"`
}

type Health struct {
	Status     string `json:"status"`
	DataSource string `json:"data_source,omitempty"`
	Timestamp  string `json:"timestamp"`
	Note       string `json:"note,omitempty"`
}

// Usable reports whether a provider with this health may serve requests.
func (h Health) Usable() bool {
	return h.Status == StatusHealthy || h.Status == StatusDegraded
}
