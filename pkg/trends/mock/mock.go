// Package mock generates keyword-flavoured sample data. It is the provider
// of last resort and never fails.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	dataSource = "Mock Data"

	weeks = 52
)

var regions = []string{"US", "DE", "GB", "FR", "JP", "KR", "CA", "AU", "BR", "IN", "CN", "RU"}

var trending = []string{
	"Artificial Intelligence",
	"Climate Change",
	"Electric Vehicles",
	"Cryptocurrency",
	"Space Exploration",
	"Renewable Energy",
	"Machine Learning",
	"Remote Work",
	"Sustainable Living",
	"Digital Transformation",
}

type Provider struct {
	now func() time.Time
}

var _ trends.Provider = (*Provider)(nil)

func New() *Provider {
	return &Provider{now: time.Now}
}

func (p *Provider) Name() string {
	return trends.ProviderMock
}

// SearchTrends returns the same numbers for the same keyword, geo and
// timeframe.
func (p *Provider) SearchTrends(_ context.Context, query trends.SearchQuery) (*trends.SearchResult, error) {
	q := query.Normalize()
	rng := seeded(q.Keyword, q.Geo, q.Timeframe)
	now := p.now()

	res := trends.NewSearchResult(q)
	res.Timestamp = now.Format(time.RFC3339)
	res.DataSource = dataSource
	res.Note = "Generated mock data for demonstration"

	start := now.AddDate(0, 0, -365).Truncate(24 * time.Hour)
	for i := 0; i < weeks; i++ {
		res.InterestOverTime = append(res.InterestOverTime, trends.TimelinePoint{
			Date:  start.AddDate(0, 0, 7*i).Format(time.RFC3339),
			Value: clamp(50+rng.Intn(41)-20, 10, 100),
		})
	}

	for _, code := range regions {
		res.InterestByRegion = append(res.InterestByRegion, trends.RegionInterest{
			GeoName: geo.Name(code),
			GeoCode: code,
			Value:   10 + rng.Intn(91),
		})
	}

	res.RelatedQueries = trends.RelatedQueries{
		Top: []trends.RelatedQuery{
			{Query: q.Keyword + " tutorial", Value: "100"},
			{Query: q.Keyword + " guide", Value: "80"},
			{Query: q.Keyword + " examples", Value: "60"},
			{Query: q.Keyword + " tips", Value: "40"},
		},
		Rising: []trends.RelatedQuery{
			{Query: fmt.Sprintf("%s %d", q.Keyword, now.Year()), Value: "Breakout"},
			{Query: q.Keyword + " new", Value: "+500%"},
			{Query: q.Keyword + " latest", Value: "+300%"},
		},
	}

	return res, nil
}

func (p *Provider) TrendingSearches(_ context.Context, code string) (*trends.TrendingResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = trends.DefaultTrendingGeo
	}
	return &trends.TrendingResult{
		Geo:              code,
		Country:          geo.Name(code),
		Timestamp:        p.now().Format(time.RFC3339),
		TrendingSearches: trends.RankQueries(trending),
		DataSource:       dataSource,
	}, nil
}

func (p *Provider) Suggestions(_ context.Context, keyword string) (*trends.SuggestionsResult, error) {
	keyword = strings.TrimSpace(keyword)

	suggestions := make([]trends.Suggestion, 0, 3)
	for i, suffix := range []string{"tutorial", "guide", "examples"} {
		suggestions = append(suggestions, trends.Suggestion{
			Mid:   fmt.Sprintf("/m/%s%d", keyword, i+1),
			Title: keyword + " " + suffix,
			Type:  "Topic",
		})
	}

	return &trends.SuggestionsResult{
		Keyword:     keyword,
		Suggestions: suggestions,
		Timestamp:   p.now().Format(time.RFC3339),
		DataSource:  dataSource,
	}, nil
}

func (p *Provider) HealthCheck(context.Context) trends.Health {
	return trends.Health{
		Status:     trends.StatusHealthy,
		DataSource: dataSource,
		Timestamp:  p.now().Format(time.RFC3339),
		Note:       "Using fallback mock data",
	}
}

func seeded(parts ...string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.Join(parts, "\x00"))))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
