// Package google scrapes Google Trends directly through gogtrends. It needs
// no credentials but is subject to Google's rate limiting.
package google

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/groovili/gogtrends"

	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	language   = "en-US"
	dataSource = "Google Trends"

	widgetTimeseries = "TIMESERIES"
	widgetGeoMap     = "GEO_MAP"
	widgetRelated    = "RELATED_QUERIES"
	widgetTopics     = "RELATED_TOPICS"
)

// Client is the subset of gogtrends used by the provider.
type Client interface {
	Explore(ctx context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error)
	InterestOverTime(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.Timeline, error)
	InterestByLocation(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.GeoMap, error)
	Related(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.RankedKeyword, error)
	Daily(ctx context.Context, hl, loc string) ([]*gogtrends.TrendingSearch, error)
}

type scraper struct{}

func (scraper) Explore(ctx context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error) {
	return gogtrends.Explore(ctx, r, hl)
}

func (scraper) InterestOverTime(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.Timeline, error) {
	return gogtrends.InterestOverTime(ctx, w, hl)
}

func (scraper) InterestByLocation(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.GeoMap, error) {
	return gogtrends.InterestByLocation(ctx, w, hl)
}

func (scraper) Related(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.RankedKeyword, error) {
	return gogtrends.Related(ctx, w, hl)
}

func (scraper) Daily(ctx context.Context, hl, loc string) ([]*gogtrends.TrendingSearch, error) {
	return gogtrends.Daily(ctx, hl, loc)
}

type Provider struct {
	client Client
	now    func() time.Time
}

var _ trends.Provider = (*Provider)(nil)

func New() *Provider {
	return NewWithClient(scraper{})
}

func NewWithClient(client Client) *Provider {
	return &Provider{client: client, now: time.Now}
}

func (p *Provider) Name() string {
	return trends.ProviderGoogle
}

// SearchTrends builds the explore widgets for the keyword and reads the
// timeline from them. Regional and related data are best effort.
func (p *Provider) SearchTrends(ctx context.Context, query trends.SearchQuery) (*trends.SearchResult, error) {
	q := query.Normalize()
	if q.Keyword == "" {
		return nil, trends.NewTypedError(trends.ErrorTypeConfig, errors.New("keyword is required"))
	}

	widgets, err := p.client.Explore(ctx, &gogtrends.ExploreRequest{
		ComparisonItems: []*gogtrends.ComparisonItem{{
			Keyword: q.Keyword,
			Geo:     q.Geo,
			Time:    q.Timeframe,
		}},
		Category: 0,
		Property: "",
	}, language)
	if err != nil {
		return nil, classify("explore", err)
	}

	timeseries := widget(widgets, widgetTimeseries)
	if timeseries == nil {
		return nil, trends.NewTypedError(trends.ErrorTypeUpstream, errors.New("google trends returned no timeline widget"))
	}
	timeline, err := p.client.InterestOverTime(ctx, timeseries, language)
	if err != nil {
		return nil, classify("interest over time", err)
	}

	res := trends.NewSearchResult(q)
	res.Timestamp = p.now().Format(time.RFC3339)
	res.DataSource = dataSource
	res.Note = "Data scraped from Google Trends"

	for _, point := range timeline {
		if point == nil || len(point.Value) == 0 {
			continue
		}
		res.InterestOverTime = append(res.InterestOverTime, trends.TimelinePoint{
			Date:  timelineDate(point.Time, point.FormattedTime),
			Value: point.Value[0],
		})
	}

	if w := widget(widgets, widgetGeoMap); w != nil {
		if regions, err := p.client.InterestByLocation(ctx, w, language); err == nil {
			for _, region := range regions {
				if region == nil || len(region.Value) == 0 || region.Value[0] <= 0 {
					continue
				}
				res.InterestByRegion = append(res.InterestByRegion, trends.RegionInterest{
					GeoName: region.GeoName,
					GeoCode: region.GeoCode,
					Value:   region.Value[0],
				})
			}
		}
	}

	if w := widget(widgets, widgetRelated); w != nil {
		if related, err := p.client.Related(ctx, w, language); err == nil {
			res.RelatedQueries = splitRelated(related)
		}
	}

	return res, nil
}

func (p *Provider) TrendingSearches(ctx context.Context, code string) (*trends.TrendingResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = trends.DefaultTrendingGeo
	}

	daily, err := p.client.Daily(ctx, language, code)
	if err != nil {
		return nil, classify("daily trends", err)
	}

	queries := make([]string, 0, len(daily))
	for _, item := range daily {
		if item == nil || item.Title == nil {
			continue
		}
		queries = append(queries, item.Title.Query)
	}

	return &trends.TrendingResult{
		Geo:              code,
		Country:          geo.Name(code),
		Timestamp:        p.now().Format(time.RFC3339),
		TrendingSearches: trends.RankQueries(queries),
		DataSource:       dataSource,
	}, nil
}

// Suggestions reads the related topics widget of the keyword's explore page.
// Each topic carries the knowledge graph id, title and type Google uses for
// its own autocomplete entries.
func (p *Provider) Suggestions(ctx context.Context, keyword string) (*trends.SuggestionsResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, trends.NewTypedError(trends.ErrorTypeConfig, errors.New("keyword is required"))
	}

	widgets, err := p.client.Explore(ctx, &gogtrends.ExploreRequest{
		ComparisonItems: []*gogtrends.ComparisonItem{{
			Keyword: keyword,
			Time:    trends.DefaultTimeframe,
		}},
	}, language)
	if err != nil {
		return nil, classify("suggestions", err)
	}

	suggestions := make([]trends.Suggestion, 0)
	if w := widget(widgets, widgetTopics); w != nil {
		topics, err := p.client.Related(ctx, w, language)
		if err != nil {
			return nil, classify("related topics", err)
		}

		seen := make(map[string]bool, len(topics))
		for _, k := range topics {
			if k == nil || k.Topic.Title == "" {
				continue
			}
			id := k.Topic.Mid + "|" + k.Topic.Title
			if seen[id] {
				continue
			}
			seen[id] = true
			suggestions = append(suggestions, trends.Suggestion{
				Mid:   k.Topic.Mid,
				Title: k.Topic.Title,
				Type:  k.Topic.Type,
			})
		}
	}

	return &trends.SuggestionsResult{
		Keyword:     keyword,
		Suggestions: suggestions,
		Timestamp:   p.now().Format(time.RFC3339),
		DataSource:  dataSource,
	}, nil
}

func (p *Provider) HealthCheck(ctx context.Context) trends.Health {
	health := trends.Health{
		DataSource: dataSource,
		Timestamp:  p.now().Format(time.RFC3339),
	}

	_, err := p.client.Explore(ctx, &gogtrends.ExploreRequest{
		ComparisonItems: []*gogtrends.ComparisonItem{{Keyword: "test", Time: "now 7-d"}},
	}, language)
	if err != nil {
		health.Status = trends.StatusUnhealthy
		health.Note = fmt.Sprintf("Google Trends connection failed: %s", err)
		return health
	}

	health.Status = trends.StatusHealthy
	health.Note = "Google Trends connection successful"
	return health
}

func widget(widgets []*gogtrends.ExploreWidget, id string) *gogtrends.ExploreWidget {
	for _, w := range widgets {
		if w != nil && strings.EqualFold(w.ID, id) {
			return w
		}
	}
	return nil
}

// splitRelated separates the flat ranked list into top and rising queries.
// Rising entries carry a growth label ("+250%" or "Breakout") instead of a
// plain score.
func splitRelated(keywords []*gogtrends.RankedKeyword) trends.RelatedQueries {
	out := trends.RelatedQueries{Top: []trends.RelatedQuery{}, Rising: []trends.RelatedQuery{}}
	for _, k := range keywords {
		if k == nil || strings.TrimSpace(k.Query) == "" {
			continue
		}
		label := strings.TrimSpace(k.FormattedValue)
		if strings.HasPrefix(label, "+") || strings.EqualFold(label, "Breakout") {
			out.Rising = append(out.Rising, trends.RelatedQuery{Query: k.Query, Value: label})
			continue
		}
		out.Top = append(out.Top, trends.RelatedQuery{Query: k.Query, Value: strconv.Itoa(k.Value)})
	}
	return out
}

func timelineDate(unix, formatted string) string {
	if secs, err := strconv.ParseInt(strings.TrimSpace(unix), 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC().Format(time.RFC3339)
	}
	return formatted
}

func classify(operation string, err error) error {
	err = fmt.Errorf("google trends %s failed: %w", operation, err)
	switch trends.ClassifyError(err) {
	case trends.ErrorTypeUnknown:
		return trends.NewTypedError(trends.ErrorTypeUpstream, err)
	default:
		return trends.NewTypedError(trends.ClassifyError(err), err)
	}
}
