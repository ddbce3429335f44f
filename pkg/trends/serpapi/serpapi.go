// Package serpapi implements the trends provider on top of the SerpAPI
// Google Trends, trending now and autocomplete engines.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	DefaultEndpoint = "https://serpapi.com/search.json"
	DefaultTimeout  = 30 * time.Second

	healthTimeout = 5 * time.Second
	dataSource    = "SerpAPI"
	userAgent     = "world-trends-explorer/1.1 (+trends)"
)

type Provider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	now      func() time.Time
}

var _ trends.Provider = (*Provider)(nil)

func New(endpoint, apiKey string, timeout time.Duration) *Provider {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

func (p *Provider) Name() string {
	return trends.ProviderSerpAPI
}

type timeseriesResponse struct {
	InterestOverTime struct {
		TimelineData []struct {
			Date      string `json:"date"`
			Timestamp string `json:"timestamp"`
			Values    []struct {
				Value          flexInt `json:"value"`
				ExtractedValue flexInt `json:"extracted_value"`
			} `json:"values"`
		} `json:"timeline_data"`
	} `json:"interest_over_time"`
}

type geoMapResponse struct {
	InterestByRegion []struct {
		Geo            string  `json:"geo"`
		Location       string  `json:"location"`
		Value          flexInt `json:"value"`
		ExtractedValue flexInt `json:"extracted_value"`
	} `json:"interest_by_region"`
}

type relatedQuery struct {
	Query          string          `json:"query"`
	Value          json.RawMessage `json:"value"`
	ExtractedValue json.RawMessage `json:"extracted_value"`
}

type relatedQueriesResponse struct {
	RelatedQueries struct {
		Top    []relatedQuery `json:"top"`
		Rising []relatedQuery `json:"rising"`
	} `json:"related_queries"`
}

type trendingResponse struct {
	TrendingSearches []struct {
		Query string `json:"query"`
	} `json:"trending_searches"`
}

type autocompleteResponse struct {
	Suggestions []struct {
		Value string `json:"value"`
	} `json:"suggestions"`
}

// SearchTrends fetches the timeline, the regional breakdown and the related
// queries concurrently. Only the timeline is required; the other two fall
// back to empty data.
func (p *Provider) SearchTrends(ctx context.Context, query trends.SearchQuery) (*trends.SearchResult, error) {
	q := query.Normalize()
	if q.Keyword == "" {
		return nil, trends.NewTypedError(trends.ErrorTypeConfig, errors.New("keyword is required"))
	}

	params := url.Values{}
	params.Set("engine", "google_trends")
	params.Set("q", q.Keyword)
	params.Set("date", trends.ConvertTimeframe(q.Timeframe, p.now()))
	if q.Geo != "" {
		params.Set("geo", q.Geo)
	}

	var (
		timeline timeseriesResponse
		regions  geoMapResponse
		related  relatedQueriesResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.get(gctx, withDataType(params, "TIMESERIES"), &timeline)
	})
	g.Go(func() error {
		if err := p.get(gctx, withDataType(params, "GEO_MAP_0"), &regions); err != nil {
			regions = geoMapResponse{}
		}
		return nil
	})
	g.Go(func() error {
		if err := p.get(gctx, withDataType(params, "RELATED_QUERIES"), &related); err != nil {
			related = relatedQueriesResponse{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := trends.NewSearchResult(q)
	res.Timestamp = p.now().Format(time.RFC3339)
	res.DataSource = dataSource
	res.Note = "Data provided by SerpAPI Google Trends"

	for _, item := range timeline.InterestOverTime.TimelineData {
		value := 0
		if len(item.Values) > 0 {
			value = item.Values[0].ExtractedValue.Or(item.Values[0].Value)
		}
		res.InterestOverTime = append(res.InterestOverTime, trends.TimelinePoint{
			Date:  timelineDate(item.Date, item.Timestamp),
			Value: value,
		})
	}

	for _, item := range regions.InterestByRegion {
		res.InterestByRegion = append(res.InterestByRegion, trends.RegionInterest{
			GeoName: item.Location,
			GeoCode: item.Geo,
			Value:   item.ExtractedValue.Or(item.Value),
		})
	}

	for _, item := range related.RelatedQueries.Top {
		res.RelatedQueries.Top = append(res.RelatedQueries.Top, trends.RelatedQuery{
			Query: item.Query,
			Value: relatedValue(item, ""),
		})
	}
	for _, item := range related.RelatedQueries.Rising {
		res.RelatedQueries.Rising = append(res.RelatedQueries.Rising, trends.RelatedQuery{
			Query: item.Query,
			Value: relatedValue(item, "Breakout"),
		})
	}

	return res, nil
}

func (p *Provider) TrendingSearches(ctx context.Context, code string) (*trends.TrendingResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = trends.DefaultTrendingGeo
	}

	params := url.Values{}
	params.Set("engine", "google_trends_trending_now")
	params.Set("geo", code)

	var payload trendingResponse
	if err := p.get(ctx, params, &payload); err != nil {
		return nil, err
	}

	queries := make([]string, 0, len(payload.TrendingSearches))
	for _, item := range payload.TrendingSearches {
		queries = append(queries, item.Query)
	}

	return &trends.TrendingResult{
		Geo:              code,
		Country:          geo.Name(code),
		Timestamp:        p.now().Format(time.RFC3339),
		TrendingSearches: trends.RankQueries(queries),
		DataSource:       dataSource,
	}, nil
}

func (p *Provider) Suggestions(ctx context.Context, keyword string) (*trends.SuggestionsResult, error) {
	keyword = strings.TrimSpace(keyword)

	params := url.Values{}
	params.Set("engine", "google_autocomplete")
	params.Set("q", keyword)
	params.Set("gl", "us")

	var payload autocompleteResponse
	if err := p.get(ctx, params, &payload); err != nil {
		return nil, err
	}

	suggestions := make([]trends.Suggestion, 0, len(payload.Suggestions))
	for _, item := range payload.Suggestions {
		title := strings.TrimSpace(item.Value)
		if title == "" {
			continue
		}
		suggestions = append(suggestions, trends.Suggestion{
			Mid:   fmt.Sprintf("/m/%s_%d", keyword, len(suggestions)),
			Title: title,
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

// HealthCheck issues a small timeline request. Any HTTP answer other than
// 200 degrades the provider; a transport failure or a missing key makes it
// unhealthy.
func (p *Provider) HealthCheck(ctx context.Context) trends.Health {
	health := trends.Health{
		DataSource: dataSource,
		Timestamp:  p.now().Format(time.RFC3339),
	}
	if p.apiKey == "" {
		health.Status = trends.StatusUnhealthy
		health.Note = "SerpAPI key is not configured"
		return health
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("engine", "google_trends")
	params.Set("q", "test")
	params.Set("data_type", "TIMESERIES")

	req, err := p.request(ctx, params)
	if err != nil {
		health.Status = trends.StatusUnhealthy
		health.Note = fmt.Sprintf("SerpAPI connection failed: %s", err)
		return health
	}
	res, err := p.client.Do(req)
	if err != nil {
		health.Status = trends.StatusUnhealthy
		health.Note = fmt.Sprintf("SerpAPI connection failed: %s", err)
		return health
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))

	if res.StatusCode != http.StatusOK {
		health.Status = trends.StatusDegraded
		health.Note = fmt.Sprintf("SerpAPI returned status %d", res.StatusCode)
		return health
	}
	health.Status = trends.StatusHealthy
	health.Note = "SerpAPI connection successful"
	return health
}

func (p *Provider) request(ctx context.Context, params url.Values) (*http.Request, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, trends.NewTypedError(trends.ErrorTypeConfig, fmt.Errorf("invalid serpapi endpoint: %w", err))
	}

	query := u.Query()
	for key, values := range params {
		query[key] = values
	}
	query.Set("api_key", p.apiKey)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, trends.NewTypedError(trends.ErrorTypeUnknown, fmt.Errorf("create serpapi request failed: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func (p *Provider) get(ctx context.Context, params url.Values, out interface{}) error {
	if p.apiKey == "" {
		return trends.NewTypedError(trends.ErrorTypeConfig, errors.New("serpapi api key is missing"))
	}

	req, err := p.request(ctx, params)
	if err != nil {
		return err
	}

	res, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
			return trends.NewTypedError(trends.ErrorTypeTimeout, fmt.Errorf("serpapi request failed: %w", err))
		}
		return trends.NewTypedError(trends.ErrorTypeNetwork, fmt.Errorf("serpapi request failed: %w", err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return trends.NewTypedError(trends.ErrorTypeNetwork, fmt.Errorf("read serpapi response failed: %w", err))
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		detail := upstreamError(body)
		if detail == "" {
			detail = res.Status
		}
		return trends.UpstreamStatusError(res.StatusCode, fmt.Errorf("serpapi http %d: %s", res.StatusCode, detail))
	}

	if detail := upstreamError(body); detail != "" {
		return trends.NewTypedError(trends.ErrorTypeUpstream, fmt.Errorf("serpapi: %s", detail))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return trends.NewTypedError(trends.ErrorTypeUnknown, fmt.Errorf("decode serpapi response failed: %w", err))
	}
	return nil
}

func withDataType(params url.Values, dataType string) url.Values {
	out := make(url.Values, len(params)+1)
	for key, values := range params {
		out[key] = append([]string(nil), values...)
	}
	out.Set("data_type", dataType)
	return out
}

// upstreamError returns the "error" field SerpAPI sets on failed searches.
func upstreamError(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

// timelineDate prefers the unix timestamp, which is unambiguous, over the
// human readable date label.
func timelineDate(label, timestamp string) string {
	if secs, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC().Format(time.RFC3339)
	}
	return label
}

func relatedValue(item relatedQuery, fallback string) string {
	for _, raw := range []json.RawMessage{item.Value, item.ExtractedValue} {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return fallback
}

// flexInt decodes numbers that SerpAPI sends either as JSON numbers or as
// numeric strings such as "<1".
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if strings.HasPrefix(raw, "<") {
			f.value, f.set = 0, true
			return nil
		}
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	f.value, f.set = int(n), true
	return nil
}

// Or returns the decoded value, or the other value when this one was absent.
func (f flexInt) Or(other flexInt) int {
	if f.set {
		return f.value
	}
	return other.value
}
