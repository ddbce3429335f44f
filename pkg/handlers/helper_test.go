package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/worldtrends/explorer/internal/test"
	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

var errFake = errors.New("test")

type fakeProvider struct {
	name    string
	status  string
	err     error
	failing map[string]bool

	mu      sync.Mutex
	queries []trends.SearchQuery
}

func (f *fakeProvider) Name() string {
	return f.name
}

func (f *fakeProvider) SearchTrends(_ context.Context, query trends.SearchQuery) (*trends.SearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.failing[query.Keyword] {
		return nil, errFake
	}

	result := trends.NewSearchResult(query)
	result.Timestamp = time.Now().Format(time.RFC3339)
	result.DataSource = "Fake Data"
	result.InterestOverTime = append(result.InterestOverTime, trends.TimelinePoint{Date: "2024-01-07", Value: 50})
	return result, nil
}

func (f *fakeProvider) TrendingSearches(_ context.Context, code string) (*trends.TrendingResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &trends.TrendingResult{
		Geo:              code,
		Country:          geo.Name(code),
		Timestamp:        time.Now().Format(time.RFC3339),
		TrendingSearches: trends.RankQueries([]string{"first", "second"}),
		DataSource:       "Fake Data",
	}, nil
}

func (f *fakeProvider) Suggestions(_ context.Context, keyword string) (*trends.SuggestionsResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &trends.SuggestionsResult{
		Keyword:     keyword,
		Suggestions: []trends.Suggestion{{Mid: "/m/" + keyword, Title: keyword, Type: "Topic"}},
		Timestamp:   time.Now().Format(time.RFC3339),
	}, nil
}

func (f *fakeProvider) HealthCheck(context.Context) trends.Health {
	status := f.status
	if status == "" {
		status = trends.StatusHealthy
	}
	return trends.Health{Status: status, DataSource: "Fake Data", Timestamp: time.Now().Format(time.RFC3339)}
}

func (f *fakeProvider) Queries() []trends.SearchQuery {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]trends.SearchQuery(nil), f.queries...)
}

// newConfig builds a configuration whose selector serves from the given
// fallback and candidates. A nil fallback with no candidates leaves the
// selector empty.
func newConfig(w io.Writer, fallback trends.Provider, candidates ...trends.Provider) *explorer.Config {
	logger := test.DummyLogger(w).Sugar()
	return &explorer.Config{
		Logger:   logger,
		Selector: trends.NewSelector(context.Background(), logger, fallback, candidates),
	}
}

func serve(t *testing.T, h http.Handler, r *http.Request) (int, string) {
	t.Helper()

	var body bytes.Buffer

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	actual := w.Result()
	defer func() { _ = actual.Body.Close() }()

	_, _ = io.Copy(&body, actual.Body)

	return actual.StatusCode, body.String()
}
