package trends

import (
	"context"
	"sync"
)

type fakeProvider struct {
	name   string
	status string
	err    error
	panics bool

	mu    sync.Mutex
	calls int
}

func (f *fakeProvider) Name() string {
	return f.name
}

func (f *fakeProvider) SearchTrends(_ context.Context, query SearchQuery) (*SearchResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	res := NewSearchResult(query.Normalize())
	res.DataSource = f.name
	res.InterestOverTime = append(res.InterestOverTime, TimelinePoint{Date: "2025-01-01", Value: 50})
	return res, nil
}

func (f *fakeProvider) TrendingSearches(_ context.Context, geo string) (*TrendingResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &TrendingResult{Geo: geo, TrendingSearches: RankQueries([]string{"one", "two"})}, nil
}

func (f *fakeProvider) Suggestions(_ context.Context, keyword string) (*SuggestionsResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &SuggestionsResult{Keyword: keyword, Suggestions: []Suggestion{{Mid: "/m/1", Title: keyword, Type: "Topic"}}}, nil
}

func (f *fakeProvider) HealthCheck(context.Context) Health {
	if f.panics {
		panic("probe exploded")
	}
	return Health{Status: f.status, DataSource: f.name}
}

func (f *fakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
