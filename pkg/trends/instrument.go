package trends

import "context"

type instrumented struct {
	Provider
	observer Observer
}

// Instrument reports every data call made through p to o.
func Instrument(p Provider, o Observer) Provider {
	if o == nil {
		return p
	}
	return &instrumented{Provider: p, observer: o}
}

func (i *instrumented) SearchTrends(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	res, err := i.Provider.SearchTrends(ctx, query)
	i.observer.ObserveProviderCall(i.Name(), "search", err)
	return res, err
}

func (i *instrumented) TrendingSearches(ctx context.Context, geo string) (*TrendingResult, error) {
	res, err := i.Provider.TrendingSearches(ctx, geo)
	i.observer.ObserveProviderCall(i.Name(), "trending", err)
	return res, err
}

func (i *instrumented) Suggestions(ctx context.Context, keyword string) (*SuggestionsResult, error) {
	res, err := i.Provider.Suggestions(ctx, keyword)
	i.observer.ObserveProviderCall(i.Name(), "suggestions", err)
	return res, err
}
