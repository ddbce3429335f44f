package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/worldtrends/explorer/pkg/cache"
)

type cached struct {
	Provider
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// Cached stores successful results of p in c for ttl. Cache failures never
// fail a request; the call simply goes to the provider. Keys keep the
// keyword's case because results echo it back. A hit is stamped with the time
// it is served.
func Cached(p Provider, c cache.Cache, ttl time.Duration) Provider {
	if c == nil || ttl <= 0 {
		return p
	}
	return &cached{Provider: p, cache: c, ttl: ttl, now: time.Now}
}

func (c *cached) key(parts ...string) string {
	return fmt.Sprintf("trends:%s:%s", strings.ToLower(c.Name()), strings.Join(parts, "|"))
}

func (c *cached) SearchTrends(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	q := query.Normalize()
	key := c.key("search", q.Keyword, q.Geo, q.Timeframe)

	var out SearchResult
	if c.load(ctx, key, &out) {
		out.Timestamp = c.timestamp()
		return &out, nil
	}
	res, err := c.Provider.SearchTrends(ctx, query)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, res)
	return res, nil
}

func (c *cached) TrendingSearches(ctx context.Context, geo string) (*TrendingResult, error) {
	key := c.key("trending", strings.ToUpper(strings.TrimSpace(geo)))

	var out TrendingResult
	if c.load(ctx, key, &out) {
		out.Timestamp = c.timestamp()
		return &out, nil
	}
	res, err := c.Provider.TrendingSearches(ctx, geo)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, res)
	return res, nil
}

func (c *cached) Suggestions(ctx context.Context, keyword string) (*SuggestionsResult, error) {
	key := c.key("suggestions", strings.TrimSpace(keyword))

	var out SuggestionsResult
	if c.load(ctx, key, &out) {
		out.Timestamp = c.timestamp()
		return &out, nil
	}
	res, err := c.Provider.Suggestions(ctx, keyword)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, res)
	return res, nil
}

func (c *cached) timestamp() string {
	return c.now().Format(time.RFC3339)
}

func (c *cached) load(ctx context.Context, key string, v any) bool {
	b, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

func (c *cached) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, key, b, c.ttl)
}
