package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/worldtrends/explorer/pkg/cache"
	cacheenv "github.com/worldtrends/explorer/pkg/env/cache"
	serpapienv "github.com/worldtrends/explorer/pkg/env/serpapi"
	"github.com/worldtrends/explorer/pkg/metrics"
	"github.com/worldtrends/explorer/pkg/trends"
	"github.com/worldtrends/explorer/pkg/trends/google"
	"github.com/worldtrends/explorer/pkg/trends/mock"
	"github.com/worldtrends/explorer/pkg/trends/serpapi"
)

const cachePrefix = "world-trends-explorer:"

func newCache(ce *cacheenv.Env) (cache.Cache, error) {
	if !ce.Enabled() {
		return nil, nil
	}
	if ce.RedisURL != "" {
		c, err := cache.NewRedis(ce.RedisURL, cachePrefix)
		if err != nil {
			return nil, fmt.Errorf("unable to configure Redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemory(ce.Size), nil
}

// newSelector registers the providers in priority order: SerpAPI, the
// Google Trends scraper and finally the mock data set.
func newSelector(ctx context.Context, logger *zap.SugaredLogger, se *serpapienv.Env, c cache.Cache, ce *cacheenv.Env, m *metrics.Metrics) *trends.Selector {
	wrap := func(p trends.Provider) trends.Provider {
		return trends.Cached(trends.Instrument(p, m), c, ce.TTL)
	}

	if !se.Configured() {
		logger.Warnf("SerpAPI key is not configured, provider will be skipped")
	}

	candidates := []trends.Provider{
		wrap(serpapi.New(se.Endpoint, se.APIKey, se.Timeout)),
		wrap(google.New()),
	}

	return trends.NewSelector(ctx, logger, wrap(mock.New()), candidates, trends.WithObserver(m))
}
