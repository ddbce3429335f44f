package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	explorer "github.com/worldtrends/explorer/pkg"
)

// Healthcheck is the liveness probe. It never calls the upstream data
// sources so that probing does not spend API quota.
func Healthcheck(cfg *explorer.Config) http.Handler {
	options := []healthcheck.Option{
		healthcheck.WithTimeout(5 * time.Second),
		healthcheck.WithChecker(
			"provider", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if cfg.Selector == nil || cfg.Selector.Active() == nil {
						return errors.New("no data provider available")
					}
					return nil
				},
			),
		),
	}

	if cfg.DB != nil {
		options = append(options, healthcheck.WithChecker(
			"database", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.DB.PingContext(ctx); err != nil {
						cfg.Logger.Errorf("Failed to connect to audit database as part of healthcheck ping: %s", err)
						return errors.New("unable to connect to the audit database")
					}
					return nil
				},
			),
		))
	}

	if cfg.Cache != nil {
		options = append(options, healthcheck.WithChecker(
			"cache", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Cache.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Failed to reach cache as part of healthcheck ping: %s", err)
						return errors.New("unable to reach the cache")
					}
					return nil
				},
			),
		))
	}

	return healthcheck.Handler(options...)
}
