package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	explorer "github.com/worldtrends/explorer/pkg"
)

// Metrics records the status code and latency of every request under its
// route template.
func Metrics(cfg *explorer.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Metrics == nil {
				h.ServeHTTP(w, r)
				return
			}

			m := httpsnoop.CaptureMetrics(h, w, r)

			route := "unmatched"
			if mux.CurrentRoute(r) != nil {
				route = endpoint(r)
			}
			cfg.Metrics.ObserveRequest(route, r.Method, m.Code, m.Duration)
		})
	}
}
