package middleware

import (
	"fmt"
	"net/http"
	"time"

	explorer "github.com/worldtrends/explorer/pkg"
)

var timeoutBody = fmt.Sprintf(`{"error":"Request timed out","api_version":%q}`, explorer.APIVersion)

// Timeout bounds the time a handler (and the provider calls it makes) may
// take. Every response under it is JSON, so the content type is set up front
// for the timeout body as well.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		th := http.TimeoutHandler(h, timeout, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
