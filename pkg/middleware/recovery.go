package middleware

import (
	"errors"
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
)

func Recovery(cfg *explorer.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					err, ok := v.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorf("Recovered from an error in %s %s: %v", r.Method, endpoint(r), v)
					writeError(cfg.Logger, w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
