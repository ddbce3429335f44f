package middleware

import (
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/env/user"
)

func Expiration(cfg *explorer.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.UserEnv != nil && cfg.UserEnv.IsExpired() {
				l := "Administrative access has expired"
				cfg.Logger.Errorf("%s (expiration date: %s)", l,
					cfg.UserEnv.Expiration.Format(user.ExpiryDateLayout),
				)
				writeError(cfg.Logger, w, http.StatusForbidden, l)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
