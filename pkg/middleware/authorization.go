package middleware

import (
	"context"
	"fmt"
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
)

// Authorization restricts the wrapped handler to the configured operators.
// With no operators configured every request is let through.
func Authorization(cfg *explorer.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user := r.Header.Get(forwardedUserHeader)

			if cfg.UserEnv == nil || !cfg.UserEnv.Enabled() {
				if user != "" {
					ctx = context.WithValue(ctx, ContextKeyUser, user)
				}
				h.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if user == "" {
				l := fmt.Sprintf("Request without required header: %s", forwardedUserHeader)
				writeError(cfg.Logger, w, http.StatusBadRequest, l)
				return
			}

			if !cfg.UserEnv.Allowed(user) {
				l := "User does not have required permissions"
				cfg.Logger.Errorf("%s: %s", l, user)
				writeError(cfg.Logger, w, http.StatusForbidden, l)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
