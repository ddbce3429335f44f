package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/audit"
)

// maxBodySize bounds the JSON bodies read before the handler runs.
const maxBodySize = 64 << 10

// auditBody covers the JSON bodies accepted by the API.
type auditBody struct {
	Keywords []string `json:"keywords"`
	Geo      string   `json:"geo"`
	Provider string   `json:"provider"`
}

// Audit records every request before it reaches the handler. Failing to
// write the record is logged and never fails the request.
func Audit(cfg *explorer.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Audit == nil {
				h.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			now := time.Now()

			user, _ := ctx.Value(ContextKeyUser).(string)
			if user == "" {
				user = r.Header.Get(forwardedUserHeader)
			}

			params := r.URL.Query()
			data := &audit.RequestData{
				Endpoint:  endpoint(r),
				Query:     strings.TrimSpace(params.Get("keyword")),
				Geo:       strings.ToUpper(strings.TrimSpace(params.Get("geo"))),
				User:      user,
				Timestamp: now.Unix(),
			}

			if r.Body != nil && r.Method != http.MethodGet {
				var b bytes.Buffer
				if _, err := io.Copy(&b, http.MaxBytesReader(w, r.Body, maxBodySize)); err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						writeError(cfg.Logger, w, http.StatusRequestEntityTooLarge, "Request body too large")
						return
					}
					cfg.Logger.Errorf("Unable to copy request body: %s", err)
					writeError(cfg.Logger, w, http.StatusBadRequest, "Unable to read request body")
					return
				}
				_ = r.Body.Close()

				r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

				var body auditBody
				if err := json.Unmarshal(b.Bytes(), &body); err != nil {
					cfg.Logger.Debugf("Unable to unmarshal request body: %s", err)
				} else {
					if len(body.Keywords) > 0 {
						data.Query = strings.Join(body.Keywords, ", ")
					} else if body.Provider != "" {
						data.Query = body.Provider
					}
					if body.Geo != "" {
						data.Geo = strings.ToUpper(strings.TrimSpace(body.Geo))
					}
				}
			}

			if err := cfg.Audit.Write(context.WithoutCancel(ctx), data); err != nil {
				cfg.Logger.Errorf("Unable to write audit record: %s", err)
			}
			h.ServeHTTP(w, r)
		})
	}
}

func endpoint(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}
