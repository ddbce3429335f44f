package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/models"
)

type ctxKey string

const (
	ContextKeyUser ctxKey = "user"
)

const (
	forwardedUserHeader = "X-Forwarded-User"
)

type Middleware func(http.Handler) http.Handler

func writeError(logger *zap.SugaredLogger, w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(models.ErrorResponse{Error: message, APIVersion: explorer.APIVersion})
	if err != nil {
		logger.Errorf("Failed to encode response: %s", err)
	}
}
