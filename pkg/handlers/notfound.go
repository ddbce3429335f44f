package handlers

import (
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/models"
)

func NotFound(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(cfg, w, http.StatusNotFound, models.ErrorResponse{
			Error:      "Endpoint not found",
			APIVersion: explorer.APIVersion,
		})
	})
}

func MethodNotAllowed(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(cfg, w, http.StatusMethodNotAllowed, models.ErrorResponse{
			Error:      "Method not allowed",
			APIVersion: explorer.APIVersion,
		})
	})
}
