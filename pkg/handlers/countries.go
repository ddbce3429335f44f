package handlers

import (
	"net/http"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/models"
)

func Countries(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(cfg, w, http.StatusOK, models.CountriesResponse{
			Countries:  geo.Countries(),
			Timestamp:  explorer.Timestamp(),
			APIVersion: explorer.APIVersion,
		})
	})
}
