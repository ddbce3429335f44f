package handlers

import (
	"net/http"
	"strconv"

	explorer "github.com/worldtrends/explorer/pkg"
	"github.com/worldtrends/explorer/pkg/audit"
	"github.com/worldtrends/explorer/pkg/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditLog lists the most recent audit records kept in the database.
func AuditLog(cfg *explorer.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.AuditLog == nil {
			writeError(cfg, w, http.StatusNotFound, "Audit log is not enabled")
			return
		}

		limit := uint64(defaultAuditLimit)
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil || n == 0 {
				writeError(cfg, w, http.StatusBadRequest, "Invalid limit parameter: "+s)
				return
			}
			limit = min(n, maxAuditLimit)
		}

		records, err := cfg.AuditLog.Recent(r.Context(), limit)
		if err != nil {
			cfg.Logger.Errorf("Unable to read audit log: %s", err)
			writeError(cfg, w, http.StatusInternalServerError, "Failed to read audit log")
			return
		}
		if records == nil {
			records = []audit.Record{}
		}

		writeJSON(cfg, w, http.StatusOK, models.AuditLogResponse{
			Records:    records,
			Timestamp:  explorer.Timestamp(),
			APIVersion: explorer.APIVersion,
		})
	})
}
