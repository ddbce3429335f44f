package audit

import (
	"context"

	"go.uber.org/zap"
)

type LoggerAudit struct {
	Logger *zap.SugaredLogger
}

var _ Audit = (*LoggerAudit)(nil)

func NewLoggerAudit(logger *zap.SugaredLogger) *LoggerAudit {
	return &LoggerAudit{Logger: logger}
}

func (d *LoggerAudit) Write(_ context.Context, r *RequestData) error {
	d.Logger.Infow("AUDIT",
		"Endpoint", r.Endpoint,
		"Query", r.Query,
		"Geo", r.Geo,
		"User", r.User,
		"Timestamp", r.Timestamp,
	)
	return nil
}
