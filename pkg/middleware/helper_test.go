package middleware

import (
	"context"
	"sync"

	"github.com/worldtrends/explorer/pkg/audit"
)

type recordingAudit struct {
	err error

	mu      sync.Mutex
	records []audit.RequestData
}

func (a *recordingAudit) Write(_ context.Context, r *audit.RequestData) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, *r)
	return a.err
}

func (a *recordingAudit) Records() []audit.RequestData {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]audit.RequestData(nil), a.records...)
}
