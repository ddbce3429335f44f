package audit

import (
	"context"
	"errors"
)

// Audit records who asked for what. Implementations must be safe for
// concurrent use.
type Audit interface {
	Write(ctx context.Context, r *RequestData) error
}

// Reader lists stored audit records, newest first.
type Reader interface {
	Recent(ctx context.Context, limit uint64) ([]Record, error)
}

type RequestData struct {
	Endpoint  string
	Query     string
	Geo       string
	User      string
	Timestamp int64
}

// Multi writes to every sink and joins their errors.
type Multi []Audit

var _ Audit = (Multi)(nil)

func (m Multi) Write(ctx context.Context, r *RequestData) error {
	var errs []error
	for _, a := range m {
		if a == nil {
			continue
		}
		if err := a.Write(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
