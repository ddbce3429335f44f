package trends

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	ErrorTypeConfig      = "config"
	ErrorTypeNetwork     = "network"
	ErrorTypeTimeout     = "timeout"
	ErrorTypeRateLimit   = "rate_limit"
	ErrorTypeUpstream5xx = "upstream_5xx"
	ErrorTypeUpstream    = "upstream"
	ErrorTypeUnknown     = "unknown"
)

type TypedError struct {
	Type string
	Err  error
}

func (e *TypedError) Error() string {
	if e == nil {
		return "unknown error"
	}
	if e.Err == nil {
		return e.Type
	}
	return e.Err.Error()
}

func (e *TypedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewTypedError(errorType string, err error) error {
	if err == nil {
		return &TypedError{Type: errorType, Err: errors.New(errorType)}
	}
	return &TypedError{Type: errorType, Err: err}
}

// UpstreamStatusError classifies a non-2xx upstream HTTP status.
func UpstreamStatusError(code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return NewTypedError(ErrorTypeRateLimit, err)
	case code >= 500:
		return NewTypedError(ErrorTypeUpstream5xx, err)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return NewTypedError(ErrorTypeConfig, err)
	default:
		return NewTypedError(ErrorTypeUpstream, err)
	}
}

func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	var typed *TypedError
	if errors.As(err, &typed) && strings.TrimSpace(typed.Type) != "" {
		return typed.Type
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeTimeout
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if strings.Contains(msg, "timeout") {
		return ErrorTypeTimeout
	}
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable") {
		return ErrorTypeNetwork
	}
	if strings.Contains(msg, "429") {
		return ErrorTypeRateLimit
	}
	return ErrorTypeUnknown
}

// HTTPStatus maps a provider error onto the status returned to API clients.
// Failures caused by the upstream data source are reported as 503.
func HTTPStatus(err error) int {
	switch ClassifyError(err) {
	case ErrorTypeNetwork, ErrorTypeTimeout, ErrorTypeRateLimit, ErrorTypeUpstream5xx, ErrorTypeUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
