package models

import (
	"github.com/worldtrends/explorer/pkg/audit"
	"github.com/worldtrends/explorer/pkg/geo"
	"github.com/worldtrends/explorer/pkg/trends"
)

type CompareRequest struct {
	Keywords  []string `json:"keywords"`
	Geo       string   `json:"geo"`
	Timeframe string   `json:"timeframe"`
}

type SwitchProviderRequest struct {
	Provider string `json:"provider"`
}

type ErrorResponse struct {
	Error      string `json:"error"`
	APIVersion string `json:"api_version,omitempty"`
}

type HealthResponse struct {
	Status         string                   `json:"status"`
	Timestamp      string                   `json:"timestamp"`
	Service        string                   `json:"service"`
	ActiveProvider string                   `json:"active_provider,omitempty"`
	Providers      map[string]trends.Health `json:"providers,omitempty"`
	Version        string                   `json:"version,omitempty"`
	Features       []string                 `json:"features,omitempty"`
	Note           string                   `json:"note,omitempty"`
}

type CountriesResponse struct {
	Countries  []geo.Country `json:"countries"`
	Timestamp  string        `json:"timestamp"`
	APIVersion string        `json:"api_version"`
}

type CompareResponse struct {
	Keywords       []string               `json:"keywords"`
	Geo            string                 `json:"geo"`
	Timeframe      string                 `json:"timeframe"`
	Timestamp      string                 `json:"timestamp"`
	ComparisonData []*trends.SearchResult `json:"comparison_data"`
	APIVersion     string                 `json:"api_version"`
	ProviderUsed   string                 `json:"provider_used"`
}

type ProvidersResponse struct {
	ActiveProvider string                   `json:"active_provider"`
	Providers      map[string]trends.Health `json:"providers"`
	Timestamp      string                   `json:"timestamp"`
	APIVersion     string                   `json:"api_version"`
}

type SwitchProviderResponse struct {
	Success            bool     `json:"success"`
	ActiveProvider     string   `json:"active_provider,omitempty"`
	Error              string   `json:"error,omitempty"`
	AvailableProviders []string `json:"available_providers,omitempty"`
	Timestamp          string   `json:"timestamp,omitempty"`
}

type AuditLogResponse struct {
	Records    []audit.Record `json:"records"`
	Timestamp  string         `json:"timestamp"`
	APIVersion string         `json:"api_version"`
}
