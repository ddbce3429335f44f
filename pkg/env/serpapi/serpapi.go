package serpapi

import (
	"os"
	"time"

	"github.com/worldtrends/explorer/pkg/env"
)

// Env configures the SerpAPI provider. A missing key is not an error here:
// the provider then reports itself unhealthy and is skipped at startup.
type Env struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

func NewSerpAPIEnv() *Env {
	return &Env{}
}

func (s *Env) Populate() error {
	s.APIKey = os.Getenv("SERPAPI_KEY")
	if s.APIKey == "" {
		s.APIKey = os.Getenv("SERPAPI_API_KEY")
	}

	s.Endpoint = os.Getenv("SERPAPI_ENDPOINT")

	if v := os.Getenv("SERPAPI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return &env.TypeError{Name: "SERPAPI_TIMEOUT"}
		}
		s.Timeout = d
	}

	return nil
}

func (s *Env) Configured() bool {
	return s.APIKey != ""
}
