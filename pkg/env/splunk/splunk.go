package splunk

import (
	"os"
	"strings"

	"github.com/worldtrends/explorer/pkg/env"
)

// Env configures the Splunk HTTP Event Collector audit sink. The sink is
// disabled unless SPLUNK_ENDPOINT is set; once it is, the index and token
// become mandatory.
type Env struct {
	Index     string
	Endpoint  string
	Token     string
	Host      string
	Namespace string
	Pod       string
}

func NewSplunkEnv() *Env {
	return &Env{}
}

func (s *Env) Populate() error {
	endpoint := strings.TrimRight(os.Getenv("SPLUNK_ENDPOINT"), "/")
	if endpoint == "" {
		return nil
	}
	s.Endpoint = endpoint

	index := os.Getenv("SPLUNK_INDEX")
	if index == "" {
		return &env.Error{Name: "SPLUNK_INDEX"}
	}
	s.Index = index

	token := os.Getenv("SPLUNK_TOKEN")
	if token == "" {
		return &env.Error{Name: "SPLUNK_TOKEN"}
	}
	s.Token = token

	s.Host = os.Getenv("HOST")
	if s.Host == "" {
		s.Host, _ = os.Hostname()
	}
	s.Namespace = os.Getenv("NAMESPACE")
	s.Pod = os.Getenv("POD_NAME")

	return nil
}

func (s *Env) Enabled() bool {
	return s.Endpoint != ""
}
