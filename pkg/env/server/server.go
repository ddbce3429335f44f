package server

import (
	"os"
	"strconv"
	"strings"

	"github.com/worldtrends/explorer/pkg/env"
)

const defaultPort = 5000

type Env struct {
	Port        int
	CORSOrigins []string
	Provider    string
	LogFile     string
}

func NewServerEnv() *Env {
	return &Env{Port: defaultPort, CORSOrigins: []string{"*"}}
}

func (s *Env) Populate() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return &env.TypeError{Name: "PORT"}
		}
		s.Port = port
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			s.CORSOrigins = origins
		}
	}

	s.Provider = strings.TrimSpace(os.Getenv("TRENDS_PROVIDER"))
	s.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))

	return nil
}
