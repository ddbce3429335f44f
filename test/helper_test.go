//go:build integration
// +build integration

package test

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/orlangure/gnomock/preset/redis"
	"github.com/stretchr/testify/require"

	"github.com/worldtrends/explorer/internal/test/fakeserp"
)

const serpAPIKey = "integration"

func startPostgres(t *testing.T) *gnomock.Container {
	p := postgres.Preset(
		postgres.WithUser("gnomock", "gnomick"),
		postgres.WithDatabase("mydb"),
		postgres.WithVersion("12.5"),
	)

	psql, err := gnomock.Start(p, gnomock.WithUseLocalImagesFirst())
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(psql) })

	return psql
}

func startRedis(t *testing.T) *gnomock.Container {
	r, err := gnomock.Start(redis.Preset(), gnomock.WithUseLocalImagesFirst())
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(r) })

	return r
}

func startSerpAPI(t *testing.T) *httptest.Server {
	s := httptest.NewServer(fakeserp.NewHandler(serpAPIKey))
	t.Cleanup(s.Close)

	return s
}

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	return l.Addr().(*net.TCPAddr).Port
}

func setEnvironment(t *testing.T, port int, psql, cache *gnomock.Container, serp *httptest.Server) {
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("ENVIRONMENT", "test")

	t.Setenv("SERPAPI_KEY", serpAPIKey)
	t.Setenv("SERPAPI_ENDPOINT", serp.URL+"/search.json")
	t.Setenv("TRENDS_PROVIDER", "SerpAPI")

	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_HOST", psql.Host)
	t.Setenv("DB_PORT", fmt.Sprint(psql.DefaultPort()))
	t.Setenv("DB_USER", "gnomock")
	t.Setenv("DB_PASS", "gnomick")
	t.Setenv("DB_NAME", "mydb")

	t.Setenv("REDIS_URL", "redis://"+cache.DefaultAddress())
	t.Setenv("CACHE_TTL", "60")

	t.Setenv("AUTHORIZED_USERS", "admin")
}

func waitForServer(t *testing.T, port int) string {
	base := fmt.Sprintf("http://localhost:%d", port)

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthcheck")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Minute, 100*time.Millisecond)

	return base
}
