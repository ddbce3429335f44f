package explorer

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/worldtrends/explorer/pkg/audit"
	"github.com/worldtrends/explorer/pkg/cache"
	"github.com/worldtrends/explorer/pkg/env/user"
	"github.com/worldtrends/explorer/pkg/metrics"
	"github.com/worldtrends/explorer/pkg/trends"
)

const (
	APIVersion  = "1.1.0"
	ServiceName = "World Trends Explorer API"

	defaultRequestTimeout = 30 * time.Second
)

// Config is shared by every handler and middleware.
type Config struct {
	Selector *trends.Selector
	Audit    audit.Audit
	AuditLog audit.Reader
	Metrics  *metrics.Metrics
	UserEnv  *user.Env
	Cache    cache.Cache
	DB       *sql.DB
	Logger   *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func Debug() bool {
	for _, name := range []string{"DEBUG", "FLASK_DEBUG"} {
		if ok, err := strconv.ParseBool(os.Getenv(name)); err == nil && ok {
			return true
		}
	}
	return false
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := parseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

// Timestamp is the format used for every "timestamp" field in responses.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(math.Abs(float64(n))) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	if d < 0 {
		d = -d
	}
	return d, nil
}
