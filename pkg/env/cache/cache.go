package cache

import (
	"os"
	"strconv"
	"time"

	"github.com/worldtrends/explorer/pkg/env"
)

const (
	defaultTTL  = 5 * time.Minute
	defaultSize = 512
)

// Env configures response caching. CACHE_TTL=0 turns caching off; REDIS_URL
// switches from the in-process cache to Redis.
type Env struct {
	TTL      time.Duration
	Size     int
	RedisURL string
}

func NewCacheEnv() *Env {
	return &Env{TTL: defaultTTL, Size: defaultSize}
}

func (c *Env) Populate() error {
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.TTL = time.Duration(n) * time.Second
		} else if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.TTL = d
		} else {
			return &env.TypeError{Name: "CACHE_TTL"}
		}
	}

	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return &env.TypeError{Name: "CACHE_SIZE"}
		}
		c.Size = n
	}

	c.RedisURL = os.Getenv("REDIS_URL")

	return nil
}

func (c *Env) Enabled() bool {
	return c.TTL > 0
}
