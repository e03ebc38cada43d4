// internal/workers/matching/rank-candidate-matches/config.go
package rankcandidatematches

import "time"

type Config struct {
	CacheTTL       time.Duration
	CacheKeyPrefix string
	DefaultLimit   int
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL:       5 * time.Minute,
		CacheKeyPrefix: "matches",
		DefaultLimit:   10,
		Timeout:        30 * time.Second,
	}
}
