// internal/workers/profiles/search-profiles/config.go
package searchprofiles

import "time"

type Config struct {
	Index       string
	DefaultSize int
	MaxSize     int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:       "profiles",
		DefaultSize: 20,
		MaxSize:     100,
		Timeout:     15 * time.Second,
	}
}
