// internal/workers/dashboard/compute-dashboard-stats/config.go
package computedashboardstats

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
