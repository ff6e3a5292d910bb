// internal/workers/lead/get-rfq-lead-score/config.go
package getrfqleadscore

import "time"

type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
	}
}
