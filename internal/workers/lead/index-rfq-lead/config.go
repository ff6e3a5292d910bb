// internal/workers/lead/index-rfq-lead/config.go
package indexrfqlead

import "time"

type Config struct {
	IndexName  string
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig() *Config {
	return &Config{
		IndexName:  "rfq-leads",
		Timeout:    10 * time.Second,
		MaxRetries: 3,
	}
}
