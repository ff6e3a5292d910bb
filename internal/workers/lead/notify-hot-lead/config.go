// internal/workers/lead/notify-hot-lead/config.go
package notifyhotlead

import (
	"time"

	"rfq-lead-workers/internal/common/config"
)

type Config struct {
	EmailEnabled   bool
	SMSEnabled     bool
	SalesDeskEmail string
	SalesDeskPhone string
	Timeout        time.Duration
	MaxRetries     int
}

func LoadConfig(n config.NotificationConfig) *Config {
	return &Config{
		EmailEnabled:   n.Email.Enabled,
		SMSEnabled:     n.SMS.Enabled,
		SalesDeskEmail: n.Email.SalesDeskEmail,
		SalesDeskPhone: n.SMS.SalesDeskPhone,
		Timeout:        15 * time.Second,
		MaxRetries:     2,
	}
}
