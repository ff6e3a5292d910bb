// internal/workers/lead/notify-hot-lead/models.go
package notifyhotlead

import (
	"time"

	"rfq-lead-workers/internal/leadscoring"
)

const (
	StatusSent     = "sent"
	StatusSkipped  = "skipped"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	leadscoring.LeadScore
	SessionID     string  `json:"session_id"`
	Category      *string `json:"category"`
	TradeType     string  `json:"trade_type"`
	BuyerCompany  *string `json:"buyer_company"`
	BuyerLocation *string `json:"buyer_location"`
}

type ChannelResult struct {
	Channel   string `json:"channel"`
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Output struct {
	NotificationID string          `json:"notificationId"`
	Status         string          `json:"notificationStatus"`
	Channels       []ChannelResult `json:"channels,omitempty"`
	SentAt         *time.Time      `json:"sentAt,omitempty"`
}
