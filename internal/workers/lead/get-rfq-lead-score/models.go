// internal/workers/lead/get-rfq-lead-score/models.go
package getrfqleadscore

import "rfq-lead-workers/internal/leadscoring"

type Input struct {
	SessionID string `json:"session_id"`
}

type Output struct {
	leadscoring.LeadScore
	SessionID    string `json:"session_id"`
	LeadRecordID string `json:"leadRecordId"`
	ScoredAt     string `json:"scoredAt"`
	Source       string `json:"source"`
}

const (
	SourceCache = "cache"
	SourceStore = "store"
)
