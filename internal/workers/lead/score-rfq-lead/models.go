// internal/workers/lead/score-rfq-lead/models.go
package scorerfqlead

import "rfq-lead-workers/internal/leadscoring"

// Input is the RFQ as submitted in the process variables.
type Input = leadscoring.RFQInput

type Output struct {
	leadscoring.LeadScore
	SessionID    string `json:"session_id"`
	Persisted    bool   `json:"persisted"`
	LeadRecordID string `json:"leadRecordId,omitempty"`
}
