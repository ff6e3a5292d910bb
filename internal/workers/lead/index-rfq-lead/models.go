// internal/workers/lead/index-rfq-lead/models.go
package indexrfqlead

import "rfq-lead-workers/internal/leadscoring"

// Input is a scored lead as left in the process variables by score-rfq-lead.
type Input struct {
	leadscoring.LeadScore
	SessionID     string  `json:"session_id"`
	Category      *string `json:"category"`
	TradeType     string  `json:"trade_type"`
	BuyerCompany  *string `json:"buyer_company"`
	BuyerLocation *string `json:"buyer_location"`
	LeadRecordID  string  `json:"leadRecordId"`
}

type Output struct {
	Indexed    bool   `json:"indexed"`
	IndexName  string `json:"indexName"`
	DocumentID string `json:"documentId"`
}

// LeadDocument is the searchable shape stored in Elasticsearch.
type LeadDocument struct {
	SessionID          string   `json:"session_id"`
	LeadRecordID       string   `json:"lead_record_id,omitempty"`
	Category           string   `json:"category,omitempty"`
	TradeType          string   `json:"trade_type,omitempty"`
	BuyerCompany       string   `json:"buyer_company,omitempty"`
	BuyerLocation      string   `json:"buyer_location,omitempty"`
	LeadScore          string   `json:"lead_score"`
	ConfidenceScore    int      `json:"confidence_score"`
	IntentStrength     string   `json:"intent_strength"`
	BudgetConfidence   string   `json:"budget_confidence"`
	Urgency            string   `json:"urgency"`
	CategoryFit        string   `json:"category_fit"`
	AIReasonSummary    string   `json:"ai_reason_summary"`
	EstimatedDealValue *float64 `json:"estimated_deal_value,omitempty"`
	IndexedAt          string   `json:"indexed_at"`
}
