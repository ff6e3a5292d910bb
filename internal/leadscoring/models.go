// internal/leadscoring/models.go
package leadscoring

import "time"

// TradeType distinguishes cross-border RFQs from domestic ones. The zero value
// means domestic or unspecified.
type TradeType string

const (
	TradeTypeNone   TradeType = ""
	TradeTypeImport TradeType = "import"
	TradeTypeExport TradeType = "export"
)

type Tier string

const (
	TierHot  Tier = "HOT"
	TierWarm Tier = "WARM"
	TierCold Tier = "COLD"
)

type BudgetConfidence string

const (
	BudgetLow    BudgetConfidence = "LOW"
	BudgetMedium BudgetConfidence = "MEDIUM"
	BudgetHigh   BudgetConfidence = "HIGH"
)

type Urgency string

const (
	UrgencyImmediate   Urgency = "IMMEDIATE"
	Urgency30Days      Urgency = "30_DAYS"
	UrgencyExploratory Urgency = "EXPLORATORY"
)

const (
	CategoryFitCore    = "Core category"
	CategoryFitNonCore = "Non-core"
)

// LineItem is a single requested product line. A nil Quantity is treated the
// same as zero.
type LineItem struct {
	ItemName string   `json:"item_name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit"`
}

// RFQInput is a submitted request-for-quotation as received from the buyer form.
// Nil and empty-string optional fields both mean "no signal".
type RFQInput struct {
	SessionID        string     `json:"session_id"`
	Category         *string    `json:"category,omitempty"`
	TradeType        TradeType  `json:"trade_type,omitempty"`
	Items            []LineItem `json:"items,omitempty"`
	Description      *string    `json:"description,omitempty"`
	QualityStandards *string    `json:"quality_standards,omitempty"`
	BuyerLocation    *string    `json:"buyer_location,omitempty"`
	BuyerCompany     *string    `json:"buyer_company,omitempty"`
}

// LeadScore is the classification produced for one RFQ.
type LeadScore struct {
	LeadScore          Tier             `json:"lead_score"`
	ConfidenceScore    int              `json:"confidence_score"`
	IntentStrength     string           `json:"intent_strength"`
	BudgetConfidence   BudgetConfidence `json:"budget_confidence"`
	Urgency            Urgency          `json:"urgency"`
	CategoryFit        string           `json:"category_fit"`
	AIReasonSummary    string           `json:"ai_reason_summary"`
	EstimatedDealValue *float64         `json:"estimated_deal_value"`
}

// LeadScoreRecord is the denormalized row written to rfq_lead_scores.
type LeadScoreRecord struct {
	ID                 string           `json:"id"`
	SessionID          string           `json:"session_id"`
	CategorySlug       *string          `json:"category_slug"`
	TradeType          *string          `json:"trade_type"`
	BuyerCompany       *string          `json:"buyer_company"`
	BuyerLocation      *string          `json:"buyer_location"`
	LeadScore          Tier             `json:"lead_score"`
	ConfidenceScore    int              `json:"confidence_score"`
	IntentStrength     string           `json:"intent_strength"`
	BudgetConfidence   BudgetConfidence `json:"budget_confidence"`
	Urgency            Urgency          `json:"urgency"`
	CategoryFit        string           `json:"category_fit"`
	AIReasonSummary    string           `json:"ai_reason_summary"`
	EstimatedDealValue *float64         `json:"estimated_deal_value"`
	CreatedAt          time.Time        `json:"created_at"`
}

// Score returns the LeadScore portion of the record.
func (r *LeadScoreRecord) Score() LeadScore {
	return LeadScore{
		LeadScore:          r.LeadScore,
		ConfidenceScore:    r.ConfidenceScore,
		IntentStrength:     r.IntentStrength,
		BudgetConfidence:   r.BudgetConfidence,
		Urgency:            r.Urgency,
		CategoryFit:        r.CategoryFit,
		AIReasonSummary:    r.AIReasonSummary,
		EstimatedDealValue: r.EstimatedDealValue,
	}
}

// PersistOutcome carries a computed score together with the result of writing it.
// Score is always populated, whether or not the write succeeded.
type PersistOutcome struct {
	Score     LeadScore
	Record    *LeadScoreRecord
	Persisted bool
	Err       error
}
