// internal/leadscoring/store.go
package leadscoring

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CollectionName is the table lead scores are written to.
const CollectionName = "rfq_lead_scores"

var (
	ErrLeadScorePersistFailed = errors.New("LEAD_SCORE_PERSIST_FAILED")
	ErrLeadScoreNotFound      = errors.New("LEAD_SCORE_NOT_FOUND")
	ErrLeadScoreQueryFailed   = errors.New("LEAD_SCORE_QUERY_FAILED")
)

// Store is the record-store capability the scorer writes through.
type Store interface {
	InsertLeadScore(ctx context.Context, record *LeadScoreRecord) error
	LatestBySession(ctx context.Context, sessionID string) (*LeadScoreRecord, error)
	ListByTier(ctx context.Context, tier Tier, limit int) ([]*LeadScoreRecord, error)
}

// NewRecord denormalizes an input and its score into a storable row.
func NewRecord(input RFQInput, score LeadScore, now time.Time) *LeadScoreRecord {
	var tradeType *string
	if input.TradeType != TradeTypeNone {
		tt := string(input.TradeType)
		tradeType = &tt
	}

	return &LeadScoreRecord{
		ID:                 uuid.New().String(),
		SessionID:          input.SessionID,
		CategorySlug:       nonEmpty(input.Category),
		TradeType:          tradeType,
		BuyerCompany:       nonEmpty(input.BuyerCompany),
		BuyerLocation:      nonEmpty(input.BuyerLocation),
		LeadScore:          score.LeadScore,
		ConfidenceScore:    score.ConfidenceScore,
		IntentStrength:     score.IntentStrength,
		BudgetConfidence:   score.BudgetConfidence,
		Urgency:            score.Urgency,
		CategoryFit:        score.CategoryFit,
		AIReasonSummary:    score.AIReasonSummary,
		EstimatedDealValue: score.EstimatedDealValue,
		CreatedAt:          now.UTC(),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
