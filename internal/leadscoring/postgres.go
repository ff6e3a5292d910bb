// internal/leadscoring/postgres.go
package leadscoring

import (
	"context"
	"database/sql"
	"fmt"
)

const leadScoreColumns = `id, session_id, category_slug, trade_type, buyer_company, buyer_location,
	lead_score, confidence_score, intent_strength, budget_confidence, urgency,
	category_fit, ai_reason_summary, estimated_deal_value, created_at`

// PostgresStore persists lead scores in the rfq_lead_scores table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) InsertLeadScore(ctx context.Context, r *LeadScoreRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rfq_lead_scores (`+leadScoreColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		r.ID,
		r.SessionID,
		nullString(r.CategorySlug),
		nullString(r.TradeType),
		nullString(r.BuyerCompany),
		nullString(r.BuyerLocation),
		string(r.LeadScore),
		r.ConfidenceScore,
		r.IntentStrength,
		string(r.BudgetConfidence),
		string(r.Urgency),
		r.CategoryFit,
		r.AIReasonSummary,
		nullFloat(r.EstimatedDealValue),
		r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert failed: %v", ErrLeadScorePersistFailed, err)
	}
	return nil
}

func (s *PostgresStore) LatestBySession(ctx context.Context, sessionID string) (*LeadScoreRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+leadScoreColumns+`
		FROM rfq_lead_scores
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, sessionID)

	record, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: session %s", ErrLeadScoreNotFound, sessionID)
		}
		return nil, fmt.Errorf("%w: %v", ErrLeadScoreQueryFailed, err)
	}
	return record, nil
}

func (s *PostgresStore) ListByTier(ctx context.Context, tier Tier, limit int) ([]*LeadScoreRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+leadScoreColumns+`
		FROM rfq_lead_scores
		WHERE lead_score = $1
		ORDER BY created_at DESC
		LIMIT $2`, string(tier), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLeadScoreQueryFailed, err)
	}
	defer rows.Close()

	var records []*LeadScoreRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrLeadScoreQueryFailed, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLeadScoreQueryFailed, err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*LeadScoreRecord, error) {
	var (
		r                                 LeadScoreRecord
		category, tradeType, company, loc sql.NullString
		tier, budget, urgency             string
		dealValue                         sql.NullFloat64
	)

	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&category,
		&tradeType,
		&company,
		&loc,
		&tier,
		&r.ConfidenceScore,
		&r.IntentStrength,
		&budget,
		&urgency,
		&r.CategoryFit,
		&r.AIReasonSummary,
		&dealValue,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.CategorySlug = fromNullString(category)
	r.TradeType = fromNullString(tradeType)
	r.BuyerCompany = fromNullString(company)
	r.BuyerLocation = fromNullString(loc)
	r.LeadScore = Tier(tier)
	r.BudgetConfidence = BudgetConfidence(budget)
	r.Urgency = Urgency(urgency)
	if dealValue.Valid {
		v := dealValue.Float64
		r.EstimatedDealValue = &v
	}
	return &r, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
