// internal/workers/lead/get-rfq-lead-score/handler_test.go
package getrfqleadscore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/leadscoring"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{
	"id", "session_id", "category_slug", "trade_type", "buyer_company", "buyer_location",
	"lead_score", "confidence_score", "intent_strength", "budget_confidence", "urgency",
	"category_fit", "ai_reason_summary", "estimated_deal_value", "created_at",
}

var scoredAt = time.Date(2026, 4, 2, 8, 15, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newTestHandler(t *testing.T, db *sql.DB, rdb *redis.Client) *Handler {
	return NewHandler(LoadConfig(), leadscoring.NewPostgresStore(db),
		leadscoring.NewCache(rdb, time.Hour), nil, logger.NewTestLogger(t))
}

func expectLatest(mock sqlmock.Sqlmock, sessionID string) {
	mock.ExpectQuery(`SELECT (.+) FROM rfq_lead_scores WHERE session_id = \$1`).
		WithArgs(sessionID).
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(
			"rec-7", sessionID, "Polymers", "import", "Acme Plastics", "Surat",
			"HOT", 82, leadscoring.IntentStrong, "MEDIUM", "EXPLORATORY",
			leadscoring.CategoryFitCore, "Clear items with quantities. Core category: Polymers", 2500000.0, scoredAt,
		))
}

func TestHandler_Execute_StoreThenCache(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)

	expectLatest(mock, "sess-7")

	first, err := h.Execute(context.Background(), &Input{SessionID: "sess-7"})
	require.NoError(t, err)
	assert.Equal(t, SourceStore, first.Source)
	assert.Equal(t, "rec-7", first.LeadRecordID)
	assert.Equal(t, leadscoring.TierHot, first.LeadScore.LeadScore)
	assert.Equal(t, 82, first.ConfidenceScore)
	assert.Equal(t, "2026-04-02T08:15:00Z", first.ScoredAt)
	require.NotNil(t, first.EstimatedDealValue)
	assert.Equal(t, 2500000.0, *first.EstimatedDealValue)
	assert.True(t, mr.Exists(leadscoring.CacheKey("sess-7")))

	second, err := h.Execute(context.Background(), &Input{SessionID: "sess-7"})
	require.NoError(t, err)
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, first.LeadScore, second.LeadScore)
	assert.Equal(t, first.ScoredAt, second.ScoredAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	_, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectQuery(`SELECT (.+) FROM rfq_lead_scores`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := h.Execute(context.Background(), &Input{SessionID: "missing"})

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeLeadScoreNotFound, stdErr.Code)
	assert.Equal(t, 0, errors.ConvertToBPMNError(stdErr).Retries)
}

func TestHandler_Execute_QueryFailedIsRetryable(t *testing.T) {
	db, mock := setupMockDB(t)
	_, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectQuery(`SELECT (.+) FROM rfq_lead_scores`).
		WithArgs("sess-8").
		WillReturnError(sql.ErrConnDone)

	_, err := h.Execute(context.Background(), &Input{SessionID: "sess-8"})

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeLeadScoreQueryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "sess-8", stdErr.Metadata["sessionId"])
}

func TestHandler_Execute_CacheDownFallsBackToStore(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)
	mr.Close()

	expectLatest(mock, "sess-9")

	output, err := h.Execute(context.Background(), &Input{SessionID: "sess-9"})

	require.NoError(t, err)
	assert.Equal(t, SourceStore, output.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingSession(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, nil, nil, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), &Input{})

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInvalidRFQPayload, stdErr.Code)
}
