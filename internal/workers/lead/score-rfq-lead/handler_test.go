// internal/workers/lead/score-rfq-lead/handler_test.go
package scorerfqlead

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
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
	log := logger.NewTestLogger(t)
	scorer := leadscoring.NewScorer(leadscoring.NewPostgresStore(db), log)

	var cache *leadscoring.Cache
	if rdb != nil {
		cache = leadscoring.NewCache(rdb, time.Hour)
	}

	h, err := NewHandler(LoadConfig(), scorer, cache, nil, log)
	require.NoError(t, err)
	return h
}

func strPtr(s string) *string { return &s }

func qty(v float64) *float64 { return &v }

func TestHandler_Parse(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{
			name:      "full payload",
			variables: `{"session_id":"sess-1","category":"Steel","trade_type":"import","items":[{"item_name":"TMT","quantity":100,"unit":"MT"}],"description":"Need urgently","buyer_company":"Acme"}`,
		},
		{
			name:      "extra process variables are ignored",
			variables: `{"session_id":"sess-2","processStartedBy":"web"}`,
		},
		{
			name:      "missing session id",
			variables: `{"category":"Steel"}`,
			wantErr:   true,
		},
		{
			name:      "domestic trade type is accepted",
			variables: `{"session_id":"sess-3","trade_type":"domestic"}`,
		},
		{
			name:      "trade type not a string",
			variables: `{"session_id":"s","trade_type":7}`,
			wantErr:   true,
		},
		{
			name:      "negative quantity",
			variables: `{"session_id":"s","items":[{"item_name":"x","quantity":-1}]}`,
			wantErr:   true,
		},
		{
			name:      "not json",
			variables: `{oops`,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.Parse(tt.variables)
			if tt.wantErr {
				var stdErr *errors.StandardError
				require.ErrorAs(t, err, &stdErr)
				assert.Equal(t, errors.ErrCodeInvalidRFQPayload, stdErr.Code)
				assert.False(t, stdErr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, input.SessionID)
		})
	}
}

func TestHandler_Parse_DecodesFields(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	input, err := h.Parse(`{"session_id":"sess-1","category":"Steel","trade_type":"export","items":[{"item_name":"TMT","quantity":12.5,"unit":"MT"}],"buyer_location":"Pune"}`)

	require.NoError(t, err)
	assert.Equal(t, "sess-1", input.SessionID)
	assert.Equal(t, "Steel", *input.Category)
	assert.Equal(t, leadscoring.TradeTypeExport, input.TradeType)
	require.Len(t, input.Items, 1)
	assert.Equal(t, 12.5, *input.Items[0].Quantity)
	assert.Equal(t, "Pune", *input.BuyerLocation)
	assert.Nil(t, input.Description)
}

func TestHandler_Execute_Persisted(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectExec(`INSERT INTO rfq_lead_scores`).WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), &Input{
		SessionID: "sess-10",
		Category:  strPtr("Industrial Supplies"),
		Items:     []leadscoring.LineItem{{ItemName: "Valve", Quantity: qty(40), Unit: "pcs"}},
	})

	require.NoError(t, err)
	assert.True(t, output.Persisted)
	assert.NotEmpty(t, output.LeadRecordID)
	assert.Equal(t, "sess-10", output.SessionID)
	assert.Equal(t, leadscoring.TierHot, output.LeadScore.LeadScore)
	assert.Equal(t, 77, output.ConfidenceScore)
	assert.True(t, mr.Exists(leadscoring.CacheKey("sess-10")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_PersistFailureStillCompletes(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)

	mock.ExpectExec(`INSERT INTO rfq_lead_scores`).WillReturnError(stderrors.New("connection refused"))

	output, err := h.Execute(context.Background(), &Input{SessionID: "sess-11"})

	require.NoError(t, err)
	assert.False(t, output.Persisted)
	assert.Empty(t, output.LeadRecordID)
	assert.Equal(t, leadscoring.TierWarm, output.LeadScore.LeadScore)
	assert.Equal(t, 50, output.ConfidenceScore)
	assert.Equal(t, leadscoring.ReasonSummaryFallback, output.AIReasonSummary)
	assert.False(t, mr.Exists(leadscoring.CacheKey("sess-11")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_WithoutCache(t *testing.T) {
	db, mock := setupMockDB(t)
	h := newTestHandler(t, db, nil)

	mock.ExpectExec(`INSERT INTO rfq_lead_scores`).WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), &Input{SessionID: "sess-12"})

	require.NoError(t, err)
	assert.True(t, output.Persisted)
}

func TestHandler_Execute_CacheDownIsNotFatal(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, rdb := setupRedis(t)
	h := newTestHandler(t, db, rdb)
	mr.Close()

	mock.ExpectExec(`INSERT INTO rfq_lead_scores`).WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), &Input{SessionID: "sess-13"})

	require.NoError(t, err)
	assert.True(t, output.Persisted)
}

func TestHandler_Execute_MissingSession(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	_, err := h.Execute(context.Background(), &Input{})

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInvalidRFQPayload, stdErr.Code)
}

func TestOutput_JSONShape(t *testing.T) {
	value := 750000.0
	raw, err := json.Marshal(Output{
		LeadScore: leadscoring.LeadScore{
			LeadScore:          leadscoring.TierHot,
			ConfidenceScore:    80,
			EstimatedDealValue: &value,
		},
		SessionID:    "s",
		Persisted:    true,
		LeadRecordID: "rec-1",
	})
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &vars))
	assert.Equal(t, "HOT", vars["lead_score"])
	assert.Equal(t, 80.0, vars["confidence_score"])
	assert.Equal(t, 750000.0, vars["estimated_deal_value"])
	assert.Equal(t, true, vars["persisted"])
	assert.Equal(t, "rec-1", vars["leadRecordId"])
}
