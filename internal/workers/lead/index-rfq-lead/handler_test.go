// internal/workers/lead/index-rfq-lead/handler_test.go
package indexrfqlead

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rfq-lead-workers/internal/common/config"
	"rfq-lead-workers/internal/common/database"
	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/leadscoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) IndexDocument(ctx context.Context, index, id string, doc interface{}) error {
	args := m.Called(ctx, index, id, doc)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func createTestInput() *Input {
	value := 6000000.0
	return &Input{
		LeadScore: leadscoring.LeadScore{
			LeadScore:          leadscoring.TierHot,
			ConfidenceScore:    92,
			IntentStrength:     leadscoring.IntentStrong,
			BudgetConfidence:   leadscoring.BudgetHigh,
			Urgency:            leadscoring.UrgencyImmediate,
			CategoryFit:        leadscoring.CategoryFitCore,
			AIReasonSummary:    "Clear items with quantities. Explicit budget/price reference",
			EstimatedDealValue: &value,
		},
		SessionID:     "sess-20",
		Category:      strPtr("Steel"),
		TradeType:     "import",
		BuyerCompany:  strPtr("Kiran Infra"),
		BuyerLocation: strPtr("Hyderabad"),
		LeadRecordID:  "rec-20",
	}
}

func TestHandler_Execute(t *testing.T) {
	indexer := new(mockIndexer)
	h := NewHandler(LoadConfig(), indexer, nil, logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }

	indexer.On("IndexDocument", mock.Anything, "rfq-leads", "sess-20", mock.MatchedBy(func(doc *LeadDocument) bool {
		return doc.LeadScore == "HOT" &&
			doc.ConfidenceScore == 92 &&
			doc.Category == "Steel" &&
			doc.BuyerCompany == "Kiran Infra" &&
			doc.LeadRecordID == "rec-20" &&
			*doc.EstimatedDealValue == 6000000.0 &&
			doc.IndexedAt == "2026-06-01T12:00:00Z"
	})).Return(nil).Once()

	output, err := h.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.True(t, output.Indexed)
	assert.Equal(t, "rfq-leads", output.IndexName)
	assert.Equal(t, "sess-20", output.DocumentID)
	indexer.AssertExpectations(t)
}

func TestHandler_Execute_IndexFailure(t *testing.T) {
	indexer := new(mockIndexer)
	h := NewHandler(&Config{IndexName: "rfq-leads-test", Timeout: time.Second}, indexer, nil, logger.NewTestLogger(t))

	indexer.On("IndexDocument", mock.Anything, "rfq-leads-test", "sess-20", mock.Anything).
		Return(stderrors.New("cluster_block_exception")).Once()

	_, err := h.Execute(context.Background(), createTestInput())

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeLeadIndexFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "cluster_block_exception")
}

func TestHandler_Execute_RejectsUnscoredInput(t *testing.T) {
	h := NewHandler(LoadConfig(), new(mockIndexer), nil, logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input *Input
	}{
		{"no session", &Input{LeadScore: leadscoring.LeadScore{LeadScore: leadscoring.TierCold}}},
		{"no score", &Input{SessionID: "sess-21"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, errors.ErrCodeInvalidRFQPayload, stdErr.Code)
		})
	}
}

func TestHandler_Execute_Elasticsearch(t *testing.T) {
	var gotPath string
	var gotDoc map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotDoc)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"result":"updated"}`))
	}))
	defer srv.Close()

	es, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)

	h := NewHandler(LoadConfig(), es, nil, logger.NewTestLogger(t))
	output, err := h.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.True(t, output.Indexed)
	assert.Equal(t, "/rfq-leads/_doc/sess-20", gotPath)
	assert.Equal(t, "HOT", gotDoc["lead_score"])
	assert.Equal(t, "Hyderabad", gotDoc["buyer_location"])
}

func TestInput_DecodesScoreVariables(t *testing.T) {
	var input Input
	err := json.Unmarshal([]byte(`{
		"session_id": "sess-22",
		"lead_score": "WARM",
		"confidence_score": 62,
		"urgency": "30_DAYS",
		"estimated_deal_value": null,
		"persisted": true,
		"leadRecordId": "rec-22"
	}`), &input)

	require.NoError(t, err)
	assert.Equal(t, leadscoring.TierWarm, input.LeadScore.LeadScore)
	assert.Equal(t, 62, input.ConfidenceScore)
	assert.Equal(t, leadscoring.Urgency30Days, input.Urgency)
	assert.Nil(t, input.EstimatedDealValue)
	assert.Equal(t, "rec-22", input.LeadRecordID)
}
