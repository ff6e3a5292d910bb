// internal/workers/lead/index-rfq-lead/handler.go
package indexrfqlead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rfq-lead-workers/internal/common/camunda"
	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "index-rfq-lead"
)

// Indexer is implemented by database.ElasticsearchClient.
type Indexer interface {
	IndexDocument(ctx context.Context, index, id string, doc interface{}) error
}

type Handler struct {
	config   *Config
	indexer  Indexer
	reporter *camunda.JobReporter
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(config *Config, indexer Indexer, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		indexer:  indexer,
		reporter: camunda.NewJobReporter(TaskType, config.MaxRetries, obs, log),
		logger:   log,
		now:      time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.reporter.Fail(ctx, client, job, started, errors.NewInvalidRFQPayloadError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.reporter.Fail(ctx, client, job, started, err)
		return
	}

	h.reporter.Complete(ctx, client, job, started, output)
}

// Execute upserts the lead document, keyed by session so a rescored RFQ
// replaces its previous entry.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, errors.NewInvalidRFQPayloadError("session_id is required")
	}
	if input.LeadScore.LeadScore == "" {
		return nil, errors.NewInvalidRFQPayloadError("lead_score is required")
	}

	doc := h.buildDocument(input)
	if err := h.indexer.IndexDocument(ctx, h.config.IndexName, input.SessionID, doc); err != nil {
		return nil, errors.NewLeadIndexFailedError(h.config.IndexName, err).
			WithMetadata("sessionId", input.SessionID)
	}

	h.logger.Info("lead indexed", map[string]interface{}{
		"sessionId": input.SessionID,
		"index":     h.config.IndexName,
		"leadScore": input.LeadScore.LeadScore,
	})

	return &Output{
		Indexed:    true,
		IndexName:  h.config.IndexName,
		DocumentID: input.SessionID,
	}, nil
}

func (h *Handler) buildDocument(input *Input) *LeadDocument {
	return &LeadDocument{
		SessionID:          input.SessionID,
		LeadRecordID:       input.LeadRecordID,
		Category:           deref(input.Category),
		TradeType:          input.TradeType,
		BuyerCompany:       deref(input.BuyerCompany),
		BuyerLocation:      deref(input.BuyerLocation),
		LeadScore:          string(input.LeadScore.LeadScore),
		ConfidenceScore:    input.ConfidenceScore,
		IntentStrength:     input.IntentStrength,
		BudgetConfidence:   string(input.BudgetConfidence),
		Urgency:            string(input.Urgency),
		CategoryFit:        input.CategoryFit,
		AIReasonSummary:    input.AIReasonSummary,
		EstimatedDealValue: input.EstimatedDealValue,
		IndexedAt:          h.now().UTC().Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
