// internal/workers/lead/score-rfq-lead/handler.go
package scorerfqlead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rfq-lead-workers/internal/common/camunda"
	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/observability"
	"rfq-lead-workers/internal/common/validation"
	"rfq-lead-workers/internal/leadscoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "score-rfq-lead"
)

type Handler struct {
	config    *Config
	scorer    *leadscoring.Scorer
	cache     *leadscoring.Cache
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

// NewHandler wires the scorer and an optional cache. A nil cache disables
// caching.
func NewHandler(config *Config, scorer *leadscoring.Scorer, cache *leadscoring.Cache, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	v, err := validation.NewRFQValidator()
	if err != nil {
		return nil, err
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		scorer:    scorer,
		cache:     cache,
		validator: v,
		reporter:  camunda.NewJobReporter(TaskType, config.MaxRetries, obs, log),
		logger:    log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.Parse(job.Variables)
	if err != nil {
		h.reporter.Fail(ctx, client, job, started, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.reporter.Fail(ctx, client, job, started, err)
		return
	}

	h.reporter.Complete(ctx, client, job, started, output)
}

// Parse validates the raw job variables against the RFQ schema and decodes
// them.
func (h *Handler) Parse(variables string) (*Input, error) {
	result, err := h.validator.ValidateJSON([]byte(variables))
	if err != nil {
		return nil, errors.NewInvalidRFQPayloadError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidRFQPayloadError(result.Summary()).
			WithMetadata("validationErrors", result.Errors)
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInvalidRFQPayloadError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute scores the RFQ and records it. A failed write still yields the
// score, with Persisted false.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.NewInvalidRFQPayloadError("session_id is required")
	}

	outcome := h.scorer.ScoreAndPersistResult(ctx, *input)

	output := &Output{
		LeadScore: outcome.Score,
		SessionID: input.SessionID,
		Persisted: outcome.Persisted,
	}

	if outcome.Persisted {
		output.LeadRecordID = outcome.Record.ID
		h.cacheRecord(ctx, outcome.Record)
	}

	h.logger.Info("rfq lead scored", map[string]interface{}{
		"sessionId":       input.SessionID,
		"leadScore":       outcome.Score.LeadScore,
		"confidenceScore": outcome.Score.ConfidenceScore,
		"persisted":       outcome.Persisted,
	})

	return output, nil
}

func (h *Handler) cacheRecord(ctx context.Context, record *leadscoring.LeadScoreRecord) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, record); err != nil {
		h.logger.Warn("failed to cache lead score", map[string]interface{}{
			"sessionId": record.SessionID,
			"error":     err,
		})
	}
}
