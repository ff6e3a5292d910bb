// internal/workers/lead/get-rfq-lead-score/handler.go
package getrfqleadscore

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"rfq-lead-workers/internal/common/camunda"
	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/observability"
	"rfq-lead-workers/internal/leadscoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "get-rfq-lead-score"
)

type Handler struct {
	config   *Config
	store    leadscoring.Store
	cache    *leadscoring.Cache
	reporter *camunda.JobReporter
	logger   logger.Logger
}

func NewHandler(config *Config, store leadscoring.Store, cache *leadscoring.Cache, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		store:    store,
		cache:    cache,
		reporter: camunda.NewJobReporter(TaskType, config.MaxRetries, obs, log),
		logger:   log,
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

// Execute returns the most recent score for the session, reading through the
// cache.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, errors.NewInvalidRFQPayloadError("session_id is required")
	}

	if record := h.fromCache(ctx, input.SessionID); record != nil {
		return toOutput(record, SourceCache), nil
	}

	record, err := h.store.LatestBySession(ctx, input.SessionID)
	if err != nil {
		if stderrors.Is(err, leadscoring.ErrLeadScoreNotFound) {
			return nil, errors.NewLeadScoreNotFoundError(input.SessionID)
		}
		return nil, errors.NewLeadScoreQueryFailedError(err).WithMetadata("sessionId", input.SessionID)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, record); err != nil {
			h.logger.Warn("failed to cache lead score", map[string]interface{}{
				"sessionId": input.SessionID,
				"error":     err,
			})
		}
	}

	return toOutput(record, SourceStore), nil
}

func (h *Handler) fromCache(ctx context.Context, sessionID string) *leadscoring.LeadScoreRecord {
	if h.cache == nil {
		return nil
	}
	record, err := h.cache.Get(ctx, sessionID)
	if err != nil {
		h.logger.Warn("lead cache read failed, falling back to store", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err,
		})
		return nil
	}
	return record
}

func toOutput(record *leadscoring.LeadScoreRecord, source string) *Output {
	return &Output{
		LeadScore:    record.Score(),
		SessionID:    record.SessionID,
		LeadRecordID: record.ID,
		ScoredAt:     record.CreatedAt.UTC().Format(time.RFC3339),
		Source:       source,
	}
}
