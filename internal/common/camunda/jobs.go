// internal/common/camunda/jobs.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/metrics"
	"rfq-lead-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// JobReporter completes or fails jobs for one task type and records the job
// metrics on both paths.
type JobReporter struct {
	taskType string
	errs     *errors.ErrorHandler
	obs      *observability.Observability
	logger   logger.Logger
}

// NewJobReporter caps failed-job retries at maxRetries. Zero keeps the
// per-error-code budget.
func NewJobReporter(taskType string, maxRetries int, obs *observability.Observability, log logger.Logger) *JobReporter {
	return &JobReporter{
		taskType: taskType,
		errs:     errors.NewErrorHandler(log).WithMaxRetries(maxRetries),
		obs:      obs,
		logger:   log,
	}
}

// Complete sends the output as the job's result variables.
func (r *JobReporter) Complete(ctx context.Context, client worker.JobClient, job entities.Job, started time.Time, output interface{}) {
	elapsed := time.Since(started)

	if err := CompleteJob(ctx, client, job, output); err != nil {
		r.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		r.record(ctx, observability.StatusFailed, "COMPLETE_FAILED", elapsed)
		return
	}

	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": elapsed.Milliseconds(),
	})
	r.record(ctx, observability.StatusCompleted, "", elapsed)
}

// Fail routes err through the error handler, which either fails the job with
// retries or throws a BPMN error.
func (r *JobReporter) Fail(ctx context.Context, client worker.JobClient, job entities.Job, started time.Time, err error) {
	stdErr := errors.Normalize(err)
	r.errs.HandleJobError(ctx, client, job, stdErr)
	r.record(ctx, observability.StatusFailed, string(stdErr.Code), time.Since(started))
}

func (r *JobReporter) record(ctx context.Context, status, errorCode string, elapsed time.Duration) {
	if status == observability.StatusCompleted {
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	} else {
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, errorCode).Inc()
	}
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJob(ctx, r.taskType, status, elapsed)
}

// CompleteJob completes the job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("build complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}
	return nil
}
