// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"rfq-lead-workers/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler is implemented by every lead worker handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerPool opens job workers on one Zeebe client and closes them together.
type WorkerPool struct {
	client  zbc.Client
	logger  *zap.Logger
	workers map[string]worker.JobWorker
}

func NewWorkerPool(client zbc.Client, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		client:  client,
		logger:  logger,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType. Disabled workers are logged and
// skipped.
func (p *WorkerPool) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) {
	if !wcfg.Enabled {
		p.logger.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	p.workers[taskType] = p.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	p.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}

// Running lists the task types with an open worker.
func (p *WorkerPool) Running() []string {
	types := make([]string, 0, len(p.workers))
	for t := range p.workers {
		types = append(types, t)
	}
	return types
}

// Stop closes every worker and waits for in-flight jobs to finish.
func (p *WorkerPool) Stop() {
	for taskType, w := range p.workers {
		p.logger.Info("stopping worker", zap.String("taskType", taskType))
		w.Close()
		w.AwaitClose()
	}
}
