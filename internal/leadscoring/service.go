// internal/leadscoring/service.go
package leadscoring

import (
	"context"
	"time"

	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/metrics"
)

// Scorer wraps ScoreRFQ with the record store it persists to.
type Scorer struct {
	store  Store
	logger logger.Logger
	now    func() time.Time
}

type Option func(*Scorer)

// WithClock overrides the clock used to stamp persisted records.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

func NewScorer(store Store, log logger.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "lead-scorer"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score classifies the input without touching the store.
func (s *Scorer) Score(input RFQInput) LeadScore {
	score := ScoreRFQ(input)
	metrics.LeadsScored.WithLabelValues(string(score.LeadScore)).Inc()
	metrics.LeadConfidence.Observe(float64(score.ConfidenceScore))
	return score
}

// ScoreAndPersist scores the input and writes one record to the store. Any store
// failure is logged and reported as a nil result.
func (s *Scorer) ScoreAndPersist(ctx context.Context, input RFQInput) *LeadScore {
	outcome := s.ScoreAndPersistResult(ctx, input)
	if !outcome.Persisted {
		return nil
	}
	return &outcome.Score
}

// ScoreAndPersistResult is ScoreAndPersist without discarding the score when the
// write fails.
func (s *Scorer) ScoreAndPersistResult(ctx context.Context, input RFQInput) PersistOutcome {
	score := s.Score(input)
	record := NewRecord(input, score, s.now())

	err := ErrLeadScorePersistFailed
	if s.store != nil {
		err = s.store.InsertLeadScore(ctx, record)
	}
	if err != nil {
		metrics.LeadPersistFailures.Inc()
		s.logger.Warn("lead score persistence failed", map[string]interface{}{
			"sessionId": input.SessionID,
			"leadScore": score.LeadScore,
			"error":     err,
		})
		return PersistOutcome{Score: score, Record: record, Err: err}
	}

	s.logger.Info("lead score persisted", map[string]interface{}{
		"sessionId":       input.SessionID,
		"recordId":        record.ID,
		"leadScore":       score.LeadScore,
		"confidenceScore": score.ConfidenceScore,
	})

	return PersistOutcome{Score: score, Record: record, Persisted: true}
}
