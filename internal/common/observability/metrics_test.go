// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordJob(t *testing.T) {
	reg := promclient.NewRegistry()
	obs, err := NewWithRegisterer("test-service", reg)
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	obs.RecordJob(context.Background(), "score-rfq-lead", StatusCompleted, 25*time.Millisecond)
	obs.RecordJob(context.Background(), "score-rfq-lead", StatusFailed, 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var counterTotal float64
	var sawHistogram bool
	for _, mf := range families {
		switch {
		case strings.HasPrefix(mf.GetName(), "jobs_processed"):
			for _, m := range mf.GetMetric() {
				counterTotal += m.GetCounter().GetValue()
			}
		case strings.HasPrefix(mf.GetName(), "jobs_duration"):
			sawHistogram = true
		}
	}

	assert.Equal(t, 2.0, counterTotal)
	assert.True(t, sawHistogram)
}

func TestObservability_NilIsNoOp(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordJob(context.Background(), "x", StatusCompleted, time.Second)
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}
