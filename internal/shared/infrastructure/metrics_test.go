package infrastructure

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.ObserveStep("orders", "wait_time", 20*time.Millisecond, 42)
	m.ObserveLoad("orders", time.Millisecond)

	assert.Equal(t, 42.0, testutil.ToFloat64(m.stepRows.WithLabelValues("orders", "wait_time")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stepDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.loadDuration))

	// un second enregistrement sur le même registre échoue
	_, err = NewPipelineMetrics(reg)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggerOptions{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger(LoggerOptions{Level: "loud"})
	assert.Error(t, err)
}
