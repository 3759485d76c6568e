package main

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestWatchMetricsCounts(t *testing.T) {
	m := newWatchMetrics()
	reg := prometheus.NewRegistry()
	m.register(reg)

	m.tickStarted()
	m.tickFailed(stageResolve)
	m.tickStarted()
	m.tickSucceeded(time.Unix(1700000000, 0), map[string][]string{
		"backend": {"10.0.0.4", "10.0.0.7"},
	})
	m.wrote()
	m.notified(nil)
	m.notified(errors.New("exit status 1"))

	require.Equal(t, float64(2), testutil.ToFloat64(m.ticks))
	require.Equal(t, float64(1), testutil.ToFloat64(m.tickErrors.WithLabelValues(stageResolve)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.writes))
	require.Equal(t, float64(2), testutil.ToFloat64(m.notifyRuns))
	require.Equal(t, float64(1), testutil.ToFloat64(m.notifyErrors))
	require.Equal(t, float64(1700000000), testutil.ToFloat64(m.lastSuccess))
	require.Equal(t, float64(2), testutil.ToFloat64(m.addresses.WithLabelValues("backend")))
}

func TestWatchMetricsNilReceiver(t *testing.T) {
	var m *watchMetrics

	// disabled metrics must be safe to call from the tick path
	m.tickStarted()
	m.tickFailed(stageWrite)
	m.tickSucceeded(time.Now(), nil)
	m.wrote()
	m.notified(nil)
}
