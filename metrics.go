package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const prefix = "dns_template_"

const (
	stageResolve = "resolve"
	stageRender  = "render"
	stageWrite   = "write"
)

// watchMetrics counts tick outcomes. A nil receiver is a no-op, used when
// the metrics endpoint is disabled.
type watchMetrics struct {
	ticks        prometheus.Counter
	tickErrors   *prometheus.CounterVec
	writes       prometheus.Counter
	notifyRuns   prometheus.Counter
	notifyErrors prometheus.Counter
	lastSuccess  prometheus.Gauge
	addresses    *prometheus.GaugeVec
}

func newWatchMetrics() *watchMetrics {
	return &watchMetrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "ticks_total",
			Help: "Number of resolve/render cycles started",
		}),
		tickErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "tick_errors_total",
			Help: "Number of failed cycles by stage",
		}, []string{"stage"}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "writes_total",
			Help: "Number of times the output file was rewritten",
		}),
		notifyRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "notify_runs_total",
			Help: "Number of times the on-change command was run",
		}),
		notifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "notify_errors_total",
			Help: "Number of on-change command runs that failed",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "last_success_timestamp_seconds",
			Help: "Unix time of the last successful cycle",
		}),
		addresses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "resolved_addresses",
			Help: "Number of addresses currently resolved per variable",
		}, []string{"variable"}),
	}
}

func (m *watchMetrics) register(reg *prometheus.Registry) {
	reg.MustRegister(m.ticks, m.tickErrors, m.writes, m.notifyRuns, m.notifyErrors, m.lastSuccess, m.addresses)
}

func (m *watchMetrics) tickStarted() {
	if m == nil {
		return
	}
	m.ticks.Inc()
}

func (m *watchMetrics) tickFailed(stage string) {
	if m == nil {
		return
	}
	m.tickErrors.WithLabelValues(stage).Inc()
}

func (m *watchMetrics) tickSucceeded(now time.Time, vars map[string][]string) {
	if m == nil {
		return
	}
	m.lastSuccess.Set(float64(now.Unix()))
	for name, addrs := range vars {
		m.addresses.WithLabelValues(name).Set(float64(len(addrs)))
	}
}

func (m *watchMetrics) wrote() {
	if m == nil {
		return
	}
	m.writes.Inc()
}

func (m *watchMetrics) notified(err error) {
	if m == nil {
		return
	}
	m.notifyRuns.Inc()
	if err != nil {
		m.notifyErrors.Inc()
	}
}

func startMetricsServer(listenAddress, metricsPath string, m *watchMetrics) {
	reg := prometheus.NewRegistry()
	m.register(reg)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, indexHTML, metricsPath)
	})

	l := log.New()
	l.Level = log.ErrorLevel

	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:      l,
		ErrorHandling: promhttp.ContinueOnError,
	})
	http.Handle(metricsPath, h)

	log.Infof("Listening for %s on %s", metricsPath, listenAddress)
	go func() {
		log.Fatal(http.ListenAndServe(listenAddress, nil))
	}()
}

const indexHTML = `<!doctype html>
<html>
<head>
	<meta charset="UTF-8">
	<title>dns-template (Version ` + version + `)</title>
</head>
<body>
	<h1>dns-template</h1>
	<p><a href="%s">Metrics</a></p>
</body>
</html>
`
