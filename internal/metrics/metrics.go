// Package metrics exposes the bot's prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK         = "ok"
	ResultFetchError = "fetch_error"
	ResultParseError = "parse_error"
	ResultEmpty      = "empty"
)

// Metrics holds the collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	refreshTotal    *prometheus.CounterVec
	refreshDuration prometheus.Summary
	lastRefreshTS   prometheus.Gauge
	priceGauge      *prometheus.GaugeVec
	publishTotal    *prometheus.CounterVec
	rotationTotal   *prometheus.CounterVec
	gasGauge        *prometheus.GaugeVec
	gasTotal        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.refreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebot",
		Name:      "refresh_total",
		Help:      "Refresh cycles by result",
	}, []string{"result"})
	m.refreshDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "pricebot",
		Name:      "refresh_duration_seconds",
		Help:      "Time spent in one refresh cycle",
	})
	m.lastRefreshTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pricebot",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last successful refresh",
	})
	m.priceGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pricebot",
		Name:      "price_usd",
		Help:      "Last fetched USD price per symbol",
	}, []string{"symbol"})
	m.publishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebot",
		Name:      "publish_total",
		Help:      "Display publishes by sink and result",
	}, []string{"sink", "result"})
	m.rotationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebot",
		Name:      "rotation_ticks_total",
		Help:      "Rotation ticks by denomination and outcome",
	}, []string{"denomination", "outcome"})
	m.gasGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pricebot",
		Name:      "gas_gwei",
		Help:      "Last gas reading per tier",
	}, []string{"tier"})
	m.gasTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pricebot",
		Name:      "gas_readings_total",
		Help:      "Gas oracle readings by oracle and result",
	}, []string{"oracle", "result"})

	m.registry.MustRegister(
		m.refreshTotal, m.refreshDuration, m.lastRefreshTS, m.priceGauge,
		m.publishTotal, m.rotationTotal, m.gasGauge, m.gasTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveRefresh(result string, took time.Duration, at time.Time) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
	m.refreshDuration.Observe(took.Seconds())
	if result == ResultOK {
		m.lastRefreshTS.Set(float64(at.Unix()))
	}
}

func (m *Metrics) SetPrice(symbol string, usd float64) {
	if m == nil {
		return
	}
	m.priceGauge.WithLabelValues(symbol).Set(usd)
}

func (m *Metrics) ObservePublish(sink, result string) {
	if m == nil {
		return
	}
	m.publishTotal.WithLabelValues(sink, result).Inc()
}

func (m *Metrics) ObserveRotation(denomination, outcome string) {
	if m == nil {
		return
	}
	m.rotationTotal.WithLabelValues(denomination, outcome).Inc()
}

func (m *Metrics) ObserveGas(oracle, result string, fast, standard, slow float64) {
	if m == nil {
		return
	}
	m.gasTotal.WithLabelValues(oracle, result).Inc()
	if result != ResultOK {
		return
	}
	m.gasGauge.WithLabelValues("fast").Set(fast)
	m.gasGauge.WithLabelValues("standard").Set(standard)
	m.gasGauge.WithLabelValues("slow").Set(slow)
}
