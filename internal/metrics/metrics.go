package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CasesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCasesOpened,
			Help: HelpTextCasesOpened,
		},
		[]string{LabelCase, LabelRarity},
	)

	UpgradeAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpgradeAttempts,
			Help: HelpTextUpgradeAttempts,
		},
		[]string{LabelOutcome},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)

	MoneyCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyCredited,
			Help: HelpTextMoneyCredited,
		},
	)

	ReconciliationsRequired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconciliationsRequired,
			Help: HelpTextReconciliationsRequired,
		},
	)

	GrantRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGrantRetries,
			Help: HelpTextGrantRetries,
		},
	)

	TransientRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTransientRetries,
			Help: HelpTextTransientRetries,
		},
	)
)
