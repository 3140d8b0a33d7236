package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCasesOpened             = "cases_opened_total"
	MetricNameUpgradeAttempts         = "upgrade_attempts_total"
	MetricNameMoneySpent              = "money_spent_total"
	MetricNameMoneyCredited           = "money_credited_total"
	MetricNameReconciliationsRequired = "reconciliations_required_total"
	MetricNameGrantRetries            = "grant_retries_total"
	MetricNameTransientRetries        = "transient_store_retries_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCasesOpened             = "Total number of cases opened"
	HelpTextUpgradeAttempts         = "Total number of upgrade attempts"
	HelpTextMoneySpent              = "Total nanoTON debited for case openings"
	HelpTextMoneyCredited           = "Total nanoTON credited to accounts"
	HelpTextReconciliationsRequired = "Total reward grants that failed after a committed debit"
	HelpTextGrantRetries            = "Total retries of reward grant writes"
	HelpTextTransientRetries        = "Total retries of debit/stake transactions after transient store failures"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelCase    = "case"
	LabelRarity  = "rarity"
	LabelOutcome = "outcome"
)

// Upgrade outcome label values
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
