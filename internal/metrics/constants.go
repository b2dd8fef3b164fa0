package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric this service exports
const Namespace = "letterspin"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSpins              = "spins_total"
	MetricNameCashPaidOut        = "cash_paid_out_total"
	MetricNameLettersAwarded     = "letters_awarded_total"
	MetricNameWordClaims         = "word_claims_total"
	MetricNameDeposits           = "deposits_total"
	MetricNameDepositAmount      = "deposit_amount_total"
	MetricNameTiersUnlocked      = "tiers_unlocked_total"
	MetricNameMissionClaims      = "mission_claims_total"
	MetricNameSpinsGranted       = "spins_granted_total"
	MetricNameDailyLogins        = "daily_logins_total"
	MetricNameRejections         = "rejections_total"
	MetricNameCatalogCacheLookup = "catalog_cache_lookups_total"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSpins              = "Total number of committed spins by outcome kind"
	HelpTextCashPaidOut        = "Total cash paid out by source"
	HelpTextLettersAwarded     = "Total letters awarded by spins"
	HelpTextWordClaims         = "Total number of word bonuses paid"
	HelpTextDeposits           = "Total number of deposits processed"
	HelpTextDepositAmount      = "Total deposited cash"
	HelpTextTiersUnlocked      = "Total deposit tier unlocks"
	HelpTextMissionClaims      = "Total number of mission claims by tier"
	HelpTextSpinsGranted       = "Total spins granted by source"
	HelpTextDailyLogins        = "Total number of daily login rewards claimed"
	HelpTextRejections         = "Total engine rejections by operation and error class"
	HelpTextCatalogCacheLookup = "Catalog cache lookups by kind and result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelKind      = "kind"
	LabelLetter    = "letter"
	LabelWord      = "word"
	LabelTier      = "tier"
	LabelSource    = "source"
	LabelOperation = "operation"
	LabelClass     = "class"
	LabelResult    = "result"
)

// Label values
const (
	SourceSpin         = "spin"
	SourceWordBonus    = "word_bonus"
	SourceMission      = "mission"
	SourceDailyLogin   = "daily_login"
	SourceFirstDeposit = "first_deposit"

	ResultHit  = "hit"
	ResultMiss = "miss"

	UnmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
