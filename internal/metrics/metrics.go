package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	Spins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSpins,
			Help:      HelpTextSpins,
		},
		[]string{LabelKind},
	)

	CashPaidOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCashPaidOut,
			Help:      HelpTextCashPaidOut,
		},
		[]string{LabelSource},
	)

	LettersAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLettersAwarded,
			Help:      HelpTextLettersAwarded,
		},
		[]string{LabelLetter},
	)

	WordClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameWordClaims,
			Help:      HelpTextWordClaims,
		},
		[]string{LabelWord},
	)

	Deposits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameDeposits,
			Help:      HelpTextDeposits,
		},
	)

	DepositAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameDepositAmount,
			Help:      HelpTextDepositAmount,
		},
	)

	TiersUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTiersUnlocked,
			Help:      HelpTextTiersUnlocked,
		},
		[]string{LabelTier},
	)

	MissionClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameMissionClaims,
			Help:      HelpTextMissionClaims,
		},
		[]string{LabelTier},
	)

	SpinsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSpinsGranted,
			Help:      HelpTextSpinsGranted,
		},
		[]string{LabelSource},
	)

	DailyLogins = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameDailyLogins,
			Help:      HelpTextDailyLogins,
		},
	)

	Rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRejections,
			Help:      HelpTextRejections,
		},
		[]string{LabelOperation, LabelClass},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCatalogCacheLookup,
			Help:      HelpTextCatalogCacheLookup,
		},
		[]string{LabelKind, LabelResult},
	)
)
