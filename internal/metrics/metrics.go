package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/madfam-org/tezca-gateway/internal/core"
)

// Ensure Metrics implements Recorder interface at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the gateway
type Metrics struct {
	// SSO Flow Metrics
	SSOInitiatedTotal     *prometheus.CounterVec
	SSOCallbackTotal      *prometheus.CounterVec
	TokenExchangeTotal    *prometheus.CounterVec
	TokenExchangeDuration prometheus.Histogram
	UserInfoFetchTotal    *prometheus.CounterVec
	UserInfoFetchDuration prometheus.Histogram

	// Session Metrics
	SessionsIssuedTotal prometheus.Counter
	SignOutsTotal       prometheus.Counter
	GateDecisionsTotal  *prometheus.CounterVec
	RecentLogins        prometheus.Gauge

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the metrics recorder. With enabled=false it returns the noop
// recorder so call sites never nil-check. Prometheus collectors register
// once per process.
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		SSOInitiatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_initiated_total",
				Help: "Total number of SSO login initiations",
			},
			[]string{"variant", "result"}, // variant: pkce, plain; result: success, error
		),
		SSOCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_callback_total",
				Help: "Total number of SSO callback attempts",
			},
			[]string{
				"result",
			}, // success, provider_error, incomplete, state_mismatch, exchange_failed, signing_failed
		),
		TokenExchangeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_token_exchange_total",
				Help: "Total number of authorization code exchanges",
			},
			[]string{"result"}, // success, error
		),
		TokenExchangeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sso_token_exchange_duration_seconds",
				Help:    "Time taken to exchange an authorization code",
				Buckets: prometheus.DefBuckets,
			},
		),
		UserInfoFetchTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sso_userinfo_fetch_total",
				Help: "Total number of userinfo fetches",
			},
			[]string{"result"}, // success, error
		),
		UserInfoFetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sso_userinfo_fetch_duration_seconds",
				Help:    "Time taken to fetch the user profile",
				Buckets: prometheus.DefBuckets,
			},
		),

		SessionsIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_issued_total",
				Help: "Total number of session credentials issued",
			},
		),
		SignOutsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sign_outs_total",
				Help: "Total number of sign-outs",
			},
		),
		GateDecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_gate_decisions_total",
				Help: "Total number of session gate decisions",
			},
			[]string{
				"decision",
			}, // public, session, auth_disabled, redirected, failed_closed
		),
		RecentLogins: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sso_logins_recent",
				Help: "Number of successful logins in the last 24 hours",
			},
		),

		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"}, // count_recent_logins
		),
	}
}

const (
	resultSuccess = "success"
	resultError   = "error"
)

func boolResult(success bool) string {
	if success {
		return resultSuccess
	}
	return resultError
}

// RecordSSOInitiated records an SSO initiation attempt
func (m *Metrics) RecordSSOInitiated(variant string, success bool) {
	m.SSOInitiatedTotal.WithLabelValues(variant, boolResult(success)).Inc()
}

// RecordSSOCallback records the outcome of a callback attempt
func (m *Metrics) RecordSSOCallback(result string) {
	m.SSOCallbackTotal.WithLabelValues(result).Inc()
}

// RecordTokenExchange records an authorization code exchange
func (m *Metrics) RecordTokenExchange(success bool, duration time.Duration) {
	m.TokenExchangeTotal.WithLabelValues(boolResult(success)).Inc()
	m.TokenExchangeDuration.Observe(duration.Seconds())
}

// RecordUserInfoFetch records a userinfo fetch
func (m *Metrics) RecordUserInfoFetch(success bool, duration time.Duration) {
	m.UserInfoFetchTotal.WithLabelValues(boolResult(success)).Inc()
	m.UserInfoFetchDuration.Observe(duration.Seconds())
}

// RecordSessionIssued records a freshly issued session credential
func (m *Metrics) RecordSessionIssued() {
	m.SessionsIssuedTotal.Inc()
}

// RecordSignOut records a sign-out
func (m *Metrics) RecordSignOut() {
	m.SignOutsTotal.Inc()
}

// RecordGateDecision records a session gate decision
func (m *Metrics) RecordGateDecision(decision string) {
	m.GateDecisionsTotal.WithLabelValues(decision).Inc()
}

// SetRecentLoginsCount sets the 24h login gauge (updated by a periodic job)
func (m *Metrics) SetRecentLoginsCount(count int) {
	m.RecentLogins.Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
