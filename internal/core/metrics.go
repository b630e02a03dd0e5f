package core

import "time"

// Recorder defines the interface for recording gateway metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// SSO flow
	RecordSSOInitiated(variant string, success bool)
	RecordSSOCallback(result string)
	RecordTokenExchange(success bool, duration time.Duration)
	RecordUserInfoFetch(success bool, duration time.Duration)

	// Sessions
	RecordSessionIssued()
	RecordSignOut()

	// Session gate
	RecordGateDecision(decision string)

	// Gauge setters (for periodic updates)
	SetRecentLoginsCount(count int)

	// Database operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed by the gauge cache wrapper.
type MetricsStore interface {
	CountLoginsSince(since time.Time) (int64, error)
}
