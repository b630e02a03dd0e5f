package metrics

import (
	"time"

	"github.com/madfam-org/tezca-gateway/internal/core"
)

// NoopMetrics discards every recording. Used when metrics are disabled so
// call sites never branch on a nil recorder.
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordSSOInitiated(variant string, success bool)              {}
func (n *NoopMetrics) RecordSSOCallback(result string)                              {}
func (n *NoopMetrics) RecordTokenExchange(success bool, duration time.Duration)     {}
func (n *NoopMetrics) RecordUserInfoFetch(success bool, duration time.Duration)     {}
func (n *NoopMetrics) RecordSessionIssued()                                         {}
func (n *NoopMetrics) RecordSignOut()                                               {}
func (n *NoopMetrics) RecordGateDecision(decision string)                           {}
func (n *NoopMetrics) SetRecentLoginsCount(count int)                               {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)                    {}
