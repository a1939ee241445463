// Package audit records what the service did and for whom. Events are
// transport-agnostic so stores and sinks can fan out.
package audit

import "time"

type Action string

const (
	ActionAnalysisCompleted Action = "analysis_completed"
	ActionAnalysisRejected  Action = "analysis_rejected"
	ActionHistoryPurged     Action = "history_purged"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Action    Action    `json:"action"`
	Username  string    `json:"username,omitempty"`
	RiskLevel string    `json:"risk_level,omitempty"`
	RiskScore int       `json:"risk_score,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	OS        string    `json:"os,omitempty"`
	// Reason carries the validation failure for rejected submissions and the
	// purge count for history purges.
	Reason string `json:"reason,omitempty"`
}
