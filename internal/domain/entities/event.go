package entities

import "time"

// Event severities.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Well-known event types emitted by the services. Type is free-form in the
// store; these are the ones tokenwatch itself produces.
const (
	EventProjectCreated = "project_created"
	EventProjectDeleted = "project_deleted"
	EventTokenCreated   = "token_created"
	EventTokenDeleted   = "token_deleted"
	EventHolderAdded    = "holder_added"
	EventHolderRemoved  = "holder_removed"
	EventAIAnalysis     = "ai_analysis"
	EventSystemStart    = "system_start"
)

// Event is one row of the append-only audit log. Events are created and
// deleted, never updated.
type Event struct {
	ID        string    `db:"id" json:"id"`
	ProjectID *string   `db:"project_id" json:"project_id,omitempty"`
	Type      string    `db:"type" json:"type"`
	Severity  string    `db:"severity" json:"severity"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsValidSeverity reports whether s is one of the four event severities.
func IsValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// EventFilter contains filters for querying events
type EventFilter struct {
	ProjectID *string
	Type      *string
	Severity  *string
	Limit     int
	Offset    int
}

// DefaultEventFilter returns a filter with sensible defaults
func DefaultEventFilter() EventFilter {
	return EventFilter{
		Limit:  100,
		Offset: 0,
	}
}
