package models

import "time"

// Backend operations counted per pathway.
const (
	OperationSubmit = "submit"
	OperationSave   = "save"
)

// Outcome constants
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected" // backend answered with success=false
	OutcomeFailed   = "failed"   // transport or decode failure
	OutcomeStale    = "stale"    // handle did not match the cached result set
)

// PathwayEvent is a per-pathway count of backend operation outcomes.
type PathwayEvent struct {
	Pathway    string
	Operation  string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
