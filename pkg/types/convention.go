package types

import "time"

// DefaultConventionSource is the provenance label applied when a
// convention is recorded without one.
const DefaultConventionSource = "correction"

// Convention is a learned stylistic or organizational rule, unique on
// (Category, Pattern). Confidence is the raw [0,1] weight maintained by
// the confidence model; EffectiveConfidence is the read-time projection
// adjusted for cross-session corroboration and is populated on lookup,
// never stored.
type Convention struct {
	ID               int64     `json:"id"`
	Category         string    `json:"category"`
	Pattern          string    `json:"pattern"`
	Example          string    `json:"example,omitempty"`
	Source           string    `json:"source"`
	Scope            Scope     `json:"scope"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Confidence       float64   `json:"confidence"`
	SessionID        string    `json:"session_id,omitempty"`
	DistinctSessions int       `json:"distinct_sessions"`

	EffectiveConfidence float64 `json:"effective_confidence,omitempty"`
}
