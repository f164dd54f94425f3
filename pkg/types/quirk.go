package types

import "time"

// Quirk is a freeform note about a service or region peculiarity.
// Quirks have no dedup key; every record call inserts a new row.
type Quirk struct {
	ID          int64     `json:"id"`
	Service     string    `json:"service"`
	Description string    `json:"description"`
	Region      string    `json:"region,omitempty"`
	Workaround  string    `json:"workaround,omitempty"`
	Scope       Scope     `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SessionID   string    `json:"session_id,omitempty"`
}
