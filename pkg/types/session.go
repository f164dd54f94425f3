package types

import "time"

// Session identifies one assistant working session. Fixes, conventions,
// and quirks reference sessions by SessionID; the store enforces the
// reference with a foreign key. Session rows never travel across a fork
// boundary.
type Session struct {
	ID         int64      `json:"id"`
	SessionID  string     `json:"session_id"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	ProjectDir string     `json:"project_dir,omitempty"`
}
