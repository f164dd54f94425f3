package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

// BeginSession creates a new session row with a generated identifier
// and returns it. The identifier is a UUID v7 so session ids sort by
// creation time.
func (s *Store) BeginSession(projectDir string) (types.Session, error) {
	sessionID := generateSessionID()
	res, err := s.db.Exec(
		"INSERT INTO sessions (session_id, project_dir) VALUES (?, ?)",
		sessionID, nullable(projectDir),
	)
	if err != nil {
		return types.Session{}, fmt.Errorf("beginning session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return types.Session{}, fmt.Errorf("reading session id: %w", err)
	}
	s.log.Debug().Str("session_id", sessionID).Msg("session started")
	return types.Session{
		ID:         id,
		SessionID:  sessionID,
		StartedAt:  now(),
		ProjectDir: projectDir,
	}, nil
}

// EnsureSession inserts a session row for the given identifier if one
// does not already exist. Used by callers that carry externally minted
// session ids into writes; the entity tables' foreign keys require the
// row to exist first.
func (s *Store) EnsureSession(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id must not be empty: %w", types.ErrInvalidData)
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO sessions (session_id) VALUES (?)", sessionID,
	)
	if err != nil {
		return fmt.Errorf("ensuring session: %w", err)
	}
	return nil
}

// EndSession stamps ended_at on the session and records an optional
// summary. Returns ErrNotFound if the session id does not exist.
func (s *Store) EndSession(sessionID, summary string) error {
	res, err := s.db.Exec(
		"UPDATE sessions SET ended_at = ?, summary = ? WHERE session_id = ?",
		now().Format(timeLayout), nullable(summary), sessionID,
	)
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %q: %w", sessionID, types.ErrNotFound)
	}
	s.log.Debug().Str("session_id", sessionID).Msg("session ended")
	return nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions() ([]types.Session, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, started_at, ended_at, summary, project_dir
		   FROM sessions ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []types.Session
	for rows.Next() {
		var (
			sess                         types.Session
			startedAt                    string
			endedAt, summary, projectDir sql.NullString
		)
		err := rows.Scan(&sess.ID, &sess.SessionID, &startedAt, &endedAt, &summary, &projectDir)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sess.StartedAt = parseTimestamp(startedAt)
		if endedAt.Valid {
			t := parseTimestamp(endedAt.String)
			sess.EndedAt = &t
		}
		sess.Summary = summary.String
		sess.ProjectDir = projectDir.String
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// generateSessionID returns a UUID v7 string, falling back to v4 if v7
// generation fails.
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
