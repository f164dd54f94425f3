package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/memoir/pkg/confidence"
	"github.com/mesh-intelligence/memoir/pkg/types"
)

// RecordConvention records a learned rule, upserting on the natural key
// (category, pattern). A fresh assertion inserts at base confidence with
// a single distinct session. A repeat assertion is treated as a
// correction: confidence moves by the correction delta, and the distinct
// session count is bumped only when the asserting session differs from
// the one stored on the row. Returns the row id.
func (s *Store) RecordConvention(conv types.Convention) (int64, error) {
	if conv.Category == "" || conv.Pattern == "" {
		return 0, fmt.Errorf("convention requires category and pattern: %w", types.ErrInvalidData)
	}
	scope, err := checkScope(conv.Scope)
	if err != nil {
		return 0, err
	}
	source := conv.Source
	if source == "" {
		source = types.DefaultConventionSource
	}

	var (
		id            int64
		raw           float64
		storedSession sql.NullString
		distinct      int
	)
	err = s.db.QueryRow(
		"SELECT id, confidence, session_id, distinct_sessions FROM conventions WHERE category = ? AND pattern = ?",
		conv.Category, conv.Pattern,
	).Scan(&id, &raw, &storedSession, &distinct)
	switch {
	case err == nil:
		newRaw := confidence.Correct(raw)
		if conv.SessionID != "" && conv.SessionID != storedSession.String {
			distinct++
		}
		_, err = s.db.Exec(
			"UPDATE conventions SET confidence = ?, distinct_sessions = ?, session_id = ?, updated_at = ? WHERE id = ?",
			newRaw, distinct, nullable(conv.SessionID), now().Format(timeLayout), id,
		)
		if err != nil {
			return 0, wrapWriteErr("correcting convention", err)
		}
		s.log.Debug().Int64("id", id).Float64("confidence", newRaw).
			Int("distinct_sessions", distinct).Msg("convention corrected")
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("looking up convention: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO conventions
		   (category, pattern, example, source, scope, confidence, session_id, distinct_sessions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		conv.Category, conv.Pattern, nullable(conv.Example), source,
		string(scope), confidence.Base, nullable(conv.SessionID),
	)
	if err != nil {
		return 0, wrapWriteErr("recording convention", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading convention id: %w", err)
	}
	s.log.Debug().Int64("id", id).Str("category", conv.Category).Msg("convention recorded")
	return id, nil
}

// ReinforceConvention applies a reinforcement to the convention with
// the given id, bumping the distinct session count when sessionID is
// new for the row. Returns the new raw confidence, or ErrNotFound if
// the id does not exist.
func (s *Store) ReinforceConvention(id int64, sessionID string) (float64, error) {
	var (
		raw           float64
		storedSession sql.NullString
		distinct      int
	)
	err := s.db.QueryRow(
		"SELECT confidence, session_id, distinct_sessions FROM conventions WHERE id = ?", id,
	).Scan(&raw, &storedSession, &distinct)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("convention %d: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up convention %d: %w", id, err)
	}

	newRaw := confidence.Reinforce(raw)
	newSession := storedSession.String
	if sessionID != "" && sessionID != storedSession.String {
		distinct++
		newSession = sessionID
	}

	_, err = s.db.Exec(
		"UPDATE conventions SET confidence = ?, distinct_sessions = ?, session_id = ?, updated_at = ? WHERE id = ?",
		newRaw, distinct, nullable(newSession), now().Format(timeLayout), id,
	)
	if err != nil {
		return 0, wrapWriteErr("reinforcing convention", err)
	}
	s.log.Debug().Int64("id", id).Float64("confidence", newRaw).
		Int("distinct_sessions", distinct).Msg("convention reinforced")
	return newRaw, nil
}

// ContradictConvention resets the convention's confidence after a
// contradiction. The distinct session count is left untouched: the
// sessions still asserted it, the content just proved unreliable.
// Returns the new raw confidence, or ErrNotFound if the id does not
// exist.
func (s *Store) ContradictConvention(id int64) (float64, error) {
	newRaw := confidence.Contradict(0)
	res, err := s.db.Exec(
		"UPDATE conventions SET confidence = ?, updated_at = ? WHERE id = ?",
		newRaw, now().Format(timeLayout), id,
	)
	if err != nil {
		return 0, fmt.Errorf("contradicting convention: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("contradicting convention: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("convention %d: %w", id, types.ErrNotFound)
	}
	s.log.Debug().Int64("id", id).Float64("confidence", newRaw).Msg("convention contradicted")
	return newRaw, nil
}

// ConventionQuery filters LookupConventions. Zero-valued fields are
// ignored.
type ConventionQuery struct {
	Category      string
	Scope         types.Scope
	MinConfidence float64
}

// LookupConventions returns conventions matching the query ordered by
// raw confidence descending, with the effective confidence projection
// computed on each result.
func (s *Store) LookupConventions(q ConventionQuery) ([]types.Convention, error) {
	where := "1=1"
	var args []any

	if q.Category != "" {
		where += " AND category = ?"
		args = append(args, q.Category)
	}
	if q.Scope != "" {
		where += " AND scope = ?"
		args = append(args, string(q.Scope))
	}
	if q.MinConfidence > 0 {
		where += " AND confidence >= ?"
		args = append(args, q.MinConfidence)
	}

	rows, err := s.db.Query(
		`SELECT id, category, pattern, example, source, scope,
		        created_at, updated_at, confidence, session_id, distinct_sessions
		   FROM conventions WHERE `+where+` ORDER BY confidence DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conventions: %w", err)
	}
	defer rows.Close()

	var convs []types.Convention
	for rows.Next() {
		conv, err := scanConvention(rows)
		if err != nil {
			return nil, err
		}
		conv.EffectiveConfidence = confidence.Effective(conv.Confidence, conv.DistinctSessions)
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

func scanConvention(rows *sql.Rows) (types.Convention, error) {
	var (
		conv                        types.Convention
		example, sessionID          sql.NullString
		createdAt, updatedAt, scope string
	)
	err := rows.Scan(
		&conv.ID, &conv.Category, &conv.Pattern, &example, &conv.Source, &scope,
		&createdAt, &updatedAt, &conv.Confidence, &sessionID, &conv.DistinctSessions,
	)
	if err != nil {
		return types.Convention{}, fmt.Errorf("scanning convention: %w", err)
	}
	conv.Example = example.String
	conv.SessionID = sessionID.String
	conv.Scope = types.Scope(scope)
	conv.CreatedAt = parseTimestamp(createdAt)
	conv.UpdatedAt = parseTimestamp(updatedAt)
	return conv, nil
}
