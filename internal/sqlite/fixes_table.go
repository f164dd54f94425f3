package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

// RecordFix records a remediation for an error condition. Writes are
// idempotent by normalized error hash: if a row with the same hash
// exists, its hit count is bumped and updated_at refreshed; otherwise a
// new row is inserted at hit count 1. Returns the row id either way.
func (s *Store) RecordFix(fix types.Fix) (int64, error) {
	if fix.ErrorText == "" || fix.RootCause == "" || fix.Fix == "" {
		return 0, fmt.Errorf("fix requires error text, root cause, and fix: %w", types.ErrInvalidData)
	}
	scope, err := checkScope(fix.Scope)
	if err != nil {
		return 0, err
	}

	hash := types.HashErrorText(fix.ErrorText)

	var id int64
	var hitCount int
	err = s.db.QueryRow(
		"SELECT id, hit_count FROM fixes WHERE error_hash = ?", hash,
	).Scan(&id, &hitCount)
	switch {
	case err == nil:
		_, err = s.db.Exec(
			"UPDATE fixes SET hit_count = ?, updated_at = ? WHERE id = ?",
			hitCount+1, now().Format(timeLayout), id,
		)
		if err != nil {
			return 0, fmt.Errorf("bumping fix hit count: %w", err)
		}
		s.log.Debug().Int64("id", id).Int("hit_count", hitCount+1).Msg("fix hit count bumped")
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("looking up fix by hash: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO fixes
		   (error_hash, error_text, root_cause, fix, resource, provider,
		    validated, scope, session_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hash, fix.ErrorText, fix.RootCause, fix.Fix,
		nullable(fix.Resource), nullable(fix.Provider),
		fix.Validated, string(scope), nullable(fix.SessionID),
	)
	if err != nil {
		return 0, wrapWriteErr("recording fix", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading fix id: %w", err)
	}
	s.log.Debug().Int64("id", id).Str("scope", string(scope)).Msg("fix recorded")
	return id, nil
}

// MarkFixValidated sets the validated flag on a fix, promoting a
// personal-scoped fix to override status.
func (s *Store) MarkFixValidated(id int64, validated bool) error {
	res, err := s.db.Exec(
		"UPDATE fixes SET validated = ?, updated_at = ? WHERE id = ?",
		validated, now().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("marking fix validated: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking fix validated: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("fix %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// FixQuery filters LookupFixes. Zero-valued fields are ignored.
// ErrorHash takes precedence over ErrorText; ErrorText is hashed and
// matched exactly against stored hashes.
type FixQuery struct {
	ErrorText string
	ErrorHash string
	Resource  string
	Scope     types.Scope
}

// LookupFixes returns fixes matching the query, most-hit first.
func (s *Store) LookupFixes(q FixQuery) ([]types.Fix, error) {
	where := "1=1"
	var args []any

	switch {
	case q.ErrorHash != "":
		where += " AND error_hash = ?"
		args = append(args, q.ErrorHash)
	case q.ErrorText != "":
		where += " AND error_hash = ?"
		args = append(args, types.HashErrorText(q.ErrorText))
	}
	if q.Resource != "" {
		where += " AND resource = ?"
		args = append(args, q.Resource)
	}
	if q.Scope != "" {
		where += " AND scope = ?"
		args = append(args, string(q.Scope))
	}

	rows, err := s.db.Query(
		`SELECT id, error_hash, error_text, root_cause, fix, resource, provider,
		        validated, scope, created_at, updated_at, hit_count, session_id
		   FROM fixes WHERE `+where+` ORDER BY hit_count DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying fixes: %w", err)
	}
	defer rows.Close()

	var fixes []types.Fix
	for rows.Next() {
		fix, err := scanFix(rows)
		if err != nil {
			return nil, err
		}
		fixes = append(fixes, fix)
	}
	return fixes, rows.Err()
}

func scanFix(rows *sql.Rows) (types.Fix, error) {
	var (
		fix                           types.Fix
		resource, provider, sessionID sql.NullString
		createdAt, updatedAt, scope   string
	)
	err := rows.Scan(
		&fix.ID, &fix.ErrorHash, &fix.ErrorText, &fix.RootCause, &fix.Fix,
		&resource, &provider, &fix.Validated, &scope,
		&createdAt, &updatedAt, &fix.HitCount, &sessionID,
	)
	if err != nil {
		return types.Fix{}, fmt.Errorf("scanning fix: %w", err)
	}
	fix.Resource = resource.String
	fix.Provider = provider.String
	fix.SessionID = sessionID.String
	fix.Scope = types.Scope(scope)
	fix.CreatedAt = parseTimestamp(createdAt)
	fix.UpdatedAt = parseTimestamp(updatedAt)
	return fix, nil
}
