package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

// RecordQuirk records a service peculiarity. Quirks have no natural
// key; every call inserts a new row. Returns the row id.
func (s *Store) RecordQuirk(quirk types.Quirk) (int64, error) {
	if quirk.Service == "" || quirk.Description == "" {
		return 0, fmt.Errorf("quirk requires service and description: %w", types.ErrInvalidData)
	}
	scope, err := checkScope(quirk.Scope)
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		`INSERT INTO quirks (service, description, region, workaround, scope, session_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		quirk.Service, quirk.Description, nullable(quirk.Region),
		nullable(quirk.Workaround), string(scope), nullable(quirk.SessionID),
	)
	if err != nil {
		return 0, wrapWriteErr("recording quirk", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading quirk id: %w", err)
	}
	s.log.Debug().Int64("id", id).Str("service", quirk.Service).Msg("quirk recorded")
	return id, nil
}

// QuirkQuery filters LookupQuirks. Zero-valued fields are ignored.
type QuirkQuery struct {
	Service string
	Region  string
	Scope   types.Scope
}

// LookupQuirks returns quirks matching the query in insertion order.
func (s *Store) LookupQuirks(q QuirkQuery) ([]types.Quirk, error) {
	where := "1=1"
	var args []any

	if q.Service != "" {
		where += " AND service = ?"
		args = append(args, q.Service)
	}
	if q.Region != "" {
		where += " AND region = ?"
		args = append(args, q.Region)
	}
	if q.Scope != "" {
		where += " AND scope = ?"
		args = append(args, string(q.Scope))
	}

	rows, err := s.db.Query(
		`SELECT id, service, description, region, workaround, scope,
		        created_at, updated_at, session_id
		   FROM quirks WHERE `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("querying quirks: %w", err)
	}
	defer rows.Close()

	var quirks []types.Quirk
	for rows.Next() {
		quirk, err := scanQuirk(rows)
		if err != nil {
			return nil, err
		}
		quirks = append(quirks, quirk)
	}
	return quirks, rows.Err()
}

func scanQuirk(rows *sql.Rows) (types.Quirk, error) {
	var (
		quirk                         types.Quirk
		region, workaround, sessionID sql.NullString
		createdAt, updatedAt, scope   string
	)
	err := rows.Scan(
		&quirk.ID, &quirk.Service, &quirk.Description, &region, &workaround,
		&scope, &createdAt, &updatedAt, &sessionID,
	)
	if err != nil {
		return types.Quirk{}, fmt.Errorf("scanning quirk: %w", err)
	}
	quirk.Region = region.String
	quirk.Workaround = workaround.String
	quirk.SessionID = sessionID.String
	quirk.Scope = types.Scope(scope)
	quirk.CreatedAt = parseTimestamp(createdAt)
	quirk.UpdatedAt = parseTimestamp(updatedAt)
	return quirk, nil
}
