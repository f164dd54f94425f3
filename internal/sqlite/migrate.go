package sqlite

import "fmt"

// migrateV1ToV2 upgrades a version-1 store in place. Version 1 lacked
// session provenance: no session_id columns on the entity tables and no
// distinct_sessions on conventions. The migration adds the columns with
// their defaults, leaving every existing row intact, then bumps
// schema_version. Runs in one transaction so a failure leaves the store
// at version 1.
func (s *Store) migrateV1ToV2() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		"ALTER TABLE fixes ADD COLUMN session_id TEXT REFERENCES sessions(session_id)",
		"ALTER TABLE conventions ADD COLUMN session_id TEXT REFERENCES sessions(session_id)",
		"ALTER TABLE conventions ADD COLUMN distinct_sessions INTEGER NOT NULL DEFAULT 1",
		"ALTER TABLE quirks ADD COLUMN session_id TEXT REFERENCES sessions(session_id)",
		"UPDATE metadata SET value = '2', updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now') WHERE key = 'schema_version'",
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema to v2: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	s.log.Info().Str("path", s.path).Msg("migrated schema v1 to v2")
	return nil
}
