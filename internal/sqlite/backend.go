// Package sqlite implements the SQLite storage backend for the memoir
// knowledge store. Each public operation validates its input, executes
// against a single connection, and commits before returning; there are
// no cross-call transactions. Concurrent access relies on SQLite's own
// single-writer locking.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

// timeLayout is the stored timestamp format: ISO-8601 UTC, second
// precision, matching the strftime defaults in the schema.
const timeLayout = "2006-01-02T15:04:05Z"

// Store is a handle to one memoir database. The caller owns the handle
// and must Close it; no global connection state is kept.
type Store struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

// Open opens (creating if necessary) the memoir database at path and
// brings its schema to the current version. A path of ":memory:" opens
// an ephemeral in-memory store, useful for tests. Stores at schema
// version 1 are migrated in place.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The entity tables reference sessions; enforcement is off by
	// default in SQLite.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db, path: path, log: logger}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle. After Close all operations fail.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema initializes a fresh database or migrates an old one.
func (s *Store) ensureSchema() error {
	version, err := s.schemaVersionIfPresent()
	if err != nil {
		return err
	}

	switch version {
	case "":
		// Fresh database.
		for _, stmt := range append(schemaDDL, indexDDL...) {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
		}
		s.log.Debug().Str("path", s.path).Msg("initialized schema")
		return nil
	case "1":
		return s.migrateV1ToV2()
	case CurrentSchemaVersion:
		return nil
	default:
		return fmt.Errorf("unsupported schema version %q", version)
	}
}

// schemaVersionIfPresent reads schema_version from metadata, returning
// "" when the metadata table does not exist yet (fresh database).
func (s *Store) schemaVersionIfPresent() (string, error) {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'metadata'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("inspecting schema: %w", err)
	}
	return s.SchemaVersion()
}

// SchemaVersion returns the schema_version metadata value.
func (s *Store) SchemaVersion() (string, error) {
	var version string
	err := s.db.QueryRow(
		"SELECT value FROM metadata WHERE key = 'schema_version'",
	).Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version: %w", types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// Counts returns the row count per entity table, for status reporting.
func (s *Store) Counts() (map[string]int, error) {
	counts := make(map[string]int, 4)
	for _, table := range []string{"fixes", "conventions", "quirks", "sessions"} {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// now returns the current UTC time truncated to stored precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseTimestamp decodes a stored timestamp column.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// checkScope validates a scope at the boundary so a bad value is
// rejected before any SQL runs. The CHECK constraint in the schema is
// the backstop.
func checkScope(scope types.Scope) (types.Scope, error) {
	if scope == "" {
		return types.ScopePersonal, nil
	}
	if !scope.Valid() {
		return "", fmt.Errorf("scope %q: %w", scope, types.ErrInvalidScope)
	}
	return scope, nil
}

// wrapWriteErr maps driver constraint failures to sentinel errors.
func wrapWriteErr(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint"):
		return fmt.Errorf("%s: %w", op, types.ErrSessionUnknown)
	case strings.Contains(msg, "CHECK constraint"):
		return fmt.Errorf("%s: %w", op, types.ErrInvalidScope)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
