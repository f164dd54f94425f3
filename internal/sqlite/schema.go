package sqlite

// CurrentSchemaVersion is the schema generation written to the metadata
// table on initialization and targeted by migration.
const CurrentSchemaVersion = "2"

// Schema DDL for all tables. Timestamps are stored as ISO-8601 UTC text
// at second precision; SQLite defaults fill them on insert.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id  TEXT NOT NULL UNIQUE,
    started_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    ended_at    TEXT,
    summary     TEXT,
    project_dir TEXT
);`

	createFixes = `CREATE TABLE IF NOT EXISTS fixes (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    error_hash  TEXT NOT NULL,
    error_text  TEXT NOT NULL,
    root_cause  TEXT NOT NULL,
    fix         TEXT NOT NULL,
    resource    TEXT,
    provider    TEXT,
    validated   INTEGER NOT NULL DEFAULT 0,
    scope       TEXT NOT NULL DEFAULT 'personal' CHECK (scope IN ('personal', 'team', 'org')),
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    hit_count   INTEGER NOT NULL DEFAULT 1,
    session_id  TEXT REFERENCES sessions(session_id)
);`

	createConventions = `CREATE TABLE IF NOT EXISTS conventions (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    category          TEXT NOT NULL,
    pattern           TEXT NOT NULL,
    example           TEXT,
    source            TEXT NOT NULL DEFAULT 'correction',
    scope             TEXT NOT NULL DEFAULT 'personal' CHECK (scope IN ('personal', 'team', 'org')),
    created_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    updated_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    confidence        REAL NOT NULL DEFAULT 0.5,
    session_id        TEXT REFERENCES sessions(session_id),
    distinct_sessions INTEGER NOT NULL DEFAULT 1,
    UNIQUE (category, pattern)
);`

	createQuirks = `CREATE TABLE IF NOT EXISTS quirks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    service     TEXT NOT NULL,
    description TEXT NOT NULL,
    region      TEXT,
    workaround  TEXT,
    scope       TEXT NOT NULL DEFAULT 'personal' CHECK (scope IN ('personal', 'team', 'org')),
    created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    session_id  TEXT REFERENCES sessions(session_id)
);`

	createMetadata = `CREATE TABLE IF NOT EXISTS metadata (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);`

	seedMetadata = `INSERT OR IGNORE INTO metadata (key, value) VALUES
    ('schema_version', '2'),
    ('created_at', strftime('%Y-%m-%dT%H:%M:%SZ', 'now'));`
)

// Index DDL for common lookups.
const (
	idxFixesErrorHash   = `CREATE INDEX IF NOT EXISTS idx_fixes_error_hash ON fixes(error_hash);`
	idxFixesResource    = `CREATE INDEX IF NOT EXISTS idx_fixes_resource ON fixes(resource);`
	idxFixesScope       = `CREATE INDEX IF NOT EXISTS idx_fixes_scope ON fixes(scope);`
	idxConventionsCat   = `CREATE INDEX IF NOT EXISTS idx_conventions_category ON conventions(category);`
	idxConventionsScope = `CREATE INDEX IF NOT EXISTS idx_conventions_scope ON conventions(scope);`
	idxQuirksService    = `CREATE INDEX IF NOT EXISTS idx_quirks_service ON quirks(service);`
	idxQuirksScope      = `CREATE INDEX IF NOT EXISTS idx_quirks_scope ON quirks(scope);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order;
// sessions first because the entity tables reference it.
var schemaDDL = []string{
	createSessions,
	createFixes,
	createConventions,
	createQuirks,
	createMetadata,
	seedMetadata,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxFixesErrorHash,
	idxFixesResource,
	idxFixesScope,
	idxConventionsCat,
	idxConventionsScope,
	idxQuirksService,
	idxQuirksScope,
}
