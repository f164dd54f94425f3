package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

// forkScopes maps a fork filter to the qualifying row scopes. Personal
// rows never qualify; a team fork carries org rows because org is the
// wider tier.
func forkScopes(filter types.Scope) ([]types.Scope, error) {
	switch filter {
	case types.ScopeOrg:
		return []types.Scope{types.ScopeOrg}, nil
	case types.ScopeTeam, "":
		return []types.Scope{types.ScopeTeam, types.ScopeOrg}, nil
	default:
		return nil, fmt.Errorf("fork filter %q: %w", filter, types.ErrInvalidScope)
	}
}

// ExportFork materializes a shareable subset of the store at srcPath
// into a fresh store at dstPath. Only rows at or above the filter scope
// are copied, and session provenance does not travel: the sessions
// table stays empty, copied rows carry a null session id, and copied
// conventions restart at one distinct session while keeping their raw
// confidence verbatim. An existing destination is replaced; a partially
// written destination is removed on failure.
func ExportFork(srcPath, dstPath string, filter types.Scope, logger zerolog.Logger) error {
	scopes, err := forkScopes(filter)
	if err != nil {
		return err
	}

	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("opening source store: %w", err)
	}

	if dir := filepath.Dir(dstPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating destination directory: %w", err)
		}
	}
	if err := os.Remove(dstPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing destination: %w", err)
	}

	src, err := Open(srcPath, logger)
	if err != nil {
		return fmt.Errorf("opening source store: %w", err)
	}
	defer src.Close()

	dst, err := Open(dstPath, logger)
	if err != nil {
		return fmt.Errorf("creating destination store: %w", err)
	}

	if err := copyScoped(src, dst, scopes); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return err
	}

	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return fmt.Errorf("closing destination store: %w", err)
	}

	logger.Info().Str("src", srcPath).Str("dst", dstPath).
		Str("filter", string(filter)).Msg("fork exported")
	return nil
}

func copyScoped(src, dst *Store, scopes []types.Scope) error {
	placeholders := "?"
	args := []any{string(scopes[0])}
	for _, scope := range scopes[1:] {
		placeholders += ",?"
		args = append(args, string(scope))
	}

	// Fixes keep their full history minus the session reference.
	fixRows, err := src.db.Query(
		`SELECT error_hash, error_text, root_cause, fix, resource, provider,
		        validated, scope, created_at, updated_at, hit_count
		   FROM fixes WHERE scope IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("reading source fixes: %w", err)
	}
	defer fixRows.Close()
	for fixRows.Next() {
		var cols [11]any
		ptrs := make([]any, len(cols))
		for i := range cols {
			ptrs[i] = &cols[i]
		}
		if err := fixRows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning source fix: %w", err)
		}
		_, err := dst.db.Exec(
			`INSERT INTO fixes
			   (error_hash, error_text, root_cause, fix, resource, provider,
			    validated, scope, created_at, updated_at, hit_count, session_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`, cols[:]...)
		if err != nil {
			return fmt.Errorf("copying fix: %w", err)
		}
	}
	if err := fixRows.Err(); err != nil {
		return fmt.Errorf("reading source fixes: %w", err)
	}

	// Conventions keep raw confidence but restart session provenance.
	convRows, err := src.db.Query(
		`SELECT category, pattern, example, source, scope, created_at, updated_at, confidence
		   FROM conventions WHERE scope IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("reading source conventions: %w", err)
	}
	defer convRows.Close()
	for convRows.Next() {
		var cols [8]any
		ptrs := make([]any, len(cols))
		for i := range cols {
			ptrs[i] = &cols[i]
		}
		if err := convRows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning source convention: %w", err)
		}
		_, err := dst.db.Exec(
			`INSERT INTO conventions
			   (category, pattern, example, source, scope, created_at, updated_at,
			    confidence, session_id, distinct_sessions)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, 1)`, cols[:]...)
		if err != nil {
			return fmt.Errorf("copying convention: %w", err)
		}
	}
	if err := convRows.Err(); err != nil {
		return fmt.Errorf("reading source conventions: %w", err)
	}

	quirkRows, err := src.db.Query(
		`SELECT service, description, region, workaround, scope, created_at, updated_at
		   FROM quirks WHERE scope IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("reading source quirks: %w", err)
	}
	defer quirkRows.Close()
	for quirkRows.Next() {
		var cols [7]any
		ptrs := make([]any, len(cols))
		for i := range cols {
			ptrs[i] = &cols[i]
		}
		if err := quirkRows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning source quirk: %w", err)
		}
		_, err := dst.db.Exec(
			`INSERT INTO quirks
			   (service, description, region, workaround, scope, created_at, updated_at, session_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`, cols[:]...)
		if err != nil {
			return fmt.Errorf("copying quirk: %w", err)
		}
	}
	return quirkRows.Err()
}
