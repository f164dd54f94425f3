package types

import "errors"

// Config holds the store location and canon corpus directory for opening
// a memoir backend. The CLI resolves these from flags, environment, and
// config.yaml before constructing a Config.
type Config struct {
	DBPath   string `json:"db_path" yaml:"db_path"`
	CanonDir string `json:"canon_dir" yaml:"canon_dir"`
}

// Config validation errors.
var (
	ErrDBPathEmpty = errors.New("db path must not be empty")
)

// Validate checks that the Config is well-formed. CanonDir is optional;
// a merged query without a canon directory degrades to memory-only
// results.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	return nil
}
