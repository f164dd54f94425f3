package types

import "fmt"

// Scope is the visibility tier of a learned fact. It governs both
// override priority and fork inclusion.
type Scope string

// Visibility tiers, narrowest first.
const (
	ScopePersonal Scope = "personal"
	ScopeTeam     Scope = "team"
	ScopeOrg      Scope = "org"
)

// validScopes is the set of recognized scope values.
var validScopes = map[Scope]bool{
	ScopePersonal: true,
	ScopeTeam:     true,
	ScopeOrg:      true,
}

// Valid reports whether the scope is one of the recognized tiers.
func (s Scope) Valid() bool {
	return validScopes[s]
}

// ParseScope converts a string to a Scope. An empty string maps to
// ScopePersonal, the storage default. Returns ErrInvalidScope for any
// other unrecognized value.
func ParseScope(s string) (Scope, error) {
	if s == "" {
		return ScopePersonal, nil
	}
	scope := Scope(s)
	if !scope.Valid() {
		return "", fmt.Errorf("scope %q: %w", s, ErrInvalidScope)
	}
	return scope, nil
}
