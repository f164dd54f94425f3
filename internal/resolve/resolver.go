// Package resolve merges canon lookups with memory lookups into a
// single ranked answer. Learned knowledge supersedes the static corpus
// only when its scope or track record earns it: team- and org-scoped
// entries always override, personal fixes override once validated, and
// personal conventions override once their effective confidence clears
// the threshold.
package resolve

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/memoir/internal/canon"
	"github.com/mesh-intelligence/memoir/internal/sqlite"
	"github.com/mesh-intelligence/memoir/pkg/confidence"
	"github.com/mesh-intelligence/memoir/pkg/types"
)

// Entry sources in merged output.
const (
	SourceCanon  = "canon"
	SourceMemory = "memory"
)

// MergedEntry is one ranked result with its override classification.
type MergedEntry struct {
	Source         string  `json:"source"`
	OverridesCanon bool    `json:"overrides_canon"`
	OverrideReason *string `json:"override_reason"`
	Entry          any     `json:"entry"`
}

// Result is the full merged-query answer: the raw canon and memory
// result sets plus the ranked merge.
type Result struct {
	CanonResults  []canon.Signature `json:"canon_results"`
	MemoryResults []types.Fix       `json:"memory_results"`
	Merged        []MergedEntry     `json:"merged"`
}

// Resolver answers merged queries against one store and one canon
// directory.
type Resolver struct {
	store    *sqlite.Store
	canonDir string
	log      zerolog.Logger
}

// New returns a Resolver. canonDir may be empty; merged queries then
// carry memory results only.
func New(store *sqlite.Store, canonDir string, logger zerolog.Logger) *Resolver {
	return &Resolver{store: store, canonDir: canonDir, log: logger}
}

// QueryWithPriority looks the error text up in canon and in the fixes
// table and merges the results. Overriding memory entries come first,
// then canon entries in corpus order, then non-overriding memory
// entries as low-confidence context. The canon side is best effort: a
// missing or malformed corpus degrades to empty canon results rather
// than failing the query.
func (r *Resolver) QueryWithPriority(errorText string) (*Result, error) {
	var canonResults []canon.Signature
	if r.canonDir != "" {
		sigs, err := canon.LoadSignatures(r.canonDir)
		if err != nil {
			r.log.Debug().Err(err).Str("dir", r.canonDir).Msg("canon unavailable, degrading to memory only")
		} else {
			canonResults = canon.MatchError(errorText, sigs)
		}
	}

	memoryFixes, err := r.store.LookupFixes(sqlite.FixQuery{ErrorText: errorText})
	if err != nil {
		return nil, fmt.Errorf("memory lookup: %w", err)
	}

	var overriding, nonOverriding []MergedEntry
	for _, fix := range memoryFixes {
		override, reason := ShouldOverrideFix(fix)
		entry := MergedEntry{
			Source:         SourceMemory,
			OverridesCanon: override,
			OverrideReason: reasonPtr(reason),
			Entry:          fix,
		}
		if override {
			overriding = append(overriding, entry)
		} else {
			nonOverriding = append(nonOverriding, entry)
		}
	}

	merged := make([]MergedEntry, 0, len(memoryFixes)+len(canonResults))
	merged = append(merged, overriding...)
	for _, sig := range canonResults {
		merged = append(merged, MergedEntry{Source: SourceCanon, Entry: sig})
	}
	merged = append(merged, nonOverriding...)

	return &Result{
		CanonResults:  canonResults,
		MemoryResults: memoryFixes,
		Merged:        merged,
	}, nil
}

// ShouldOverrideFix classifies a memory fix against canon. Team- and
// org-scoped fixes always override; a personal fix overrides only once
// validated. The reason is empty when the fix does not override.
func ShouldOverrideFix(fix types.Fix) (bool, string) {
	switch fix.Scope {
	case types.ScopeTeam, types.ScopeOrg:
		return true, fmt.Sprintf("%s-scoped", fix.Scope)
	case types.ScopePersonal:
		if fix.Validated {
			return true, "validated fix"
		}
	}
	return false, ""
}

// ShouldOverrideConvention classifies a memory convention against
// canon. Team- and org-scoped conventions always override; a personal
// convention overrides once its effective confidence clears the
// override threshold.
func ShouldOverrideConvention(conv types.Convention) (bool, string) {
	switch conv.Scope {
	case types.ScopeTeam, types.ScopeOrg:
		return true, fmt.Sprintf("%s-scoped", conv.Scope)
	case types.ScopePersonal:
		eff := confidence.Effective(conv.Confidence, conv.DistinctSessions)
		if confidence.MeetsOverrideThreshold(eff) {
			return true, fmt.Sprintf("confidence %.2f >= %.1f", eff, confidence.OverrideThreshold)
		}
	}
	return false, ""
}

func reasonPtr(reason string) *string {
	if reason == "" {
		return nil
	}
	return &reason
}
