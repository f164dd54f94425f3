// Package canon provides read-only access to the static reference
// corpus: curated JSON files of error signatures and related patterns.
// The corpus is external to the memoir store; this package only loads
// and matches, it never writes. Editing, validation, and seeding of
// canon files belong to the corpus tooling, not here.
package canon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Canon file names consulted by search operations.
const (
	SignaturesFile   = "error-signatures.json"
	InteractionsFile = "sg-interactions.json"
)

// Signature is one curated error signature from error-signatures.json.
type Signature struct {
	ErrorPattern string   `json:"error_pattern"`
	Provider     string   `json:"provider,omitempty"`
	Resource     string   `json:"resource,omitempty"`
	RootCause    string   `json:"root_cause,omitempty"`
	Fix          string   `json:"fix,omitempty"`
	Severity     string   `json:"severity,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Interaction is one curated interaction pattern from sg-interactions.json.
type Interaction struct {
	PatternName        string   `json:"pattern_name"`
	Description        string   `json:"description,omitempty"`
	Symptom            string   `json:"symptom,omitempty"`
	RootCause          string   `json:"root_cause,omitempty"`
	Solution           string   `json:"solution,omitempty"`
	TerraformResources []string `json:"terraform_resources,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

// signaturesDoc mirrors the on-disk shape of error-signatures.json.
// The _meta block is carried but not interpreted here.
type signaturesDoc struct {
	Meta       map[string]any `json:"_meta"`
	Signatures []Signature    `json:"signatures"`
}

type interactionsDoc struct {
	Meta     map[string]any `json:"_meta"`
	Patterns []Interaction  `json:"patterns"`
}

// LoadSignatures reads error-signatures.json from dir. A missing or
// malformed file is an error; callers doing best-effort merged queries
// degrade it to an empty slice themselves.
func LoadSignatures(dir string) ([]Signature, error) {
	var doc signaturesDoc
	if err := loadJSON(filepath.Join(dir, SignaturesFile), &doc); err != nil {
		return nil, err
	}
	return doc.Signatures, nil
}

// LoadInteractions reads sg-interactions.json from dir.
func LoadInteractions(dir string) ([]Interaction, error) {
	var doc interactionsDoc
	if err := loadJSON(filepath.Join(dir, InteractionsFile), &doc); err != nil {
		return nil, err
	}
	return doc.Patterns, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading canon file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
