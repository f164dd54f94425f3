package types

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Fix is a remediation learned for a specific error condition. At most
// one row exists per ErrorHash; repeat reports of the same normalized
// error bump HitCount instead of inserting a duplicate.
type Fix struct {
	ID        int64     `json:"id"`
	ErrorHash string    `json:"error_hash"`
	ErrorText string    `json:"error_text"`
	RootCause string    `json:"root_cause"`
	Fix       string    `json:"fix"`
	Resource  string    `json:"resource,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	Validated bool      `json:"validated"`
	Scope     Scope     `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	HitCount  int       `json:"hit_count"`
	SessionID string    `json:"session_id,omitempty"`
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// NormalizeErrorText canonicalizes error text for hashing: lowercase
// with runs of whitespace collapsed to single spaces.
func NormalizeErrorText(errorText string) string {
	return whitespaceRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(errorText)), " ")
}

// HashErrorText returns the SHA-256 hex digest of the normalized error
// text. Case and whitespace variants of the same error hash identically.
func HashErrorText(errorText string) string {
	sum := sha256.Sum256([]byte(NormalizeErrorText(errorText)))
	return hex.EncodeToString(sum[:])
}
