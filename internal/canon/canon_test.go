package canon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signaturesFixture = `{
  "_meta": {"version": "1.0", "source": "unit test"},
  "signatures": [
    {
      "error_pattern": "BucketAlreadyExists",
      "provider": "aws",
      "resource": "aws_s3_bucket",
      "root_cause": "Bucket names are globally unique",
      "fix": "Pick a unique bucket name",
      "severity": "error",
      "tags": ["s3", "naming"]
    },
    {
      "error_pattern": "(?:Access|Permission)Denied",
      "provider": "aws",
      "resource": "aws_iam_role",
      "root_cause": "Caller lacks the required permission",
      "fix": "Grant the missing IAM permission",
      "severity": "error",
      "tags": ["iam"]
    },
    {
      "error_pattern": "throttl(ing",
      "provider": "aws",
      "resource": "aws_lambda_function",
      "root_cause": "API rate limit hit",
      "fix": "Retry with backoff",
      "severity": "warning",
      "tags": ["rate-limit"]
    }
  ]
}`

const interactionsFixture = `{
  "_meta": {"version": "1.0"},
  "patterns": [
    {
      "pattern_name": "sg-circular-reference",
      "description": "Two security groups referencing each other",
      "symptom": "Cycle error on apply",
      "root_cause": "Inline rules create a dependency cycle",
      "solution": "Use standalone aws_security_group_rule resources",
      "terraform_resources": ["aws_security_group", "aws_security_group_rule"],
      "tags": ["sg", "networking"]
    }
  ]
}`

// writeCanonDir materializes both corpus files in a temp directory.
func writeCanonDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SignaturesFile), []byte(signaturesFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, InteractionsFile), []byte(interactionsFixture), 0o644))
	return dir
}

func TestLoadSignatures(t *testing.T) {
	dir := writeCanonDir(t)

	sigs, err := LoadSignatures(dir)
	require.NoError(t, err)
	require.Len(t, sigs, 3)
	assert.Equal(t, "BucketAlreadyExists", sigs[0].ErrorPattern)
	assert.Equal(t, []string{"s3", "naming"}, sigs[0].Tags)
}

func TestLoadSignaturesMissingFile(t *testing.T) {
	_, err := LoadSignatures(t.TempDir())
	require.Error(t, err)
}

func TestLoadSignaturesMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SignaturesFile), []byte("{not json"), 0o644))

	_, err := LoadSignatures(dir)
	require.Error(t, err)
}

func TestLoadInteractions(t *testing.T) {
	dir := writeCanonDir(t)

	patterns, err := LoadInteractions(dir)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "sg-circular-reference", patterns[0].PatternName)
}

func TestMatchError(t *testing.T) {
	dir := writeCanonDir(t)
	sigs, err := LoadSignatures(dir)
	require.NoError(t, err)

	tests := []struct {
		name      string
		errorText string
		wantCount int
		wantFirst string
	}{
		{
			name:      "literal pattern matches",
			errorText: "Error creating bucket: BucketAlreadyExists",
			wantCount: 1,
			wantFirst: "BucketAlreadyExists",
		},
		{
			name:      "match is case insensitive",
			errorText: "error: bucketalreadyexists",
			wantCount: 1,
			wantFirst: "BucketAlreadyExists",
		},
		{
			name:      "regex alternation matches",
			errorText: "operation failed: PermissionDenied",
			wantCount: 1,
			wantFirst: "(?:Access|Permission)Denied",
		},
		{
			name:      "no match",
			errorText: "connection refused",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchError(tt.errorText, sigs)
			require.Len(t, got, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantFirst, got[0].ErrorPattern)
			}
		})
	}
}

func TestMatchErrorInvalidRegexFallsBackToSubstring(t *testing.T) {
	sigs := []Signature{{ErrorPattern: "throttl(ing"}}

	// The pattern is not a valid regex; it still matches as a literal
	// substring, case-insensitively.
	got := MatchError("Rate exceeded: THROTTL(ING detected", sigs)
	require.Len(t, got, 1)

	assert.Empty(t, MatchError("rate exceeded", sigs))
}

func TestSearchByResource(t *testing.T) {
	dir := writeCanonDir(t)

	results := SearchByResource(dir, "aws_s3_bucket")
	require.Len(t, results, 1)
	assert.Equal(t, SignaturesFile, results[0].Source)

	// Interaction patterns match through their terraform resources.
	results = SearchByResource(dir, "aws_security_group")
	require.Len(t, results, 1)
	assert.Equal(t, InteractionsFile, results[0].Source)

	// Substring match on the resource type.
	results = SearchByResource(dir, "s3")
	require.Len(t, results, 1)

	assert.Empty(t, SearchByResource(dir, "google_compute_instance"))
}

func TestSearchByResourceMissingCorpus(t *testing.T) {
	assert.Empty(t, SearchByResource(t.TempDir(), "aws_s3_bucket"))
}

func TestSearchByTags(t *testing.T) {
	dir := writeCanonDir(t)

	results := SearchByTags(dir, []string{"iam"})
	require.Len(t, results, 1)
	assert.Equal(t, SignaturesFile, results[0].Source)

	// One matching tag is enough, and matching is case-insensitive.
	results = SearchByTags(dir, []string{"NETWORKING", "unknown"})
	require.Len(t, results, 1)
	assert.Equal(t, InteractionsFile, results[0].Source)

	// Tags spanning both files return entries from both.
	results = SearchByTags(dir, []string{"s3", "sg"})
	require.Len(t, results, 2)

	assert.Empty(t, SearchByTags(dir, []string{"gcp"}))
}

func TestDedup(t *testing.T) {
	sig := Signature{ErrorPattern: "BucketAlreadyExists"}
	other := Signature{ErrorPattern: "AccessDenied"}

	results := []Result{
		{Source: SignaturesFile, Entry: sig},
		{Source: SignaturesFile, Entry: other},
		{Source: SignaturesFile, Entry: sig},
	}

	unique := Dedup(results)
	require.Len(t, unique, 2)
	assert.Equal(t, sig, unique[0].Entry)
	assert.Equal(t, other, unique[1].Entry)
}
