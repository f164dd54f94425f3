package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

func TestRecordFixInsertsNewRow(t *testing.T) {
	s := setupStore(t)

	id, err := s.RecordFix(types.Fix{
		ErrorText: "Error creating S3 bucket: BucketAlreadyExists",
		RootCause: "Bucket names are globally unique",
		Fix:       "Pick a unique bucket name",
		Resource:  "aws_s3_bucket",
		Provider:  "aws",
		Scope:     types.ScopeTeam,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	fixes, err := s.LookupFixes(FixQuery{})
	require.NoError(t, err)
	require.Len(t, fixes, 1)

	got := fixes[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, types.HashErrorText("Error creating S3 bucket: BucketAlreadyExists"), got.ErrorHash)
	assert.Equal(t, "aws_s3_bucket", got.Resource)
	assert.Equal(t, types.ScopeTeam, got.Scope)
	assert.Equal(t, 1, got.HitCount)
	assert.False(t, got.Validated)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRecordFixBumpsHitCountOnRepeat(t *testing.T) {
	s := setupStore(t)

	first, err := s.RecordFix(types.Fix{
		ErrorText: "Error creating S3 bucket: BucketAlreadyExists",
		RootCause: "Bucket names are globally unique",
		Fix:       "Pick a unique bucket name",
	})
	require.NoError(t, err)

	// A case and whitespace variant of the same error hits the same row.
	second, err := s.RecordFix(types.Fix{
		ErrorText: "error creating s3   bucket:\nbucketalreadyexists",
		RootCause: "different wording this time",
		Fix:       "different fix this time",
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	fixes, err := s.LookupFixes(FixQuery{})
	require.NoError(t, err)
	require.Len(t, fixes, 1)
	assert.Equal(t, 2, fixes[0].HitCount)

	// The original remediation text is kept.
	assert.Equal(t, "Pick a unique bucket name", fixes[0].Fix)
}

func TestRecordFixRequiredFields(t *testing.T) {
	s := setupStore(t)

	tests := []struct {
		name string
		fix  types.Fix
	}{
		{name: "missing error text", fix: types.Fix{RootCause: "c", Fix: "f"}},
		{name: "missing root cause", fix: types.Fix{ErrorText: "e", Fix: "f"}},
		{name: "missing fix", fix: types.Fix{ErrorText: "e", RootCause: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.RecordFix(tt.fix)
			assert.ErrorIs(t, err, types.ErrInvalidData)
		})
	}
}

func TestRecordFixWithSession(t *testing.T) {
	s := setupStore(t)

	sess, err := s.BeginSession("/work/project")
	require.NoError(t, err)

	_, err = s.RecordFix(types.Fix{
		ErrorText: "boom", RootCause: "cause", Fix: "fix",
		SessionID: sess.SessionID,
	})
	require.NoError(t, err)

	fixes, err := s.LookupFixes(FixQuery{ErrorText: "boom"})
	require.NoError(t, err)
	require.Len(t, fixes, 1)
	assert.Equal(t, sess.SessionID, fixes[0].SessionID)
}

func TestLookupFixesFilters(t *testing.T) {
	s := setupStore(t)

	_, err := s.RecordFix(types.Fix{
		ErrorText: "bucket exists", RootCause: "c", Fix: "f",
		Resource: "aws_s3_bucket", Scope: types.ScopeTeam,
	})
	require.NoError(t, err)
	_, err = s.RecordFix(types.Fix{
		ErrorText: "access denied", RootCause: "c", Fix: "f",
		Resource: "aws_iam_role", Scope: types.ScopePersonal,
	})
	require.NoError(t, err)

	byText, err := s.LookupFixes(FixQuery{ErrorText: "Bucket   Exists"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "bucket exists", byText[0].ErrorText)

	byHash, err := s.LookupFixes(FixQuery{ErrorHash: types.HashErrorText("access denied")})
	require.NoError(t, err)
	require.Len(t, byHash, 1)
	assert.Equal(t, "access denied", byHash[0].ErrorText)

	byResource, err := s.LookupFixes(FixQuery{Resource: "aws_iam_role"})
	require.NoError(t, err)
	require.Len(t, byResource, 1)

	byScope, err := s.LookupFixes(FixQuery{Scope: types.ScopeTeam})
	require.NoError(t, err)
	require.Len(t, byScope, 1)
	assert.Equal(t, types.ScopeTeam, byScope[0].Scope)

	none, err := s.LookupFixes(FixQuery{ErrorText: "never seen"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLookupFixesOrdersByHitCount(t *testing.T) {
	s := setupStore(t)

	_, err := s.RecordFix(types.Fix{ErrorText: "rarely seen", RootCause: "c", Fix: "f"})
	require.NoError(t, err)

	for range 3 {
		_, err = s.RecordFix(types.Fix{ErrorText: "often seen", RootCause: "c", Fix: "f"})
		require.NoError(t, err)
	}

	fixes, err := s.LookupFixes(FixQuery{})
	require.NoError(t, err)
	require.Len(t, fixes, 2)
	assert.Equal(t, "often seen", fixes[0].ErrorText)
	assert.Equal(t, 3, fixes[0].HitCount)
}

func TestMarkFixValidated(t *testing.T) {
	s := setupStore(t)

	id, err := s.RecordFix(types.Fix{ErrorText: "boom", RootCause: "c", Fix: "f"})
	require.NoError(t, err)

	require.NoError(t, s.MarkFixValidated(id, true))

	fixes, err := s.LookupFixes(FixQuery{ErrorText: "boom"})
	require.NoError(t, err)
	require.Len(t, fixes, 1)
	assert.True(t, fixes[0].Validated)

	require.NoError(t, s.MarkFixValidated(id, false))
	fixes, err = s.LookupFixes(FixQuery{ErrorText: "boom"})
	require.NoError(t, err)
	assert.False(t, fixes[0].Validated)
}

func TestMarkFixValidatedNotFound(t *testing.T) {
	s := setupStore(t)
	assert.ErrorIs(t, s.MarkFixValidated(4242, true), types.ErrNotFound)
}
