package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

func TestRecordQuirkAlwaysInserts(t *testing.T) {
	s := setupStore(t)

	quirk := types.Quirk{
		Service:     "lambda",
		Description: "cold starts spike after deploy",
		Region:      "eu-west-1",
		Workaround:  "provisioned concurrency on hot paths",
	}

	first, err := s.RecordQuirk(quirk)
	require.NoError(t, err)

	// No dedup key: the identical quirk inserts a second row.
	second, err := s.RecordQuirk(quirk)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	quirks, err := s.LookupQuirks(QuirkQuery{Service: "lambda"})
	require.NoError(t, err)
	assert.Len(t, quirks, 2)
}

func TestRecordQuirkRequiredFields(t *testing.T) {
	s := setupStore(t)

	_, err := s.RecordQuirk(types.Quirk{Description: "d"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = s.RecordQuirk(types.Quirk{Service: "s3"})
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestLookupQuirksFilters(t *testing.T) {
	s := setupStore(t)

	_, err := s.RecordQuirk(types.Quirk{
		Service: "s3", Description: "list after write lags",
		Region: "us-east-1", Scope: types.ScopeOrg,
	})
	require.NoError(t, err)
	_, err = s.RecordQuirk(types.Quirk{
		Service: "dynamodb", Description: "GSI throttles independently",
		Region: "eu-west-1",
	})
	require.NoError(t, err)

	byService, err := s.LookupQuirks(QuirkQuery{Service: "s3"})
	require.NoError(t, err)
	require.Len(t, byService, 1)
	assert.Equal(t, "us-east-1", byService[0].Region)

	byRegion, err := s.LookupQuirks(QuirkQuery{Region: "eu-west-1"})
	require.NoError(t, err)
	require.Len(t, byRegion, 1)
	assert.Equal(t, "dynamodb", byRegion[0].Service)

	byScope, err := s.LookupQuirks(QuirkQuery{Scope: types.ScopeOrg})
	require.NoError(t, err)
	require.Len(t, byScope, 1)

	all, err := s.LookupQuirks(QuirkQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
