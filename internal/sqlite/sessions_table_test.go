package sqlite

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/memoir/pkg/types"
)

func TestBeginSession(t *testing.T) {
	s := setupStore(t)

	sess, err := s.BeginSession("/work/project")
	require.NoError(t, err)
	assert.Positive(t, sess.ID)
	assert.Equal(t, "/work/project", sess.ProjectDir)
	assert.Nil(t, sess.EndedAt)

	_, err = uuid.Parse(sess.SessionID)
	assert.NoError(t, err, "session id should be a UUID")

	other, err := s.BeginSession("")
	require.NoError(t, err)
	assert.NotEqual(t, sess.SessionID, other.SessionID)
}

func TestEnsureSession(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.EnsureSession("external-session-1"))

	// Idempotent for an id that already exists, generated or ensured.
	require.NoError(t, s.EnsureSession("external-session-1"))

	sess, err := s.BeginSession("")
	require.NoError(t, err)
	require.NoError(t, s.EnsureSession(sess.SessionID))

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["sessions"])

	err = s.EnsureSession("")
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestEndSession(t *testing.T) {
	s := setupStore(t)

	sess, err := s.BeginSession("")
	require.NoError(t, err)

	require.NoError(t, s.EndSession(sess.SessionID, "refactored the vpc module"))

	sessions, err := s.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].EndedAt)
	assert.Equal(t, "refactored the vpc module", sessions[0].Summary)
}

func TestEndSessionNotFound(t *testing.T) {
	s := setupStore(t)
	assert.ErrorIs(t, s.EndSession("no-such-session", ""), types.ErrNotFound)
}

func TestListSessionsNewestFirst(t *testing.T) {
	s := setupStore(t)

	first, err := s.BeginSession("")
	require.NoError(t, err)
	second, err := s.BeginSession("")
	require.NoError(t, err)

	sessions, err := s.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.SessionID, sessions[0].SessionID)
	assert.Equal(t, first.SessionID, sessions[1].SessionID)
}
