package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/timemachine/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

func TestSession_Load_FirstRun(t *testing.T) {
	s := NewSession(newTestDB(t), logging.Discard())

	tok, ok := s.Load(context.Background())
	assert.False(t, ok)
	assert.Empty(t, tok)

	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSession_SetPersistsAndSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	s := NewSession(db, logging.Discard())
	require.NoError(t, s.Set(ctx, "alice", "abc"))

	tok, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "abc", tok)
	assert.Equal(t, "alice", s.Username())

	stored, err := metadata.NewSQLiteRepository(db).Lookup(ctx, KeyToken, KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(stored[KeyToken]))
	assert.Equal(t, "alice", string(stored[KeyUsername]))

	restarted := NewSession(db, logging.Discard())
	tok, ok = restarted.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", tok)
	assert.Equal(t, "alice", restarted.Username())
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	s := NewSession(db, logging.Discard())
	require.NoError(t, s.Set(ctx, "alice", "abc"))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, s.Username())

	stored, err := metadata.NewSQLiteRepository(db).Lookup(ctx, KeyToken, KeyUsername)
	require.NoError(t, err)
	assert.Empty(t, stored)

	_, ok = NewSession(db, logging.Discard()).Load(ctx)
	assert.False(t, ok)
}

func TestSession_Set_ReplacesPreviousUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	s := NewSession(db, logging.Discard())
	require.NoError(t, s.Set(ctx, "alice", "abc"))
	require.NoError(t, s.Set(ctx, "bob", "xyz"))

	restarted := NewSession(db, logging.Discard())
	tok, ok := restarted.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "xyz", tok)
	assert.Equal(t, "bob", restarted.Username())
}

func TestSession_SetFailure_DoesNotHoldToken(t *testing.T) {
	db := newTestDB(t)
	s := NewSession(db, logging.Discard())
	require.NoError(t, db.Close())

	err := s.Set(context.Background(), "alice", "abc")
	require.Error(t, err)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_LoadFailure_IsNoToken(t *testing.T) {
	db := newTestDB(t)
	s := NewSession(db, logging.Discard())
	require.NoError(t, db.Close())

	_, ok := s.Load(context.Background())
	assert.False(t, ok)
}

func TestSession_ClearFailure_StillForgetsInMemory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewSession(db, logging.Discard())
	require.NoError(t, s.Set(ctx, "alice", "abc"))
	require.NoError(t, db.Close())

	err := s.Clear(ctx)
	require.Error(t, err)

	_, ok := s.Current()
	assert.False(t, ok)
}
