package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pkg struct {
	ID    string `json:"id"`
	Price int    `json:"price"`
}

func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	v, ok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, SetJSON(ctx, s, KeySelectedPackage, pkg{ID: "gst-basic", Price: 1499}))
	var p pkg
	ok, err = GetJSON(ctx, s, KeySelectedPackage, &p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pkg{ID: "gst-basic", Price: 1499}, p)

	require.NoError(t, Clear(ctx, s, KeyToken, KeySelectedPackage, "missing"))
	_, ok, _ = s.Get(ctx, KeyToken)
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "oneasy.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	testStore(t, f)

	require.NoError(t, f.Set(context.Background(), KeyDraftTicketID, "GST_1"))
	reopened, err := NewFile(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(context.Background(), KeyDraftTicketID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "GST_1", v)
}

func TestFileCorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	f, err := NewFile(path)
	require.NoError(t, err)

	_, ok, err := f.Get(context.Background(), KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetJSONClearsCorruptValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, KeyUser, "{broken"))

	var v map[string]any
	ok, err := GetJSON(ctx, m, KeyUser, &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, m.Keys())
}

func TestTeamFillKey(t *testing.T) {
	assert.Equal(t, "oneasyTeamFill_GST_20261016_AB", TeamFillKey("GST_20261016_AB"))
}
