package locations

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileRepository_LoadMissingFile(t *testing.T) {
	repo := NewJSONFileRepository(filepath.Join(t.TempDir(), "database.json"))

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Empty(t, snap.Locations)
	assert.Nil(t, snap.LastUpdated)
}

func TestJSONFileRepository_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	repo := NewJSONFileRepository(path)
	ctx := context.Background()

	ts := "2024-01-01T00:00:00Z"
	snap := &Snapshot{
		Locations: []Record{
			{"id": "loc_3f9a21c0", "name": "Paris", "lastUpdated": "2024-01-01T00:00:00Z"},
		},
		LastUpdated: &ts,
	}
	require.NoError(t, repo.Save(ctx, snap))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Locations, 1)
	assert.Equal(t, "loc_3f9a21c0", loaded.Locations[0].ID())
	assert.Equal(t, "Paris", loaded.Locations[0]["name"])
	require.NotNil(t, loaded.LastUpdated)
	assert.Equal(t, ts, *loaded.LastUpdated)
}

func TestJSONFileRepository_WritesPrettyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	repo := NewJSONFileRepository(path)

	ts := "2024-01-01T00:00:00Z"
	err := repo.Save(context.Background(), &Snapshot{
		Locations:   []Record{{"id": "loc_00000001", "name": "Oslo"}},
		LastUpdated: &ts,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n  "), "snapshot should be indented:\n%s", data)
	assert.Contains(t, string(data), `"locations"`)
	assert.Contains(t, string(data), `"lastUpdated"`)
}

func TestJSONFileRepository_UntouchedStoreMarshalsNullTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	repo := NewJSONFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), &Snapshot{Locations: []Record{}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lastUpdated": null`)
}

func TestJSONFileRepository_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONFileRepository(path).Load(context.Background())
	assert.Error(t, err)
}

func TestJSONFileRepository_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")
	repo := NewJSONFileRepository(path)

	require.NoError(t, repo.Save(context.Background(), &Snapshot{Locations: []Record{}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "database.json", entries[0].Name())
}
