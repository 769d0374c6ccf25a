package db

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maanvikp20/promosite/internal/models"
)

func TestFileBackend_LoadMissingIsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "missing.json"))

	records, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFileBackend_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "1",`), 0o644))

	_, err := NewFileBackend(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileBackend_LoadBlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	records, err := NewFileBackend(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileBackend_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "students.json")
	b := NewFileBackend(path)
	ctx := context.Background()

	in := []models.Record{
		{"id": "1", "firstName": "A", "lastName": "B", "year": 2},
		{"id": "2", "firstName": "C", "lastName": "D", "year": 3, "nickname": "cd"},
	}
	require.NoError(t, b.Save(ctx, in))

	out, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID())
	assert.Equal(t, "2", out[1].ID())
	assert.Equal(t, json.Number("3"), out[1]["year"])
	assert.Equal(t, "cd", out[1]["nickname"])
}

func TestFileBackend_SaveIsPrettyPrintedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	b := NewFileBackend(path)

	require.NoError(t, b.Save(context.Background(), []models.Record{{"id": "1"}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {\n    \"id\": \"1\""), string(raw))
}

func TestFileBackend_SaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, NewFileBackend(path).Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestFileBackend_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(filepath.Join(dir, "students.json"))
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Save(context.Background(), []models.Record{{"id": i}}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "students.json", entries[0].Name())
}
