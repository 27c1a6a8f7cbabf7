package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFilename(t *testing.T) {
	name := normalizeFilename("reader 12 (backup).json")
	assert.True(t, strings.HasPrefix(name, "reader_12_backup_"), name)
	assert.Equal(t, ".json", filepath.Ext(name))

	assert.NotEqual(t, normalizeFilename("a.json"), normalizeFilename("a.json"))
	assert.True(t, strings.HasPrefix(normalizeFilename("!!!.json"), "file_"))
}

func TestLocalStorageSaveFile(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(filepath.Join(dir, "backups"))

	path, err := ls.SaveFile([]byte(`{"page":1}`), "reader-1.json")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1}`, string(data))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/json", getContentType("x.JSON"))
	assert.Equal(t, "application/gzip", getContentType("reader_1_state.gz"))
	assert.Equal(t, "application/octet-stream", getContentType("x.bin"))
}
