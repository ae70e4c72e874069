package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipThrough(t *testing.T) {
	files := []string{"a.json", "b.json", "c.json", "d.json"}

	assert.Equal(t, []string{"c.json", "d.json"}, skipThrough(files, "b.json"))
	assert.Equal(t, []string{}, skipThrough(files, "d.json"))
	assert.Equal(t, files, skipThrough(files, "not-present.json"))
}

func TestEnumerateFilesLocalGlobIsSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.json", "a.json", "b.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	files, err := enumerateFiles(context.Background(), dir, "*.json")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.True(t, files[0] < files[1])
	assert.True(t, files[1] < files[2])
}

func TestEnumerateFilesSingleURLSources(t *testing.T) {
	files, err := enumerateFiles(context.Background(), "https://example.com/schema.json", "*")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/schema.json"}, files)
}
