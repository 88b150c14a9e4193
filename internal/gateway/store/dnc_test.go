package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/store"
)

func writeDNCFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dnc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDNCList_LoadsFromFile(t *testing.T) {
	path := writeDNCFile(t, "+919876543210\n# comment line\n\n+91 98765 43211\n")

	l, err := store.NewDNCList(path)
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains("+919876543210"))
	assert.True(t, l.Contains("+91-98765-43211"))
	assert.False(t, l.Contains("+919999999999"))
}

func TestDNCList_EmptyPath(t *testing.T) {
	l, err := store.NewDNCList("")
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Contains("+919876543210"))
}

func TestDNCList_Add(t *testing.T) {
	l, err := store.NewDNCList("")
	require.NoError(t, err)
	defer l.Close()

	l.Add("+91 98765 43210")
	assert.True(t, l.Contains("+919876543210"))
}

func TestDNCList_ReloadsOnFileChange(t *testing.T) {
	path := writeDNCFile(t, "+919876543210\n")

	l, err := store.NewDNCList(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, os.WriteFile(path, []byte("+919876543210\n+919999999999\n"), 0o644))

	assert.Eventually(t, func() bool {
		return l.Contains("+919999999999")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919876543210", store.NormalizePhone(" +91 (98765) 432-10 "))
	assert.Equal(t, "+919876543210", store.NormalizePhone("+91.98765.43210"))
}
