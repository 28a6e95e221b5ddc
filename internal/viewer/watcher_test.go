package viewer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShaderWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "Phong.vert")
	frag := filepath.Join(dir, "Phong.frag")
	require.NoError(t, os.WriteFile(vert, []byte("v"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("f"), 0o644))

	sw, err := WatchShaders(vert, frag)
	require.NoError(t, err)
	defer sw.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-sw.C:
		t.Fatal("unexpected reload signal for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(frag, []byte("f2"), 0o644))
	select {
	case <-sw.C:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload signal after writing the fragment shader")
	}
}

func TestShaderWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "Phong.vert")
	require.NoError(t, os.WriteFile(vert, []byte("v"), 0o644))

	sw, err := WatchShaders(vert)
	require.NoError(t, err)
	sw.Close()
	sw.Close()
}

func TestShaderWatcherMissingDir(t *testing.T) {
	_, err := WatchShaders(filepath.Join(t.TempDir(), "missing", "Phong.vert"))
	require.Error(t, err)
}
