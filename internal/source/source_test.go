package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "syslog", "line1\nline2\n")

	f, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "syslog", f.Name())
	require.Equal(t, path, f.Path())
	require.Equal(t, "line1\nline2\n", f.Text())
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "empty.log", "")

	f, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "", f.Text())
}

func TestLoadStripANSI(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "color.log", "\x1b[31mERROR\x1b[0m boom\n")

	f, err := Load(context.Background(), path, WithStripANSI(true))
	require.NoError(t, err)
	require.Equal(t, "ERROR boom\n", f.Text())

	f, err = Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "\x1b[31mERROR\x1b[0m boom\n", f.Text())
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open file")
}

func TestLoadCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, writeFile(t, "a.log", "a\n"))
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	t.Parallel()
	f, err := Read(context.Background(), "stdin", strings.NewReader("a\nb\n"))
	require.NoError(t, err)
	require.Equal(t, "stdin", f.Name())
	require.Equal(t, StdinName, f.Path())
	require.Equal(t, "a\nb\n", f.Text())
}
