package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLitePath(t *testing.T) {
	cases := map[string]string{
		"journal.db":                          "journal.db",
		"data/journal.db":                     "data/journal.db",
		"file:data/journal.db?_pragma=foo(1)": "data/journal.db",
		":memory:":                            "",
		"file::memory:?cache=shared":          "",
		"":                                    "",
	}
	for dsn, want := range cases {
		require.Equal(t, want, SQLitePath(dsn), dsn)
	}
}

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "data", "nested")

	require.NoError(t, EnsureParentDir(filepath.Join(want, "journal.db")))

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "journal.db")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("journal.db"))
}

func TestEnsureParentDir_ErrorWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "sub", "journal.db"))
	require.Error(t, err)
}
