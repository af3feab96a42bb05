// SPDX-License-Identifier: MIT
package kv

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/palettekitty/internal/db"
)

// substrateContract runs the behaviour every substrate must share
func substrateContract(t *testing.T, s Substrate) {
	t.Helper()

	t.Run("absent key", func(t *testing.T) {
		v, ok, err := s.Read("missing")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, v)
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, s.Write("palettes", `[{"name":"a"}]`))
		v, ok, err := s.Read("palettes")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `[{"name":"a"}]`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Write("palettes", "[]"))
		v, ok, err := s.Read("palettes")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "[]", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, s.Write("blank", ""))
		_, ok, err := s.Read("blank")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, s.Remove("palettes"))
		require.NoError(t, s.Remove("palettes"))
		_, ok, err := s.Read("palettes")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("keys with separators", func(t *testing.T) {
		require.NoError(t, s.Write("user/one:palettes", "x"))
		v, ok, err := s.Read("user/one:palettes")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "x", v)
	})
}

func TestMemoryContract(t *testing.T) {
	substrateContract(t, NewMemory(0))
}

func TestSQLStoreContract(t *testing.T) {
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(conn) })

	substrateContract(t, NewSQLStore(conn))
}

func TestFileStoreContract(t *testing.T) {
	store, err := NewFileStore(afero.NewMemMapFs(), "/data", 0)
	require.NoError(t, err)

	substrateContract(t, store)
}

func TestFileStoreOnDisk(t *testing.T) {
	store, err := NewFileStore(afero.NewOsFs(), t.TempDir(), 0)
	require.NoError(t, err)

	substrateContract(t, store)
}

func TestMemoryQuota(t *testing.T) {
	m := NewMemory(20)

	require.NoError(t, m.Write("k", "0123456789"))
	require.ErrorIs(t, m.Write("other", "0123456789"), ErrQuotaExceeded)

	// replacing an existing value only counts the new size
	require.NoError(t, m.Write("k", "0123456789abcdef"))
	require.Equal(t, 17, m.Used())
}

func TestFileStoreQuota(t *testing.T) {
	store, err := NewFileStore(afero.NewMemMapFs(), "/data", 10)
	require.NoError(t, err)

	require.NoError(t, store.Write("a", "12345"))
	require.NoError(t, store.Write("a", "1234567890"))
	require.ErrorIs(t, store.Write("b", "1"), ErrQuotaExceeded)

	v, ok, err := store.Read("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1234567890", v)
}

func TestFileStoreIgnoresForeignFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStore(fs, "/data", 0)
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/data/README.txt", []byte("hello"), 0644))
	require.Equal(t, "", keyFromPath("/data/README.txt"))
	require.Equal(t, "", keyFromPath("/data/.palettes.kv.tmp"))
	require.Equal(t, "a/b", keyFromPath(store.path("a/b")))
}

func TestFileStoreWatchNeedsOSFilesystem(t *testing.T) {
	store, err := NewFileStore(afero.NewMemMapFs(), "/data", 0)
	require.NoError(t, err)

	require.Error(t, store.Watch(t.Context(), func(string) {}))
}

func TestUnavailable(t *testing.T) {
	var s Substrate = Unavailable{}

	_, ok, err := s.Read("palettes")
	require.NoError(t, err)
	require.False(t, ok)
	require.ErrorIs(t, s.Write("palettes", "[]"), ErrUnavailable)
	require.NoError(t, s.Remove("palettes"))
}

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		o, err := Open(Options{Driver: "memory"})
		require.NoError(t, err)
		require.IsType(t, &Memory{}, o.Substrate)
		require.NoError(t, o.Close())
	})

	t.Run("none", func(t *testing.T) {
		o, err := Open(Options{Driver: "none"})
		require.NoError(t, err)
		require.IsType(t, Unavailable{}, o.Substrate)
	})

	t.Run("file", func(t *testing.T) {
		o, err := Open(Options{Driver: "file", Path: t.TempDir()})
		require.NoError(t, err)
		require.IsType(t, &FileStore{}, o.Substrate)
	})

	t.Run("sqlite", func(t *testing.T) {
		o, err := Open(Options{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "c.db")})
		require.NoError(t, err)
		require.IsType(t, &SQLStore{}, o.Substrate)
		require.NoError(t, o.Close())
	})

	t.Run("s3 needs a bucket", func(t *testing.T) {
		_, err := Open(Options{Driver: "s3"})
		require.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(Options{Driver: "floppy"})
		require.Error(t, err)
	})
}
