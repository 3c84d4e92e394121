package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileTokenStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		stateDir := filepath.Join(tmpDir, "state")

		store, err := NewFileTokenStore(stateDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(stateDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})
}

func TestFileTokenStore_SaveLoad(t *testing.T) {
	t.Run("round trips the token", func(t *testing.T) {
		store, err := NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("tok-1"))

		token, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	})

	t.Run("token file is owner-readable only", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewFileTokenStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Save("tok-1"))

		info, err := os.Stat(filepath.Join(tmpDir, tokenFileName))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("save replaces the previous token", func(t *testing.T) {
		store, err := NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("tok-1"))
		require.NoError(t, store.Save("tok-2"))

		token, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "tok-2", token)
	})

	t.Run("load without a token returns ErrTokenNotFound", func(t *testing.T) {
		store, err := NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("an empty token file means logged out", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewFileTokenStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, tokenFileName), []byte("\n"), 0600))

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})
}

func TestFileTokenStore_Clear(t *testing.T) {
	t.Run("removes the token", func(t *testing.T) {
		store, err := NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Save("tok-1"))
		require.NoError(t, store.Clear())

		_, err = store.Load()
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("clearing an empty store is not an error", func(t *testing.T) {
		store, err := NewFileTokenStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())
	})
}
