package credential_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terryfox-lims/limsclient/pkg/credential"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store credential.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)

	assert.ErrorIs(t, store.Save(ctx, ""), credential.ErrEmptyToken)

	require.NoError(t, store.Save(ctx, "first-token"))
	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)

	require.NoError(t, store.Save(ctx, "second-token"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second-token", token)

	require.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, credential.ErrNotFound)

	require.NoError(t, store.Delete(ctx), "deleting an empty slot is not an error")
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	exerciseStore(t, credential.NewMemoryStore(""))

	prefilled := credential.NewMemoryStore("seed")
	token, err := prefilled.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seed", token)
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	t.Run("shared behaviour", func(t *testing.T) {
		store, err := credential.NewFileStore(t.TempDir(), "token")
		require.NoError(t, err)
		exerciseStore(t, store)
	})

	t.Run("creates private directory and file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "limsclient")
		store, err := credential.NewFileStore(dir, "token")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "token"), store.Path())

		require.NoError(t, store.Save(context.Background(), "abc"))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		dirInfo, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
	})

	t.Run("whitespace-only file is empty", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "token"), []byte(" \n"), 0o600))
		store, err := credential.NewFileStore(dir, "token")
		require.NoError(t, err)
		_, err = store.Load(context.Background())
		assert.ErrorIs(t, err, credential.ErrNotFound)
	})

	t.Run("rejects path-like keys", func(t *testing.T) {
		_, err := credential.NewFileStore(t.TempDir(), "../token")
		assert.ErrorIs(t, err, credential.ErrInvalidKey)
		_, err = credential.NewFileStore(t.TempDir(), " ")
		assert.ErrorIs(t, err, credential.ErrInvalidKey)
	})
}

func TestEncryptedStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("shared behaviour", func(t *testing.T) {
		store, err := credential.NewEncryptedStore(credential.NewMemoryStore(""), []byte("s3cret"), "token")
		require.NoError(t, err)
		exerciseStore(t, store)
	})

	t.Run("token is not stored in clear", func(t *testing.T) {
		inner := credential.NewMemoryStore("")
		store, err := credential.NewEncryptedStore(inner, []byte("s3cret"), "token")
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, "plain-token"))
		raw, err := inner.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, raw, "plain-token")
	})

	t.Run("wrong secret reports corruption", func(t *testing.T) {
		inner := credential.NewMemoryStore("")
		writer, err := credential.NewEncryptedStore(inner, []byte("one"), "token")
		require.NoError(t, err)
		require.NoError(t, writer.Save(ctx, "plain-token"))

		reader, err := credential.NewEncryptedStore(inner, []byte("two"), "token")
		require.NoError(t, err)
		_, err = reader.Load(ctx)
		assert.ErrorIs(t, err, credential.ErrCorrupted)
	})

	t.Run("garbage reports corruption", func(t *testing.T) {
		store, err := credential.NewEncryptedStore(credential.NewMemoryStore("not base64!"), []byte("s3cret"), "token")
		require.NoError(t, err)
		_, err = store.Load(ctx)
		assert.ErrorIs(t, err, credential.ErrCorrupted)
	})

	t.Run("requires a secret", func(t *testing.T) {
		_, err := credential.NewEncryptedStore(credential.NewMemoryStore(""), nil, "token")
		assert.ErrorIs(t, err, credential.ErrInvalidKey)
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("file backend", func(t *testing.T) {
		cfg := credential.DefaultConfig()
		cfg.Dir = t.TempDir()
		store, closeFn, err := credential.Open(ctx, cfg)
		require.NoError(t, err)
		defer func() { assert.NoError(t, closeFn()) }()
		assert.IsType(t, &credential.FileStore{}, store)
	})

	t.Run("memory backend with encryption", func(t *testing.T) {
		cfg := credential.DefaultConfig()
		cfg.Backend = credential.BackendMemory
		cfg.EncryptionSecret = "s3cret"
		store, _, err := credential.Open(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &credential.EncryptedStore{}, store)
		exerciseStore(t, store)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := credential.DefaultConfig()
		cfg.Backend = "keychain"
		_, closeFn, err := credential.Open(ctx, cfg)
		assert.ErrorIs(t, err, credential.ErrUnknownBackend)
		assert.NotNil(t, closeFn)
	})

	t.Run("invalid redis url", func(t *testing.T) {
		cfg := credential.DefaultConfig()
		cfg.Backend = credential.BackendRedis
		cfg.RedisURL = "not-a-url://"
		_, _, err := credential.Open(ctx, cfg)
		assert.ErrorIs(t, err, credential.ErrInvalidRedisURL)
	})
}
