package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amadeus-cli/internal/features/auth/domain"
)

func TestLoad_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "token.json"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token, "a corrupt cache reads as no cache")
}

func TestLoad_EmptyAccessToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":""}`), 0o600))

	store := NewStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "token.json")
	store := NewStore(path)

	saved := domain.CachedToken{
		AccessToken: "abc123",
		TokenType:   "Bearer",
		ExpiresIn:   1799,
		ExpiresAt:   time.Now().Add(30 * time.Minute).Unix(),
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}

func TestSave_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewStore(path)

	require.NoError(t, store.Save(domain.CachedToken{AccessToken: "abc123"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
