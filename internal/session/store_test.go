package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SetToken("tok-abc"))
	require.NoError(t, store.SetProfile(&Profile{
		UsuarioID: 3,
		Nome:      "joao",
		Role:      RolePorteiro,
	}))
	require.NoError(t, store.SetThemeMode(ThemeDark))

	// A fresh store over the same dir sees the persisted state.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", reopened.Token())
	require.NotNil(t, reopened.Profile())
	assert.Equal(t, "joao", reopened.Profile().Nome)
	assert.Equal(t, RolePorteiro, reopened.Profile().Role)
	assert.Equal(t, ThemeDark, reopened.ThemeMode())
}

func TestFileStoreDefaults(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.Token())
	assert.Nil(t, store.Profile())
	assert.Equal(t, ThemeLight, store.ThemeMode())
}

func TestFileStoreCorruptFileIsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Empty(t, store.Token())
	assert.Nil(t, store.Profile())
}

func TestClearPreservesTheme(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SetToken("tok"))
	require.NoError(t, store.SetProfile(&Profile{UsuarioID: 1, Nome: "ana"}))
	require.NoError(t, store.SetThemeMode(ThemeDark))

	require.NoError(t, store.Clear())

	assert.Empty(t, store.Token())
	assert.Nil(t, store.Profile())
	assert.Equal(t, ThemeDark, store.ThemeMode(), "logout must not reset the theme")

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, reopened.ThemeMode())
}

func TestSessionFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("tok"))

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestToggleTheme(t *testing.T) {
	store := NewMemoryStore()

	mode, err := ToggleTheme(store)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, mode)
	assert.Equal(t, ThemeDark, store.ThemeMode())

	mode, err = ToggleTheme(store)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, mode)
}
