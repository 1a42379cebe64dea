package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Theme modes persisted alongside the credential
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Profile is the logged-in user as remembered between invocations.
type Profile struct {
	UsuarioID int    `json:"usuario_id"`
	Nome      string `json:"nome"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

// CredentialStore is the ambient storage the API client reads the bearer
// token from. Injected so tests can substitute a fake.
type CredentialStore interface {
	Token() string
	SetToken(token string) error
	Profile() *Profile
	SetProfile(p *Profile) error
	ThemeMode() string
	SetThemeMode(mode string) error
	Clear() error
}

type state struct {
	Token   string   `json:"token,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
	Theme   string   `json:"theme,omitempty"`
}

// FileStore persists the session as a JSON file under dir.
type FileStore struct {
	mu   sync.Mutex
	path string
	st   state
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	fs := &FileStore{path: filepath.Join(dir, "session.json")}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}
	if err := json.Unmarshal(data, &f.st); err != nil {
		// Corrupt session files are discarded, same as a logged-out state.
		f.st = state{}
	}
	return nil
}

func (f *FileStore) save() error {
	data, err := json.MarshalIndent(f.st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Token
}

func (f *FileStore) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.Token = token
	return f.save()
}

func (f *FileStore) Profile() *Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.Profile
}

func (f *FileStore) SetProfile(p *Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.Profile = p
	return f.save()
}

func (f *FileStore) ThemeMode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.st.Theme == "" {
		return ThemeLight
	}
	return f.st.Theme
}

func (f *FileStore) SetThemeMode(mode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.Theme = mode
	return f.save()
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st = state{Theme: f.st.Theme}
	return f.save()
}

// ToggleTheme flips between light and dark and persists the result.
func ToggleTheme(store CredentialStore) (string, error) {
	mode := ThemeDark
	if store.ThemeMode() == ThemeDark {
		mode = ThemeLight
	}
	return mode, store.SetThemeMode(mode)
}

// MemoryStore is an in-memory CredentialStore for tests.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	profile *Profile
	theme   string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Profile() *Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

func (m *MemoryStore) SetProfile(p *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	return nil
}

func (m *MemoryStore) ThemeMode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == "" {
		return ThemeLight
	}
	return m.theme
}

func (m *MemoryStore) SetThemeMode(mode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = mode
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.profile = nil
	return nil
}
