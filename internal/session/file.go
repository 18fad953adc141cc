package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// File — хранилище в JSON-файле (0600). Состояние держится в памяти,
// каждая запись атомарно переписывает файл (tmp + rename).
type File struct {
	path string

	mu   sync.RWMutex
	data snapshot
}

// OpenFile открывает (или лениво создаёт) файл сессии.
func OpenFile(path string) (*File, error) {
	const op = "session.OpenFile"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	f := &File{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(raw) == 0 {
		return f, nil
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("%s: decode %q: %w", op, path, err)
	}

	return f, nil
}

// Path — путь к файлу сессии.
func (f *File) Path() string { return f.path }

func (f *File) update(fn func(s *snapshot)) error {
	const op = "session.File.update"

	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.data
	fn(&next)

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f.data = next
	return nil
}

func (f *File) AccessToken(context.Context) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data.AccessToken, nil
}

func (f *File) RefreshToken(context.Context) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data.RefreshToken, nil
}

func (f *File) SaveAccessToken(_ context.Context, token string) error {
	return f.update(func(s *snapshot) { s.AccessToken = token })
}

func (f *File) SaveRefreshToken(_ context.Context, token string) error {
	return f.update(func(s *snapshot) { s.RefreshToken = token })
}

func (f *File) UserData(context.Context) (*models.UserData, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.data.User == nil {
		return nil, nil
	}

	u := *f.data.User
	return &u, nil
}

func (f *File) SaveUserData(_ context.Context, u models.UserData) error {
	return f.update(func(s *snapshot) { s.User = &u })
}

func (f *File) UserRoleDetail(context.Context) (*models.RoleDetail, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.data.Role == nil {
		return nil, nil
	}

	r := *f.data.Role
	r.Permissions = append([]string(nil), f.data.Role.Permissions...)
	return &r, nil
}

func (f *File) SaveUserRoleDetail(_ context.Context, r models.RoleDetail) error {
	r.Permissions = append([]string(nil), r.Permissions...)
	return f.update(func(s *snapshot) { s.Role = &r })
}

func (f *File) ClearAccessToken(context.Context) error {
	return f.update(func(s *snapshot) { s.AccessToken = "" })
}

func (f *File) ClearRefreshToken(context.Context) error {
	return f.update(func(s *snapshot) { s.RefreshToken = "" })
}

func (f *File) ClearUserData(context.Context) error {
	return f.update(func(s *snapshot) { s.User = nil })
}

func (f *File) ClearUserRoleDetail(context.Context) error {
	return f.update(func(s *snapshot) { s.Role = nil })
}
