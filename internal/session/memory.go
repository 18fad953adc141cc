package session

import (
	"context"
	"sync"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Memory — хранилище в памяти процесса. Подходит для тестов и env=local.
type Memory struct {
	mu   sync.RWMutex
	data snapshot
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) AccessToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.AccessToken, nil
}

func (m *Memory) RefreshToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.RefreshToken, nil
}

func (m *Memory) SaveAccessToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.AccessToken = token
	return nil
}

func (m *Memory) SaveRefreshToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.RefreshToken = token
	return nil
}

func (m *Memory) UserData(context.Context) (*models.UserData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data.User == nil {
		return nil, nil
	}

	u := *m.data.User
	return &u, nil
}

func (m *Memory) SaveUserData(_ context.Context, u models.UserData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.User = &u
	return nil
}

func (m *Memory) UserRoleDetail(context.Context) (*models.RoleDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data.Role == nil {
		return nil, nil
	}

	r := *m.data.Role
	r.Permissions = append([]string(nil), m.data.Role.Permissions...)
	return &r, nil
}

func (m *Memory) SaveUserRoleDetail(_ context.Context, r models.RoleDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.Permissions = append([]string(nil), r.Permissions...)
	m.data.Role = &r
	return nil
}

func (m *Memory) ClearAccessToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.AccessToken = ""
	return nil
}

func (m *Memory) ClearRefreshToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.RefreshToken = ""
	return nil
}

func (m *Memory) ClearUserData(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.User = nil
	return nil
}

func (m *Memory) ClearUserRoleDetail(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Role = nil
	return nil
}
