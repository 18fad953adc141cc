// session — хранилище токенов и данных оператора, переживающее рестарт шлюза.
//
// Все реализации безопасны для конкурентного использования. Отсутствующее
// значение — это пустая строка (или nil для профиля/роли) без ошибки;
// ошибка означает сбой самого хранилища.
package session

//go:generate mockgen -source=session.go -destination=mocks/store.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Store — контракт хранилища сессии.
type Store interface {
	// AccessToken возвращает текущий access-токен или "".
	AccessToken(ctx context.Context) (string, error)
	// RefreshToken возвращает refresh-токен или "".
	RefreshToken(ctx context.Context) (string, error)
	SaveAccessToken(ctx context.Context, token string) error
	SaveRefreshToken(ctx context.Context, token string) error

	UserData(ctx context.Context) (*models.UserData, error)
	SaveUserData(ctx context.Context, u models.UserData) error
	UserRoleDetail(ctx context.Context) (*models.RoleDetail, error)
	SaveUserRoleDetail(ctx context.Context, r models.RoleDetail) error

	// Clear* — идемпотентные удаления.
	ClearAccessToken(ctx context.Context) error
	ClearRefreshToken(ctx context.Context) error
	ClearUserData(ctx context.Context) error
	ClearUserRoleDetail(ctx context.Context) error
}

// Clear инвалидирует сессию целиком: вызывает все Clear* даже если часть упала.
func Clear(ctx context.Context, s Store) error {
	const op = "session.Clear"

	err := errors.Join(
		s.ClearAccessToken(ctx),
		s.ClearRefreshToken(ctx),
		s.ClearUserData(ctx),
		s.ClearUserRoleDetail(ctx),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// snapshot — сериализуемое состояние сессии (file/memory).
type snapshot struct {
	AccessToken  string             `json:"access_token,omitempty"`
	RefreshToken string             `json:"refresh_token,omitempty"`
	User         *models.UserData   `json:"user,omitempty"`
	Role         *models.RoleDetail `json:"role,omitempty"`
}
