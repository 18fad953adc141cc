// Модели REST-бэкенда, которые потребляет админ-шлюз.
package models

// UserData — профиль оператора, вошедшего в систему.
type UserData struct {
	ID       string `json:"id" validate:"required"`
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
}

// RoleDetail — роль оператора и её права; бэкенд решает, что они значат.
type RoleDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string      `json:"accessToken" validate:"required"`
	RefreshToken string      `json:"refreshToken" validate:"required"`
	User         *UserData   `json:"user,omitempty" validate:"omitempty"`
	Role         *RoleDetail `json:"role,omitempty" validate:"omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse — ответ auth/refresh; refreshToken выдаётся не всегда.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
