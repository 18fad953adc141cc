package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
	"github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
	"github.com/dEnchanter/aprilwind-admin/internal/pkg/redact"
	"github.com/dEnchanter/aprilwind-admin/internal/session"
)

// Auth — вход/выход оператора и состояние сессии.
type Auth struct {
	c     *client.Client
	paths AuthPaths
}

// Login проверяет учётные данные на бэкенде и сохраняет в хранилище сессии
// пару токенов, профиль и роль.
func (a *Auth) Login(ctx context.Context, in models.LoginRequest) (models.LoginResponse, error) {
	const op = "api.Auth.Login"

	// email (маской) попадает и в записи клиента, например transport_failed.
	ctx = log.With(ctx, slog.String("email", redact.Email(in.Email)))
	lg := log.From(ctx)

	if err := models.Validate(in); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	var out models.LoginResponse
	if err := a.c.DoJSON(ctx, http.MethodPost, a.paths.Login, nil, in, &out); err != nil {
		lg.Warn("login_failed", slog.String("err", err.Error()))
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.ValidateResponse(out); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	store := a.c.Store()
	if err := store.SaveAccessToken(ctx, out.AccessToken); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := store.SaveRefreshToken(ctx, out.RefreshToken); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if out.User != nil {
		if err := store.SaveUserData(ctx, *out.User); err != nil {
			return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if out.Role != nil {
		if err := store.SaveUserRoleDetail(ctx, *out.Role); err != nil {
			return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	lg.Info("login_succeeded")

	return out, nil
}

// Logout сообщает бэкенду о выходе и очищает сессию в любом случае:
// отказ бэкенда только логируется. Ошибку возвращает только сбой хранилища.
func (a *Auth) Logout(ctx context.Context) error {
	const op = "api.Auth.Logout"

	lg := log.From(ctx)

	if err := a.c.DoJSON(ctx, http.MethodPost, a.paths.Logout, nil, nil, nil); err != nil {
		lg.Warn("logout_upstream_failed", slog.String("err", err.Error()))
	}

	if err := session.Clear(ctx, a.c.Store()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("logout_succeeded")

	return nil
}

// SessionInfo — что известно о текущей сессии без обращения к бэкенду.
type SessionInfo struct {
	Authenticated bool               `json:"authenticated"`
	User          *models.UserData   `json:"user,omitempty"`
	Role          *models.RoleDetail `json:"role,omitempty"`
	Subject       string             `json:"subject,omitempty"`
	ExpiresAt     *time.Time         `json:"expiresAt,omitempty"`
	Expired       bool               `json:"expired"`
}

// Session читает хранилище. Срок жизни берётся из claims access-токена,
// если это JWT; подпись не проверяется.
func (a *Auth) Session(ctx context.Context) (SessionInfo, error) {
	const op = "api.Auth.Session"

	store := a.c.Store()

	token, err := store.AccessToken(ctx)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	user, uerr := store.UserData(ctx)
	role, rerr := store.UserRoleDetail(ctx)
	if err := errors.Join(uerr, rerr); err != nil {
		return SessionInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	info := SessionInfo{
		Authenticated: token != "",
		User:          user,
		Role:          role,
	}

	if claims, ok := session.AccessClaims(token); ok {
		info.Subject = claims.Subject
		if !claims.ExpiresAt.IsZero() {
			exp := claims.ExpiresAt
			info.ExpiresAt = &exp
		}
		info.Expired = claims.Expired(time.Now())
	}

	return info, nil
}
