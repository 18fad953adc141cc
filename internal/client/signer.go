package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
	"github.com/dEnchanter/aprilwind-admin/internal/session"
)

// Signer подписывает исходящие запросы текущим access-токеном.
// Отсутствие токена не ошибка: запрос уходит без Authorization,
// отклонять его вправе бэкенд.
type Signer struct {
	store session.Store
}

func NewSigner(store session.Store) *Signer {
	return &Signer{store: store}
}

// Sign выставляет Authorization: Bearer <token> и возвращает применённый токен
// ("" — запрос ушёл без авторизации). Сбой хранилища логируется и трактуется
// как отсутствие токена.
func (s *Signer) Sign(ctx context.Context, req *http.Request) string {
	const op = "client.Signer.Sign"

	token, err := s.store.AccessToken(ctx)
	if err != nil {
		log.From(ctx).Warn("access_token_read_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		token = ""
	}

	setBearer(req, token)
	return token
}

func setBearer(req *http.Request, token string) {
	if token == "" {
		req.Header.Del("Authorization")
		return
	}

	req.Header.Set("Authorization", "Bearer "+token)
}
