package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
)

// ErrServiceTimeout — причина отмены контекста, когда запрос шлюза
// не уложился в бюджет сервиса.
var ErrServiceTimeout = errors.New("service timeout")

// Timeout ограничивает обработку запроса бюджетом d. Бюджет охватывает и
// ожидание чужого обновления токена, и повтор запроса. Уже заданный дедлайн
// не переопределяется; d<=0 отключает мидлвар.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeoutCause(r.Context(), d, ErrServiceTimeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))

			if errors.Is(context.Cause(ctx), ErrServiceTimeout) {
				logctx.From(ctx).Warn("service_timeout",
					slog.String("path", r.URL.Path),
					slog.Duration("budget", d),
				)
			}
		})
	}
}
