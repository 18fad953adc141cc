package interceptors

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
	"github.com/dEnchanter/aprilwind-admin/internal/pkg/redact"
	"github.com/google/uuid"
)

// WithLogging — логирование исходящих вызовов бэкенда.
// Поведение:
//   - берёт X-Request-Id из заголовка (или генерирует UUID и выставляет его);
//   - добавляет поля request_id/method/path, прокладывает обогащённый логгер в контекст (pkg/log);
//   - пишет одну финальную запись: msg="http_client", status (или err), dur.
//     Уровень Info, для 5xx и ошибок транспорта — Warn.
//
// Безопасность: тела не логируются, Authorization попадает в запись
// только маской (auth="Bearer [REDACTED_TOKEN]" или "[NO_TOKEN]").
func WithLogging(base *slog.Logger) Interceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
				r = r.Clone(r.Context())
				r.Header.Set(HeaderRequestID, rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("auth", redact.Bearer(r.Header.Get("Authorization"))),
			)
			r = r.WithContext(log.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("http_client",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			lvl := slog.LevelInfo
			if resp.StatusCode >= http.StatusInternalServerError {
				lvl = slog.LevelWarn
			}

			l.Log(r.Context(), lvl, "http_client",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
