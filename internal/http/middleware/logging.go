package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dEnchanter/aprilwind-admin/internal/client/interceptors"
	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	logctx "github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
)

// Logging кладёт в контекст логгер с request_id и пишет одну запись "http"
// на запрос. Ответы с навигацией (истёкшая сессия, запрет) несут атрибут
// redirect; 5xx пишутся уровнем Warn.
func Logging(l *slog.Logger) Middleware {
	if l == nil {
		l = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLog := l
			if rid := r.Header.Get(interceptors.HeaderRequestID); rid != "" {
				reqLog = l.With(slog.String("request_id", rid))
			}
			ctx := logctx.Into(r.Context(), reqLog)

			rec := wrap(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.Status()
			attrs := make([]slog.Attr, 0, 6)
			attrs = append(attrs,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", rec.written),
				slog.Duration("dur", time.Since(start)),
			)
			if to := rec.Header().Get(apierrors.HeaderRedirect); to != "" {
				attrs = append(attrs, slog.String("redirect", to))
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			reqLog.LogAttrs(ctx, level, "http", attrs...)
		})
	}
}
