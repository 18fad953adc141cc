package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	logctx "github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
)

// Recover превращает панику обработчика в 500/internal. Причина и стек
// остаются в логе, клиент получает только стандартный конверт ошибки.
// http.ErrAbortHandler пробрасывается дальше: им net/http обрывает ответ.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				)
				apierrors.WriteError(w, r, apierrors.ErrInternal)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
