package middleware

import "net/http"

// NoStore запрещает кэширование ответов: через шлюз идут данные сессии
// и персональные записи сотрудников и клиентов.
func NoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}
