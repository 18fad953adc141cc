package interceptors

import (
	"net/http"
)

type CtxKey string

const CtxRequestID CtxKey = "request_id"

// HeaderRequestID — заголовок корреляции с бэкендом.
const HeaderRequestID = "X-Request-Id"

// WithMetadata добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте и ещё не выставлен),
//   - User-Agent (если передан параметром).
//
// Исходный запрос не модифицируется: заголовки ставятся на клон.
func WithMetadata(userAgent string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			var rid string
			if v := r.Context().Value(CtxRequestID); v != nil {
				rid, _ = v.(string)
			}

			needRID := rid != "" && r.Header.Get(HeaderRequestID) == ""
			if !needRID && userAgent == "" {
				return next.RoundTrip(r)
			}

			out := r.Clone(r.Context())
			if needRID {
				out.Header.Set(HeaderRequestID, rid)
			}
			if userAgent != "" {
				out.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(out)
		})
	}
}
