// interceptors предоставляет набор http.RoundTripper-перехватчиков для
// исходящих вызовов бэкенда.
package interceptors

import "net/http"

// RoundTripperFunc — адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Interceptor оборачивает транспорт.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// Chain применяет перехватчики к base в порядке перечисления:
// первый оказывается внешним. При base == nil берётся http.DefaultTransport.
func Chain(base http.RoundTripper, ics ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	rt := base
	for i := len(ics) - 1; i >= 0; i-- {
		rt = ics[i](rt)
	}

	return rt
}
