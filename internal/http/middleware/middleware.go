package middleware

import (
	"net/http"
)

// Middleware — стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain оборачивает h так, что первый мидлвар в списке выполняется первым.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

// recorder запоминает статус и объём ответа для журнала запросов.
// Заголовки читаются у обёрнутого ResponseWriter уже после обработчика.
type recorder struct {
	http.ResponseWriter
	status  int
	written int
}

func wrap(w http.ResponseWriter) *recorder {
	if rec, ok := w.(*recorder); ok {
		return rec
	}

	return &recorder{ResponseWriter: w}
}

func (w *recorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

// Unwrap нужен http.ResponseController (Flush, дедлайны записи).
func (w *recorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Status возвращает записанный статус; обработчик, не писавший ничего, даёт 200.
func (w *recorder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}
