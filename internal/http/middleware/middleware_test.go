package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/client/interceptors"
	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	logctx "github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
)

// entry — одна перехваченная запись лога вместе с атрибутами из Logger.With.
type entry struct {
	msg   string
	level slog.Level
	attrs map[string]any
}

// sink — slog.Handler без I/O, собирающий записи для проверок.
type sink struct {
	mu      *sync.Mutex
	base    []slog.Attr
	entries *[]entry
}

func newSink() *sink {
	return &sink{mu: new(sync.Mutex), entries: new([]entry)}
}

func (s *sink) Enabled(context.Context, slog.Level) bool { return true }

func (s *sink) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(s.base)+r.NumAttrs())
	for _, a := range s.base {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	s.mu.Lock()
	*s.entries = append(*s.entries, entry{msg: r.Message, level: r.Level, attrs: attrs})
	s.mu.Unlock()
	return nil
}

func (s *sink) WithAttrs(attrs []slog.Attr) slog.Handler {
	base := append(append([]slog.Attr{}, s.base...), attrs...)
	return &sink{mu: s.mu, base: base, entries: s.entries}
}

func (s *sink) WithGroup(string) slog.Handler { return s }

func (s *sink) only(t *testing.T, msg string) entry {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	var found []entry
	for _, e := range *s.entries {
		if e.msg == msg {
			found = append(found, e)
		}
	}
	require.Len(t, found, 1, "want exactly one %q record", msg)
	return found[0]
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChain_FirstListedRunsFirst(t *testing.T) {
	var trace []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trace = append(trace, name+">")
				next.ServeHTTP(w, r)
				trace = append(trace, "<"+name)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		trace = append(trace, "handler")
		w.WriteHeader(http.StatusAccepted)
	}), tag("outer"), tag("inner"))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/staff", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, []string{"outer>", "inner>", "handler", "<inner", "<outer"}, trace)
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "kept from caller", incoming: "ui-trace-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inHeader, inCtx string
			h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				inHeader = r.Header.Get(interceptors.HeaderRequestID)
				inCtx, _ = r.Context().Value(interceptors.CtxRequestID).(string)
			}), RequestID())

			req := httptest.NewRequest(http.MethodGet, "/customers", nil)
			if tt.incoming != "" {
				req.Header.Set(interceptors.HeaderRequestID, tt.incoming)
			}
			rec := serve(h, req)

			id := rec.Header().Get(interceptors.HeaderRequestID)
			if tt.incoming == "" {
				_, err := uuid.Parse(id)
				require.NoError(t, err)
			} else {
				require.Equal(t, tt.incoming, id)
			}
			require.Equal(t, id, inHeader)
			require.Equal(t, id, inCtx)
		})
	}
}

func TestLogging_OneRecordPerRequest(t *testing.T) {
	s := newSink()

	var ctxLogged bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logctx.From(r.Context()).Info("handler_ran")
		ctxLogged = true
		_, _ = w.Write([]byte(`{"data":[]}`))
	}), RequestID(), Logging(slog.New(s)))

	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	req.Header.Set(interceptors.HeaderRequestID, "rid-9")
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ctxLogged)

	e := s.only(t, "http")
	require.Equal(t, slog.LevelInfo, e.level)
	require.Equal(t, "rid-9", e.attrs["request_id"])
	require.Equal(t, http.MethodGet, e.attrs["method"])
	require.Equal(t, "/materials", e.attrs["path"])
	require.EqualValues(t, http.StatusOK, e.attrs["status"])
	require.EqualValues(t, len(`{"data":[]}`), e.attrs["bytes"])
	require.Contains(t, e.attrs, "dur")
	require.NotContains(t, e.attrs, "redirect")

	// Логгер обработчика уже несёт request_id.
	require.Equal(t, "rid-9", s.only(t, "handler_ran").attrs["request_id"])
}

func TestLogging_NavigationAndUpstreamFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		level    slog.Level
		redirect string
	}{
		{
			name:     "session expired",
			err:      &client.NavigationError{Outcome: client.OutcomeAuthExpired, Target: "/sign-in"},
			status:   http.StatusUnauthorized,
			level:    slog.LevelInfo,
			redirect: "/sign-in",
		},
		{
			name:     "forbidden",
			err:      &client.NavigationError{Outcome: client.OutcomeForbidden, Target: "/unauthorized"},
			status:   http.StatusForbidden,
			level:    slog.LevelInfo,
			redirect: "/unauthorized",
		},
		{
			name:   "backend down",
			err:    &client.APIError{Status: http.StatusServiceUnavailable, Message: "Something went wrong"},
			status: http.StatusBadGateway,
			level:  slog.LevelWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSink()
			h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				apierrors.WriteError(w, r, tt.err)
			}), Logging(slog.New(s)))

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
			require.Equal(t, tt.status, rec.Code)

			e := s.only(t, "http")
			require.Equal(t, tt.level, e.level)
			require.EqualValues(t, tt.status, e.attrs["status"])
			if tt.redirect == "" {
				require.NotContains(t, e.attrs, "redirect")
			} else {
				require.Equal(t, tt.redirect, e.attrs["redirect"])
			}
		})
	}
}

func TestRecover_PanicBecomesInternal(t *testing.T) {
	s := newSink()
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil stage")
	}), Recover())

	req := httptest.NewRequest(http.MethodPost, "/productions/p-1/stage", nil)
	req.Header.Set(interceptors.HeaderRequestID, "rid-p")
	req = req.WithContext(logctx.Into(req.Context(), slog.New(s)))
	rec := serve(h, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var env apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.Equal(t, "rid-p", env.Error.RequestID)
	require.NotContains(t, rec.Body.String(), "nil stage")

	e := s.only(t, "panic")
	require.Equal(t, slog.LevelError, e.level)
	require.Equal(t, "nil stage", e.attrs["reason"])
	require.NotEmpty(t, e.attrs["stack"])
}

func TestRecover_AbortHandlerIsRethrown(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}), Recover())

	require.PanicsWithError(t, http.ErrAbortHandler.Error(), func() {
		serve(h, httptest.NewRequest(http.MethodGet, "/staff", nil))
	})
}

func TestTimeout(t *testing.T) {
	t.Run("sets budget", func(t *testing.T) {
		var left time.Duration
		h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			dl, ok := r.Context().Deadline()
			require.True(t, ok)
			left = time.Until(dl)
		}), Timeout(time.Second))

		serve(h, httptest.NewRequest(http.MethodGet, "/staff", nil))
		require.Greater(t, left, time.Duration(0))
		require.LessOrEqual(t, left, time.Second)
	})

	t.Run("keeps caller deadline", func(t *testing.T) {
		parent, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		want, _ := parent.Deadline()

		var got time.Time
		h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got, _ = r.Context().Deadline()
		}), Timeout(time.Minute))

		serve(h, httptest.NewRequest(http.MethodGet, "/staff", nil).WithContext(parent))
		require.WithinDuration(t, want, got, time.Millisecond)
	})

	t.Run("zero disables", func(t *testing.T) {
		var has bool
		h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, has = r.Context().Deadline()
		}), Timeout(0))

		serve(h, httptest.NewRequest(http.MethodGet, "/staff", nil))
		require.False(t, has)
	})

	t.Run("expiry is logged with cause", func(t *testing.T) {
		s := newSink()
		var cause error
		h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			cause = context.Cause(r.Context())
		}), Logging(slog.New(s)), Timeout(10*time.Millisecond))

		serve(h, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		require.True(t, errors.Is(cause, ErrServiceTimeout))
		e := s.only(t, "service_timeout")
		require.Equal(t, slog.LevelWarn, e.level)
		require.Equal(t, "/dashboard", e.attrs["path"])
	})
}

func TestNoStore(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), NoStore())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/session", nil))

	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rec.Header().Get("Pragma"))
}

func TestRecorder(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := wrap(rr)
	require.Same(t, rec, wrap(rec))
	require.Equal(t, http.StatusOK, rec.Status())

	rec.WriteHeader(http.StatusCreated)
	rec.WriteHeader(http.StatusInternalServerError)
	_, _ = rec.Write([]byte("abc"))

	require.Equal(t, http.StatusCreated, rec.Status())
	require.Equal(t, 3, rec.written)
	require.Same(t, http.ResponseWriter(rr), rec.Unwrap())
}
