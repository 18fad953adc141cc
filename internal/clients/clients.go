package clients

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dEnchanter/aprilwind-admin/internal/api"
	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/client/interceptors"
	"github.com/dEnchanter/aprilwind-admin/internal/config"
	"github.com/dEnchanter/aprilwind-admin/internal/session"
)

// Clients агрегирует хранилище сессии, клиент бэкенда и типизированный API.
type Clients struct {
	Session session.Store
	Backend *client.Client
	API     *api.API

	closers []io.Closer
}

// New открывает хранилище сессии и собирает клиент бэкенда.
// При reg == nil метрики клиента не регистрируются.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer) (*Clients, error) {
	const op = "internal/clients/New"

	if log == nil {
		log = slog.Default()
	}

	store, closer, err := openStore(ctx, cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	attrs := []any{slog.String("backend", cfg.Session.Backend)}
	if f, ok := store.(*session.File); ok {
		attrs = append(attrs, slog.String("path", f.Path()))
	}
	log.Info("session_store_opened", attrs...)

	// Общий пул соединений для подписанных вызовов и обновления токена.
	base := http.DefaultTransport.(*http.Transport).Clone()

	// Цепочка перехватчиков: metadata -> timeout -> logging.
	// WithTimeout срабатывает только для контекстов без дедлайна.
	transport := interceptors.Chain(base,
		interceptors.WithMetadata(cfg.Backend.UserAgent),
		interceptors.WithTimeout(cfg.Timeouts.Request),
		interceptors.WithLogging(log),
	)

	backend, err := client.New(store, client.Options{
		BaseURL:            cfg.Backend.BaseURL,
		LoginPath:          cfg.Backend.LoginPath,
		LogoutPath:         cfg.Backend.LogoutPath,
		RefreshPath:        cfg.Backend.RefreshPath,
		SignInTarget:       cfg.Routes.SignIn,
		UnauthorizedTarget: cfg.Routes.Unauthorized,
		RefreshTimeout:     cfg.Timeouts.Refresh,
		Transport:          transport,
		BareClient:         &http.Client{Transport: base},
		Coordinator:        client.NewCoordinator(),
		Metrics:            client.NewMetrics(reg),
	})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Clients{
		Session: store,
		Backend: backend,
		API: api.New(backend, api.AuthPaths{
			Login:  cfg.Backend.LoginPath,
			Logout: cfg.Backend.LogoutPath,
		}),
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	return c, nil
}

// openStore выбирает хранилище сессии по конфигурации.
func openStore(ctx context.Context, cfg config.SessionConfig) (session.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.SessionMemory:
		return session.NewMemory(), nil, nil
	case config.SessionFile:
		f, err := session.OpenFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return f, nil, nil
	case config.SessionRedis:
		r, err := session.NewRedis(ctx, cfg.RedisURL, cfg.Key)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

// Close закрывает открытые соединения.
func (c *Clients) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// Ready проверяет, что хранилище сессии отвечает: без него шлюз не может
// ни подписать запрос, ни обновить токен.
func (c *Clients) Ready(ctx context.Context) error {
	if _, err := c.Session.AccessToken(ctx); err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	return nil
}
