// admin-gateway — HTTP-шлюз админки Aprilwind. Держит сессию оператора,
// подписывает вызовы бэкенда и прозрачно обновляет истёкший access-токен.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dEnchanter/aprilwind-admin/internal/clients"
	"github.com/dEnchanter/aprilwind-admin/internal/config"
	gwhttp "github.com/dEnchanter/aprilwind-admin/internal/http"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	shutdownTimeout = 10 * time.Second
	readyTimeout    = 2 * time.Second
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("admin_gateway_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("admin_gateway_stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("admin_gateway_starting",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Backend.BaseURL),
		slog.String("session", cfg.Session.Backend),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cl, err := clients.New(ctx, *cfg, log, reg)
	if err != nil {
		return fmt.Errorf("init clients: %w", err)
	}
	defer func() {
		if err := cl.Close(); err != nil {
			log.Warn("clients_close_failed", slog.String("err", err.Error()))
		}
	}()

	var draining atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if draining.Load() {
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}

		rctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := cl.Ready(rctx); err != nil {
			log.Warn("readiness_failed", slog.String("err", err.Error()))
			http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
			return
		}

		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/", gwhttp.NewRouter(cl.API, gwhttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	}))

	addr := cfg.HTTP.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	log.Info("admin_gateway_ready", slog.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	draining.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func setupLogger(env string) *slog.Logger {
	var h slog.Handler

	switch env {
	case envProd:
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case envDev:
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envLocal:
		fallthrough
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(h)
}
