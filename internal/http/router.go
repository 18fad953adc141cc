package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dEnchanter/aprilwind-admin/internal/api"
	"github.com/dEnchanter/aprilwind-admin/internal/client"
	apierrors "github.com/dEnchanter/aprilwind-admin/internal/errors"
	"github.com/dEnchanter/aprilwind-admin/internal/http/handlers"
	"github.com/dEnchanter/aprilwind-admin/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger *slog.Logger
	// Timeout — бюджет на запрос UI целиком, включая обновление токена
	// и повтор. Должен быть больше таймаута обновления.
	Timeout time.Duration
	// BasePath монтирует API под префиксом (например, "/api"); пустой значит корень.
	BasePath string
}

// NewRouter собирает chi-роутер админ-шлюза. Порядок мидлваров важен:
// RequestID идёт до Logging, чтобы id попал в журнал, а Timeout последним,
// чтобы время ожидания очереди обновления входило в бюджет запроса.
func NewRouter(a *api.API, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.NoStore(),
		middleware.Timeout(opts.Timeout),
	)

	// Неизвестные маршруты отвечают тем же конвертом ошибки, что и бэкенд-ошибки.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apierrors.WriteError(w, req, &client.APIError{Status: http.StatusNotFound, Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		apierrors.WriteError(w, req, &client.APIError{Status: http.StatusMethodNotAllowed, Message: "method not allowed"})
	})

	h := handlers.New(a)
	if opts.BasePath == "" {
		registerRoutes(r, h)
		return r
	}

	r.Route(opts.BasePath, func(sub chi.Router) {
		registerRoutes(sub, h)
	})

	return r
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Get("/session", h.Session)

	// dashboard
	r.Get("/dashboard", h.Summary)

	// ресурсы
	registerResource(r, h.API.Staff)
	registerResource(r, h.API.Customers)
	registerResource(r, h.API.Materials)
	registerResource(r, h.API.Products)
	registerResource(r, h.API.Invoices)

	// productions
	r.Post("/productions/{id}/stage", h.MoveStage)
	registerResource(r, h.API.Productions.Resource)

	// material requests
	r.Get("/material-requests/pending", h.PendingRequests)
	r.Post("/material-requests/{id}/approve", h.ApproveRequest)
	r.Post("/material-requests/{id}/reject", h.RejectRequest)
	registerResource(r, h.API.MaterialRequests.Resource)
}

// registerResource вешает CRUD на путь ресурса бэкенда: маршруты шлюза
// повторяют таблицу эндпойнтов internal/api.
func registerResource[T, In any](r chi.Router, res *api.Resource[T, In]) {
	c := handlers.NewCRUD(res)
	path := "/" + res.Path()

	r.Get(path, c.List)
	r.Post(path, c.Create)
	r.Get(path+"/{id}", c.Get)
	r.Patch(path+"/{id}", c.Update)
	r.Delete(path+"/{id}", c.Delete)
}
