package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Resource — CRUD одного ресурса бэкенда.
//
// T — запись, как её отдаёт бэкенд; In — тело создания/изменения.
// Маршруты: GET path, GET path/{id}, POST path, PATCH path/{id}, DELETE path/{id}.
type Resource[T, In any] struct {
	c    *client.Client
	path string
}

func NewResource[T, In any](c *client.Client, path string) *Resource[T, In] {
	return &Resource[T, In]{c: c, path: strings.Trim(path, "/")}
}

// Path — путь ресурса относительно BaseURL.
func (r *Resource[T, In]) Path() string { return r.path }

func (r *Resource[T, In]) item(id string, sub ...string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty id", models.ErrValidation)
	}

	parts := append([]string{r.path, url.PathEscape(id)}, sub...)
	return strings.Join(parts, "/"), nil
}

// List возвращает страницу записей.
func (r *Resource[T, In]) List(ctx context.Context, q models.PageQuery) (models.Page[T], error) {
	return r.list(ctx, q, nil)
}

func (r *Resource[T, In]) list(ctx context.Context, q models.PageQuery, extra url.Values) (models.Page[T], error) {
	op := "api." + r.path + ".List"

	if err := models.Validate(q); err != nil {
		return models.Page[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	query := q.Values()
	for k, vs := range extra {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	var out models.Page[T]
	if err := r.c.DoJSON(ctx, http.MethodGet, r.path, query, nil, &out); err != nil {
		return models.Page[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	if out.Data == nil {
		out.Data = []T{}
	}

	if err := client.ValidateResponse(out); err != nil {
		return models.Page[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Get возвращает запись по id.
func (r *Resource[T, In]) Get(ctx context.Context, id string) (T, error) {
	op := "api." + r.path + ".Get"

	var zero T

	path, err := r.item(id)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return r.send(ctx, op, http.MethodGet, path, nil)
}

// Create проверяет вход и создаёт запись.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	op := "api." + r.path + ".Create"

	var zero T
	if err := models.Validate(in); err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return r.send(ctx, op, http.MethodPost, r.path, in)
}

// Update проверяет вход и изменяет запись. Вход передаётся целиком,
// как его собирает форма редактирования.
func (r *Resource[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	op := "api." + r.path + ".Update"

	var zero T

	path, err := r.item(id)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	if err := models.Validate(in); err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return r.send(ctx, op, http.MethodPatch, path, in)
}

// Delete удаляет запись.
func (r *Resource[T, In]) Delete(ctx context.Context, id string) error {
	op := "api." + r.path + ".Delete"

	path, err := r.item(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.c.DoJSON(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// send выполняет запрос и проверяет декодированную запись.
func (r *Resource[T, In]) send(ctx context.Context, op, method, path string, in any) (T, error) {
	var out T
	if err := r.c.DoJSON(ctx, method, path, nil, in, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.ValidateResponse(out); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
