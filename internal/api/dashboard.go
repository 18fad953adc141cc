package api

import (
	"context"
	"fmt"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
	"golang.org/x/sync/errgroup"
)

// Summary — счётчики для главной страницы дашборда.
type Summary struct {
	Staff           int `json:"staff"`
	Customers       int `json:"customers"`
	Materials       int `json:"materials"`
	Products        int `json:"products"`
	Productions     int `json:"productions"`
	PendingRequests int `json:"pendingRequests"`
	Invoices        int `json:"invoices"`
}

// Dashboard собирает сводку по нескольким ресурсам.
type Dashboard struct {
	api *API
}

// Summary запрашивает total у каждого ресурса параллельно. Первая ошибка
// отменяет остальные запросы и возвращается как есть, поэтому истёкшая
// сессия даёт *client.NavigationError, а не частичную сводку.
func (d *Dashboard) Summary(ctx context.Context) (Summary, error) {
	const op = "api.Dashboard.Summary"

	head := models.PageQuery{Page: 1, Limit: 1}

	var s Summary
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int, list func(context.Context, models.PageQuery) (int, error)) {
		g.Go(func() error {
			n, err := list(gctx, head)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&s.Staff, total(d.api.Staff.List))
	count(&s.Customers, total(d.api.Customers.List))
	count(&s.Materials, total(d.api.Materials.List))
	count(&s.Products, total(d.api.Products.List))
	count(&s.Productions, total(d.api.Productions.List))
	count(&s.PendingRequests, total(d.api.MaterialRequests.Pending))
	count(&s.Invoices, total(d.api.Invoices.List))

	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

func total[T any](list func(context.Context, models.PageQuery) (models.Page[T], error)) func(context.Context, models.PageQuery) (int, error) {
	return func(ctx context.Context, q models.PageQuery) (int, error) {
		p, err := list(ctx, q)
		if err != nil {
			return 0, err
		}

		return p.Meta.Total, nil
	}
}
