package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// MaterialRequests — заявки на материалы и решения по ним.
type MaterialRequests struct {
	*Resource[models.MaterialRequest, models.MaterialRequestInput]
}

// Pending — страница заявок, ожидающих решения.
func (m *MaterialRequests) Pending(ctx context.Context, q models.PageQuery) (models.Page[models.MaterialRequest], error) {
	return m.list(ctx, q, url.Values{"status": {string(models.RequestPending)}})
}

func (m *MaterialRequests) Approve(ctx context.Context, id string, d models.Decision) (models.MaterialRequest, error) {
	return m.decide(ctx, "api.material-requests.Approve", id, "approve", d)
}

func (m *MaterialRequests) Reject(ctx context.Context, id string, d models.Decision) (models.MaterialRequest, error) {
	return m.decide(ctx, "api.material-requests.Reject", id, "reject", d)
}

func (m *MaterialRequests) decide(ctx context.Context, op, id, action string, d models.Decision) (models.MaterialRequest, error) {
	path, err := m.item(id, action)
	if err != nil {
		return models.MaterialRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := models.Validate(d); err != nil {
		return models.MaterialRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	return m.send(ctx, op, http.MethodPost, path, d)
}
