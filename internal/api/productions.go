package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Productions — партии в пошиве и их движение по стадиям.
type Productions struct {
	*Resource[models.Production, models.ProductionInput]
}

// MoveStage переводит партию в стадию tr.Stage. Допустимость перехода
// решает бэкенд; отказ приходит как *client.APIError.
func (p *Productions) MoveStage(ctx context.Context, id string, tr models.StageTransition) (models.Production, error) {
	const op = "api.productions.MoveStage"

	path, err := p.item(id, "stage")
	if err != nil {
		return models.Production{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := models.Validate(tr); err != nil {
		return models.Production{}, fmt.Errorf("%s: %w", op, err)
	}

	return p.send(ctx, op, http.MethodPost, path, tr)
}
