package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// refresher обменивает refresh-токен на новую пару через голый http.Client:
// без подписи и перехватчиков, чтобы не зациклить обработку 401.
type refresher struct {
	bare    *http.Client
	url     string
	timeout time.Duration
}

// exchange выполняет POST {refreshToken} на эндпойнт обновления.
//
// Вызов отвязан от отмены ctx лидера (его ждут и другие запросы) и ограничен
// собственным таймаутом, поэтому зависший бэкенд не держит очередь вечно.
func (r refresher) exchange(ctx context.Context, refreshToken string) (models.RefreshResponse, error) {
	const op = "client.refresher.exchange"

	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	body, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.bare.Do(req)
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w: %w", op, ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w: %w", op, ErrRefreshFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w: %w", op, ErrRefreshFailed, ParseAPIError(resp.StatusCode, raw))
	}

	var out models.RefreshResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidResponse, err)
	}

	if err := models.Validate(out); err != nil {
		return models.RefreshResponse{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidResponse, err)
	}

	return out, nil
}
