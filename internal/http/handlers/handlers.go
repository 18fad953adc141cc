package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dEnchanter/aprilwind-admin/internal/api"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Handlers агрегирует зависимости (типизированный API бэкенда).
type Handlers struct {
	API *api.API
}

func New(a *api.API) *Handlers {
	return &Handlers{API: a}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return invalidBody(err)
	}

	return nil
}

// decodeOptional — как decodeStrict, но пустое тело допустимо.
func decodeOptional(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil && !errors.Is(err, io.EOF) {
		return invalidBody(err)
	}

	return nil
}

// invalidBody — локальная ошибка разбора тела -> 400/invalid_argument.
func invalidBody(err error) error {
	return fmt.Errorf("%w: invalid body: %v", models.ErrValidation, err)
}
