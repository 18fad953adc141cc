package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// DefaultErrorMessage — сообщение, когда бэкенд не прислал ничего пригодного.
const DefaultErrorMessage = "Something went wrong"

var (
	// ErrNoRefreshToken — в хранилище нет refresh-токена; сессию не восстановить.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrRefreshFailed — обмен refresh-токена завершился ошибкой.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrInvalidResponse — ответ бэкенда не прошёл проверку формы.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// APIError — не-2xx ответ бэкенда в структурированном виде.
//
// Status — HTTP-статус; Data — разобранное JSON-тело (nil, если тело не JSON);
// Message — человекочитаемое сообщение по правилам extractMessage.
type APIError struct {
	Status  int
	Data    any
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// ParseAPIError строит APIError из статуса и сырого тела ответа.
func ParseAPIError(status int, body []byte) *APIError {
	var data any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			data = nil
		}
	}

	return &APIError{
		Status:  status,
		Data:    data,
		Message: extractMessage(data),
	}
}

// extractMessage вытаскивает сообщение из тела ошибки бэкенда:
//   - message — массив из >=2 элементов: берём второй (валидатор бэкенда
//     кладёт в [0] имя поля, в [1] описание);
//   - message — строка: как есть;
//   - иначе DefaultErrorMessage.
func extractMessage(data any) string {
	obj, ok := data.(map[string]any)
	if !ok {
		return DefaultErrorMessage
	}

	switch m := obj["message"].(type) {
	case []any:
		if len(m) >= 2 {
			if s, ok := m[1].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if m != "" {
			return m
		}
	}

	return DefaultErrorMessage
}

// Outcome — итог запроса с точки зрения навигации UI.
type Outcome int

const (
	// OutcomeOK — ответ получен (в т.ч. после прозрачного обновления токена).
	OutcomeOK Outcome = iota
	// OutcomeAuthExpired — сессию восстановить не удалось, нужен вход.
	OutcomeAuthExpired
	// OutcomeForbidden — доступ запрещён, нужна страница unauthorized.
	OutcomeForbidden
	// OutcomeFailed — прочие ошибки: показать сообщение, не уводить со страницы.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeAuthExpired:
		return "auth_expired"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "failed"
	}
}

// NavigationError — запрос завершился так, что вызывающий должен увести
// пользователя на Target вместо показа ошибки. Решение о самой навигации
// принимает верхний уровень (см. internal/errors).
type NavigationError struct {
	Outcome Outcome
	Target  string
	Err     error
}

func (e *NavigationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: navigate to %s: %v", e.Outcome, e.Target, e.Err)
	}

	return fmt.Sprintf("%s: navigate to %s", e.Outcome, e.Target)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// OutcomeOf классифицирует результат вызова клиента.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}

	var nav *NavigationError
	if errors.As(err, &nav) {
		return nav.Outcome
	}

	return OutcomeFailed
}

// IsStatus сообщает, что err является APIError с указанным статусом.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsNotFound — частный случай IsStatus для 404.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }
