// errors стандартизирует ответы об ошибках HTTP-слоя шлюза.
// На вход он принимает ошибку клиента бэкенда (internal/client),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - redirect, если фронт должен увести пользователя (sign-in/unauthorized).
//
// Здесь же живёт политика навигации: клиент только сообщает итог
// (*client.NavigationError), решение о переходе принимает фронт по redirect.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// HeaderRedirect дублирует redirect из тела: фронту и логам не нужно парсить JSON.
const HeaderRedirect = "X-Redirect-To"

// ErrInternal — ошибка самого шлюза (паника, программная ошибка): 500/internal.
var ErrInternal = errors.New("internal")

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// Redirect — куда перейти (только для истёкшей сессии и запрета доступа).
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Redirect  string `json:"redirect,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку клиента бэкенда в HTTP-статус и ответ для фронта.
//
// Поведение:
//   - err == nil или ErrInternal — программная ошибка: 500/internal;
//   - *client.NavigationError — 401/session_expired или 403/permission_denied
//     с redirect на цель навигации;
//   - models.ErrValidation — 400/invalid_argument с перечнем полей;
//   - *client.APIError — статус бэкенда через baseFromStatus(), message
//     бэкенда (уже извлечённый и пригодный для показа);
//   - context.Canceled — 499, context.DeadlineExceeded — 504;
//   - прочее (сеть, битый ответ) — 502/bad_gateway.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil || errors.Is(err, ErrInternal) {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	var nav *client.NavigationError
	if errors.As(err, &nav) {
		if nav.Outcome == client.OutcomeForbidden {
			return http.StatusForbidden, ErrorResponse{
				Error: APIError{
					Code:     "permission_denied",
					Message:  "permission denied",
					Redirect: nav.Target,
				},
			}
		}

		return http.StatusUnauthorized, ErrorResponse{
			Error: APIError{
				Code:     "session_expired",
				Message:  "session expired",
				Redirect: nav.Target,
			},
		}
	}

	if errors.Is(err, models.ErrValidation) {
		return http.StatusBadRequest, ErrorResponse{
			Error: APIError{
				Code:    "invalid_argument",
				Message: validationMessage(err),
			},
		}
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		httpStatus, code := baseFromStatus(apiErr.Status)
		return httpStatus, ErrorResponse{
			Error: APIError{
				Code:    code,
				Message: apiErr.Message,
			},
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, ErrorResponse{
			Error: APIError{Code: "canceled", Message: "canceled"},
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{
			Error: APIError{Code: "deadline_exceeded", Message: "deadline exceeded"},
		}
	case errors.Is(err, client.ErrInvalidResponse):
		return http.StatusBadGateway, ErrorResponse{
			Error: APIError{Code: "bad_gateway", Message: "invalid upstream response"},
		}
	}

	return http.StatusBadGateway, ErrorResponse{
		Error: APIError{Code: "bad_gateway", Message: "upstream unavailable"},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	if resp.Error.Redirect != "" {
		w.Header().Set(HeaderRedirect, resp.Error.Redirect)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// validationMessage оставляет от цепочки только "validation failed: Field:tag, ...",
// без префиксов op.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, models.ErrValidation.Error()); i >= 0 {
		return msg[i:]
	}

	return models.ErrValidation.Error()
}

// baseFromStatus — маппинг статуса бэкенда на HTTP-статус шлюза и FE-код:
//   - 400, 422 -> как есть, invalid_argument
//   - 401 (после повтора или на auth-эндпойнте) -> 401, unauthenticated
//   - 403 (только logout) -> 403, permission_denied
//   - 404 -> not_found
//   - 409 -> already_exists
//   - 412 -> failed_precondition
//   - 429 -> resource_exhausted
//   - 5xx бэкенда -> 502, upstream_error
//   - прочее -> как есть, upstream_error
func baseFromStatus(s int) (int, string) {
	switch s {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return s, "invalid_argument"
	case http.StatusUnauthorized:
		return s, "unauthenticated"
	case http.StatusForbidden:
		return s, "permission_denied"
	case http.StatusNotFound:
		return s, "not_found"
	case http.StatusConflict:
		return s, "already_exists"
	case http.StatusPreconditionFailed:
		return s, "failed_precondition"
	case http.StatusTooManyRequests:
		return s, "resource_exhausted"
	}

	if s >= 500 || s < 400 {
		return http.StatusBadGateway, "upstream_error"
	}

	return s, "upstream_error"
}
