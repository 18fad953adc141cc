package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	api := func(status int, msg string) error {
		return fmt.Errorf("api.staff.Get: %w", &client.APIError{Status: status, Message: msg})
	}

	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"bad_request", api(400, "name must not be empty"), http.StatusBadRequest, "invalid_argument", "name must not be empty"},
		{"unprocessable", api(422, "x"), http.StatusUnprocessableEntity, "invalid_argument", "x"},
		{"unauth", api(401, "Unauthorized"), http.StatusUnauthorized, "unauthenticated", "Unauthorized"},
		{"logout_forbidden", api(403, "Forbidden"), http.StatusForbidden, "permission_denied", "Forbidden"},
		{"not_found", api(404, "Not found"), http.StatusNotFound, "not_found", "Not found"},
		{"conflict", api(409, "exists"), http.StatusConflict, "already_exists", "exists"},
		{"precondition", api(412, "x"), http.StatusPreconditionFailed, "failed_precondition", "x"},
		{"too_many", api(429, "slow down"), http.StatusTooManyRequests, "resource_exhausted", "slow down"},
		{"teapot", api(418, "x"), 418, "upstream_error", "x"},
		{"upstream_500", api(500, client.DefaultErrorMessage), http.StatusBadGateway, "upstream_error", client.DefaultErrorMessage},
		{"canceled", fmt.Errorf("op: %w", context.Canceled), StatusClientClosedRequest, "canceled", "canceled"},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"},
		{"invalid_response", fmt.Errorf("op: %w", client.ErrInvalidResponse), http.StatusBadGateway, "bad_gateway", "invalid upstream response"},
		{"transport", errors.New("dial tcp: refused"), http.StatusBadGateway, "bad_gateway", "upstream unavailable"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.Equal(t, tc.wantMsg, resp.Error.Message)
			require.Empty(t, resp.Error.Redirect)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestToHTTP_Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(fmt.Errorf("handler: %w", ErrInternal))
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
}

func TestToHTTP_Navigation(t *testing.T) {
	expired := fmt.Errorf("api.Dashboard.Summary: %w", &client.NavigationError{
		Outcome: client.OutcomeAuthExpired,
		Target:  "/sign-in",
		Err:     client.ErrNoRefreshToken,
	})

	gotStatus, resp := ToHTTP(expired)
	require.Equal(t, http.StatusUnauthorized, gotStatus)
	require.Equal(t, "session_expired", resp.Error.Code)
	require.Equal(t, "/sign-in", resp.Error.Redirect)

	forbidden := &client.NavigationError{
		Outcome: client.OutcomeForbidden,
		Target:  "/unauthorized",
		Err:     &client.APIError{Status: http.StatusForbidden},
	}

	gotStatus, resp = ToHTTP(forbidden)
	require.Equal(t, http.StatusForbidden, gotStatus)
	require.Equal(t, "permission_denied", resp.Error.Code)
	require.Equal(t, "/unauthorized", resp.Error.Redirect)
}

func TestToHTTP_Validation(t *testing.T) {
	err := models.Validate(models.StageTransition{Stage: "shipped"})
	require.Error(t, err)

	gotStatus, resp := ToHTTP(fmt.Errorf("api.productions.MoveStage: %w", err))
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "invalid_argument", resp.Error.Code)
	require.Equal(t, "validation failed: Stage:stage", resp.Error.Message)
}

func TestWriteError_SetsJSONAndRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rec := httptest.NewRecorder()

	WriteError(rec, req, &client.NavigationError{Outcome: client.OutcomeAuthExpired, Target: "/sign-in"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "rid-1", body.Error.RequestID)
	require.Equal(t, "/sign-in", body.Error.Redirect)
	require.Equal(t, "/sign-in", rec.Header().Get(HeaderRedirect))
}

func TestWriteError_NoRedirectHeaderForPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, httptest.NewRequest(http.MethodGet, "/staff/1", nil), &client.APIError{Status: http.StatusNotFound, Message: "Staff not found"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Header().Get(HeaderRedirect))
}
