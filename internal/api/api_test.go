package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dEnchanter/aprilwind-admin/internal/client"
	"github.com/dEnchanter/aprilwind-admin/internal/models"
	"github.com/dEnchanter/aprilwind-admin/internal/pkg/log"
	"github.com/dEnchanter/aprilwind-admin/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

// backend — фейковый REST-бэкенд: routes[METHOD path] → (status, json).
type backend struct {
	mu     sync.Mutex
	calls  []recorded
	routes map[string]reply
}

type reply struct {
	status int
	body   any
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.calls = append(b.calls, recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(raw),
		Auth:   r.Header.Get("Authorization"),
	})
	rep, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		rep = reply{status: http.StatusNotFound, body: map[string]any{"message": "Not found"}}
	}

	if rep.status == http.StatusNoContent {
		w.WriteHeader(rep.status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_ = json.NewEncoder(w).Encode(rep.body)
}

func (b *backend) last(t *testing.T) recorded {
	t.Helper()

	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.calls)
	return b.calls[len(b.calls)-1]
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func newAPI(t *testing.T, routes map[string]reply) (*API, *backend, session.Store) {
	t.Helper()

	b := &backend{routes: routes}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	store := session.NewMemory()
	require.NoError(t, store.SaveAccessToken(context.Background(), "at-1"))

	c, err := client.New(store, client.Options{BaseURL: srv.URL + "/v1", Transport: srv.Client().Transport})
	require.NoError(t, err)

	return New(c, AuthPaths{}), b, store
}

func page(total int, data ...any) map[string]any {
	if data == nil {
		data = []any{}
	}

	return map[string]any{
		"data": data,
		"meta": map[string]any{"page": 1, "limit": 1, "total": total, "totalPages": total},
	}
}

func TestResource_List(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, map[string]reply{
		"GET /v1/staff": {http.StatusOK, page(2,
			map[string]any{"id": "s-1", "fullName": "Ada Obi"},
			map[string]any{"id": "s-2", "fullName": "Tunde Bello"},
		)},
	})

	p, err := a.Staff.List(context.Background(), models.PageQuery{Page: 2, Limit: 10, Order: models.SortDesc, Search: "ad"})
	require.NoError(t, err)
	require.Len(t, p.Data, 2)
	require.Equal(t, "Ada Obi", p.Data[0].FullName)
	require.Equal(t, 2, p.Meta.Total)

	call := b.last(t)
	require.Equal(t, "Bearer at-1", call.Auth)
	require.Equal(t, "limit=10&order=DESC&page=2&search=ad", call.Query)
}

func TestResource_ListEmptyDataIsNotNil(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, map[string]reply{
		"GET /v1/customers": {http.StatusOK, map[string]any{"meta": map[string]any{"total": 0}}},
	})

	p, err := a.Customers.List(context.Background(), models.PageQuery{})
	require.NoError(t, err)
	require.NotNil(t, p.Data)
	require.Empty(t, p.Data)
}

func TestResource_ListRejectsBadQuery(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, nil)

	_, err := a.Staff.List(context.Background(), models.PageQuery{Order: "sideways"})
	require.ErrorIs(t, err, models.ErrValidation)
	require.Zero(t, b.count())
}

func TestResource_ListInvalidRecord(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, map[string]reply{
		"GET /v1/staff": {http.StatusOK, page(1, map[string]any{"fullName": "no id"})},
	})

	_, err := a.Staff.List(context.Background(), models.PageQuery{})
	require.ErrorIs(t, err, client.ErrInvalidResponse)
}

func TestResource_Get(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, map[string]reply{
		"GET /v1/materials/m 1": {http.StatusOK, map[string]any{"id": "m 1", "name": "Ankara"}},
	})

	m, err := a.Materials.Get(context.Background(), "m 1")
	require.NoError(t, err)
	require.Equal(t, "Ankara", m.Name)
	require.Equal(t, "/v1/materials/m 1", b.last(t).Path)
}

func TestResource_GetEmptyID(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, nil)

	_, err := a.Products.Get(context.Background(), "  ")
	require.ErrorIs(t, err, models.ErrValidation)
	require.Zero(t, b.count())
}

func TestResource_GetNotFound(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, nil)

	_, err := a.Invoices.Get(context.Background(), "missing")
	require.True(t, client.IsNotFound(err))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Not found", apiErr.Message)
}

func TestResource_CreateValidatesInput(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, nil)

	_, err := a.Customers.Create(context.Background(), models.CustomerInput{Name: "Z", Email: "not-an-email"})
	require.ErrorIs(t, err, models.ErrValidation)
	require.Contains(t, err.Error(), "Name:min")
	require.Contains(t, err.Error(), "Email:email")
	require.Zero(t, b.count(), "invalid input never leaves the gateway")
}

func TestResource_Create(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, map[string]reply{
		"POST /v1/customers": {http.StatusCreated, map[string]any{"id": "c-1", "name": "Zara Ltd"}},
	})

	c, err := a.Customers.Create(context.Background(), models.CustomerInput{Name: "Zara Ltd", Gender: "female"})
	require.NoError(t, err)
	require.Equal(t, "c-1", c.ID)

	call := b.last(t)
	require.Equal(t, http.MethodPost, call.Method)
	require.JSONEq(t, `{"name":"Zara Ltd","gender":"female"}`, call.Body)
}

func TestResource_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, map[string]reply{
		"PATCH /v1/materials/m-1":  {http.StatusOK, map[string]any{"id": "m-1", "name": "Lace"}},
		"DELETE /v1/materials/m-1": {http.StatusNoContent, nil},
	})

	m, err := a.Materials.Update(context.Background(), "m-1", models.MaterialInput{Name: "Lace", Unit: "yard", Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, "Lace", m.Name)
	require.Equal(t, http.MethodPatch, b.last(t).Method)

	require.NoError(t, a.Materials.Delete(context.Background(), "m-1"))
	require.Equal(t, http.MethodDelete, b.last(t).Method)
}

func TestProductions_MoveStage(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, map[string]reply{
		"POST /v1/productions/p-1/stage": {http.StatusOK, map[string]any{
			"id": "p-1", "productId": "pr-1", "quantity": 4, "stage": "await_qa",
		}},
	})

	p, err := a.Productions.MoveStage(context.Background(), "p-1", models.StageTransition{Stage: models.StageAwaitQA})
	require.NoError(t, err)
	require.Equal(t, models.StageAwaitQA, p.Stage)
	require.JSONEq(t, `{"stage":"await_qa"}`, b.last(t).Body)

	_, err = a.Productions.MoveStage(context.Background(), "p-1", models.StageTransition{Stage: "shipped"})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestProductions_MoveStageRejectedByBackend(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, map[string]reply{
		"POST /v1/productions/p-1/stage": {http.StatusBadRequest, map[string]any{
			"message": []string{"stage", "cannot move from bidding to completed"},
		}},
	})

	_, err := a.Productions.MoveStage(context.Background(), "p-1", models.StageTransition{Stage: models.StageCompleted})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "cannot move from bidding to completed", apiErr.Message)
}

func TestMaterialRequests_Decisions(t *testing.T) {
	t.Parallel()

	rec := func(status string) reply {
		return reply{http.StatusOK, map[string]any{"id": "r-1", "materialId": "m-1", "quantity": 2, "status": status}}
	}

	a, b, _ := newAPI(t, map[string]reply{
		"POST /v1/material-requests/r-1/approve": rec("approved"),
		"POST /v1/material-requests/r-1/reject":  rec("rejected"),
		"GET /v1/material-requests":              {http.StatusOK, page(0)},
	})

	r, err := a.MaterialRequests.Approve(context.Background(), "r-1", models.Decision{})
	require.NoError(t, err)
	require.Equal(t, models.RequestApproved, r.Status)

	r, err = a.MaterialRequests.Reject(context.Background(), "r-1", models.Decision{Reason: "out of stock"})
	require.NoError(t, err)
	require.Equal(t, models.RequestRejected, r.Status)
	require.JSONEq(t, `{"reason":"out of stock"}`, b.last(t).Body)

	_, err = a.MaterialRequests.Pending(context.Background(), models.PageQuery{})
	require.NoError(t, err)
	require.Equal(t, "status=pending", b.last(t).Query)
}

func TestAuth_LoginStoresSession(t *testing.T) {
	t.Parallel()

	a, b, store := newAPI(t, map[string]reply{
		"POST /v1/auth/login": {http.StatusOK, map[string]any{
			"accessToken":  "at-login",
			"refreshToken": "rt-login",
			"user":         map[string]any{"id": "u-1", "fullName": "Ada Obi", "email": "ada@aprilwind.ng"},
			"role":         map[string]any{"id": "r-1", "name": "admin", "permissions": []string{"staff:write"}},
		}},
	})
	ctx := context.Background()

	out, err := a.Auth.Login(ctx, models.LoginRequest{Email: "ada@aprilwind.ng", Password: "s3cret"})
	require.NoError(t, err)
	require.Equal(t, "at-login", out.AccessToken)
	require.JSONEq(t, `{"email":"ada@aprilwind.ng","password":"s3cret"}`, b.last(t).Body)

	at, _ := store.AccessToken(ctx)
	rt, _ := store.RefreshToken(ctx)
	user, _ := store.UserData(ctx)
	role, _ := store.UserRoleDetail(ctx)
	require.Equal(t, "at-login", at)
	require.Equal(t, "rt-login", rt)
	require.Equal(t, "Ada Obi", user.FullName)
	require.Equal(t, []string{"staff:write"}, role.Permissions)
}

func TestAuth_LoginRejected(t *testing.T) {
	t.Parallel()

	a, b, store := newAPI(t, map[string]reply{
		"POST /v1/auth/login": {http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"}},
	})
	ctx := context.Background()

	_, err := a.Auth.Login(ctx, models.LoginRequest{Email: "ada@aprilwind.ng", Password: "wrong"})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.Equal(t, client.OutcomeFailed, client.OutcomeOf(err), "login 401 never triggers refresh")
	require.Equal(t, 1, b.count())

	at, _ := store.AccessToken(ctx)
	require.Equal(t, "at-1", at)
}

func TestAuth_LoginLogsMaskedEmail(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, map[string]reply{
		"POST /v1/auth/login": {http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"}},
	})

	var buf bytes.Buffer
	ctx := log.Into(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	_, err := a.Auth.Login(ctx, models.LoginRequest{Email: "ada@aprilwind.ng", Password: "wrong"})
	require.Error(t, err)

	out := buf.String()
	require.Contains(t, out, "login_failed")
	require.Contains(t, out, "email=ad***@aprilwind.ng")
	require.NotContains(t, out, "ada@aprilwind.ng")
	require.NotContains(t, out, "wrong")
}

func TestAuth_LoginValidatesInput(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, nil)

	_, err := a.Auth.Login(context.Background(), models.LoginRequest{Email: "ada"})
	require.ErrorIs(t, err, models.ErrValidation)
	require.Zero(t, b.count())
}

func TestAuth_LogoutClearsEvenOnBackendFailure(t *testing.T) {
	t.Parallel()

	a, b, store := newAPI(t, map[string]reply{
		"POST /v1/auth/logout": {http.StatusInternalServerError, map[string]any{"message": "boom"}},
	})
	ctx := context.Background()
	require.NoError(t, store.SaveRefreshToken(ctx, "rt-1"))

	require.NoError(t, a.Auth.Logout(ctx))
	require.Equal(t, "/v1/auth/logout", b.last(t).Path)

	at, _ := store.AccessToken(ctx)
	rt, _ := store.RefreshToken(ctx)
	require.Empty(t, at)
	require.Empty(t, rt)
}

func TestAuth_Session(t *testing.T) {
	t.Parallel()

	a, _, store := newAPI(t, nil)
	ctx := context.Background()

	exp := time.Now().Add(time.Hour).Truncate(time.Second).UTC()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)
	require.NoError(t, store.SaveAccessToken(ctx, tok))
	require.NoError(t, store.SaveUserData(ctx, models.UserData{ID: "u-1"}))

	info, err := a.Auth.Session(ctx)
	require.NoError(t, err)
	require.True(t, info.Authenticated)
	require.Equal(t, "u-1", info.Subject)
	require.NotNil(t, info.ExpiresAt)
	require.True(t, exp.Equal(*info.ExpiresAt))
	require.False(t, info.Expired)
	require.Equal(t, "u-1", info.User.ID)
	require.Nil(t, info.Role)
}

func TestAuth_SessionOpaqueToken(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, nil)

	info, err := a.Auth.Session(context.Background())
	require.NoError(t, err)
	require.True(t, info.Authenticated)
	require.Empty(t, info.Subject)
	require.Nil(t, info.ExpiresAt)
}

func TestDashboard_Summary(t *testing.T) {
	t.Parallel()

	a, b, _ := newAPI(t, map[string]reply{
		"GET /v1/staff":             {http.StatusOK, page(12)},
		"GET /v1/customers":         {http.StatusOK, page(40)},
		"GET /v1/materials":         {http.StatusOK, page(7)},
		"GET /v1/products":          {http.StatusOK, page(5)},
		"GET /v1/productions":       {http.StatusOK, page(9)},
		"GET /v1/material-requests": {http.StatusOK, page(3)},
		"GET /v1/invoices":          {http.StatusOK, page(21)},
	})

	s, err := a.Dashboard.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{
		Staff: 12, Customers: 40, Materials: 7, Products: 5,
		Productions: 9, PendingRequests: 3, Invoices: 21,
	}, s)
	require.Equal(t, 7, b.count())

	for _, c := range b.calls {
		require.True(t, strings.Contains(c.Query, "limit=1"), c.Query)
	}
}

func TestDashboard_SummaryForbidden(t *testing.T) {
	t.Parallel()

	a, _, _ := newAPI(t, map[string]reply{
		"GET /v1/staff":             {http.StatusOK, page(12)},
		"GET /v1/customers":         {http.StatusOK, page(40)},
		"GET /v1/materials":         {http.StatusOK, page(7)},
		"GET /v1/products":          {http.StatusOK, page(5)},
		"GET /v1/productions":       {http.StatusOK, page(9)},
		"GET /v1/material-requests": {http.StatusOK, page(3)},
		"GET /v1/invoices":          {http.StatusForbidden, map[string]any{"message": "Forbidden"}},
	})

	_, err := a.Dashboard.Summary(context.Background())
	require.Equal(t, client.OutcomeForbidden, client.OutcomeOf(err))
}

// cancelAwareStore отказывает по отменённому контексту, как go-redis.
type cancelAwareStore struct {
	*session.Memory
}

func (s cancelAwareStore) RefreshToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Memory.RefreshToken(ctx)
}

func (s cancelAwareStore) SaveAccessToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Memory.SaveAccessToken(ctx, token)
}

func TestDashboard_SummarySiblingFailureKeepsRefreshedSession(t *testing.T) {
	t.Parallel()

	refreshStarted := make(chan struct{})
	invoicesFailed := make(chan struct{})
	var startOnce, failOnce sync.Once

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/auth/refresh":
			// Обмен завершается только после того, как соседний запрос
			// уронил группу и её контекст отменён.
			startOnce.Do(func() { close(refreshStarted) })
			select {
			case <-invoicesFailed:
			case <-time.After(2 * time.Second):
			}
			time.Sleep(50 * time.Millisecond)
			_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": "at-2"})
		case "/v1/invoices":
			select {
			case <-refreshStarted:
			case <-time.After(2 * time.Second):
			}
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Internal server error"})
			failOnce.Do(func() { close(invoicesFailed) })
		case "/v1/staff":
			if r.Header.Get("Authorization") != "Bearer at-2" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{"message": "Unauthorized"})
				return
			}
			_ = json.NewEncoder(w).Encode(page(12))
		default:
			_ = json.NewEncoder(w).Encode(page(1))
		}
	}))
	t.Cleanup(srv.Close)

	mem := session.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.SaveAccessToken(ctx, "at-1"))
	require.NoError(t, mem.SaveRefreshToken(ctx, "rt-1"))

	c, err := client.New(cancelAwareStore{mem}, client.Options{
		BaseURL:    srv.URL + "/v1",
		Transport:  srv.Client().Transport,
		BareClient: srv.Client(),
	})
	require.NoError(t, err)

	_, err = New(c, AuthPaths{}).Dashboard.Summary(ctx)
	require.Error(t, err)
	require.True(t, client.IsStatus(err, http.StatusInternalServerError))

	at, err := mem.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "at-2", at)

	rt, err := mem.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "rt-1", rt)
}
