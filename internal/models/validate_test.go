package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_LoginRequest(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(LoginRequest{Email: "admin@aprilwind.ng", Password: "secret"}))

	err := Validate(LoginRequest{Email: "not-an-email"})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "Email:email")
	require.Contains(t, err.Error(), "Password:required")
}

func TestValidate_RefreshResponse_RequiresAccessToken(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(RefreshResponse{RefreshToken: "r"}), ErrValidation)
	require.NoError(t, Validate(RefreshResponse{AccessToken: "a"}))
}

func TestValidate_StageTag(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(StageTransition{Stage: StageAwaitQA}))

	err := Validate(StageTransition{Stage: "sewing"})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "Stage:stage")
}

func TestValidate_DecodedProductionAcceptsNewStage(t *testing.T) {
	t.Parallel()

	// Бэкенд завёл стадию, которой шлюз ещё не знает: список не ломается.
	page := Page[Production]{Data: []Production{{ID: "pr-1", ProductID: "p-1", Stage: "embroidery"}}}
	require.NoError(t, Validate(page))

	// Пустая стадия по-прежнему ошибка ответа.
	err := Validate(Production{ID: "pr-1", ProductID: "p-1"})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "Stage:required")

	// Исходящий переход сверяется со словарём.
	require.ErrorIs(t, Validate(StageTransition{Stage: "embroidery"}), ErrValidation)
}

func TestValidatorInstance_RegistersStageOnce(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		require.Same(t, validatorInstance(), validatorInstance())
	})
}

func TestValidate_InvoiceInput_DivesIntoItems(t *testing.T) {
	t.Parallel()

	in := InvoiceInput{
		CustomerID: "c-1",
		Items:      []InvoiceItem{{ProductID: "p-1", Quantity: 0}},
	}
	err := Validate(in)
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "Quantity:gt")

	in.Items[0].Quantity = 3
	require.NoError(t, Validate(in))
}

func TestValidate_PageOfRecords(t *testing.T) {
	t.Parallel()

	ok := Page[Staff]{Data: []Staff{{ID: "s-1", FullName: "Ada"}}}
	require.NoError(t, Validate(ok))

	bad := Page[Staff]{Data: []Staff{{ID: "s-1"}}}
	require.ErrorIs(t, Validate(bad), ErrValidation)
}

func TestStage_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range Stages {
		require.True(t, s.Valid(), s)
	}
	require.False(t, Stage("").Valid())
	require.False(t, Stage("BIDDING").Valid())
}

func TestPageQuery_ValuesRoundTrip(t *testing.T) {
	t.Parallel()

	q := PageQuery{Page: 2, Limit: 25, Sort: "createdAt", Order: SortDesc, Search: "agbada"}
	v := q.Values()
	require.Equal(t, "2", v.Get("page"))
	require.Equal(t, "25", v.Get("limit"))
	require.Equal(t, "DESC", v.Get("order"))

	require.Equal(t, q, PageQueryFrom(v))
}

func TestPageQueryFrom_IgnoresGarbage(t *testing.T) {
	t.Parallel()

	q := PageQueryFrom(url.Values{"page": {"x"}, "limit": {"-"}})
	require.Zero(t, q.Page)
	require.Zero(t, q.Limit)
	require.Empty(t, q.Values())
}
