package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/storage/memory"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	uc := NewCustomerUseCase(memory.NewStore(), logger.NewNop())

	c, err := uc.CreateCustomer(context.Background(), &dto.CreateCustomerInput{
		Name: "Toko Sinar", Email: " Sales@Sinar.ID ", Location: "north",
		CreditLimit: decimal.NewFromInt(5000000), UserID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sales@sinar.id", c.Email)

	got, err := uc.GetCustomer(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toko Sinar", got.Name)

	_, err = uc.CreateCustomer(context.Background(), &dto.CreateCustomerInput{Name: "Other", Email: "sales@sinar.id", Location: "south"})
	assert.Equal(t, apperror.KindAlreadyExists, apperror.KindOf(err))
}

func TestCreateCustomer_validation(t *testing.T) {
	uc := NewCustomerUseCase(memory.NewStore(), logger.NewNop())

	for _, in := range []dto.CreateCustomerInput{
		{Email: "a@b.co", Location: "north"},
		{Name: "A", Email: "not-an-email", Location: "north"},
		{Name: "A", Email: "a@b.co", Location: "all"},
		{Name: "A", Email: "a@b.co", Location: "north", CreditLimit: decimal.NewFromInt(-1)},
	} {
		in := in
		_, err := uc.CreateCustomer(context.Background(), &in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "%+v", in)
	}
}

func TestGetCustomer_notFound(t *testing.T) {
	uc := NewCustomerUseCase(memory.NewStore(), logger.NewNop())
	_, err := uc.GetCustomer(context.Background(), "ghost")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func strp(s string) *string { return &s }

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	uc := NewCustomerUseCase(memory.NewStore(), logger.NewNop())

	a, err := uc.CreateCustomer(ctx, &dto.CreateCustomerInput{Name: "Alpha", Email: "alpha@x.id", Location: "north", UserID: "u-1"})
	require.NoError(t, err)
	_, err = uc.CreateCustomer(ctx, &dto.CreateCustomerInput{Name: "Beta", Email: "beta@x.id", Location: "north"})
	require.NoError(t, err)

	limit := decimal.NewFromInt(250)
	got, err := uc.UpdateCustomer(ctx, &dto.UpdateCustomerInput{
		ID:          a.ID,
		Name:        strp(" Alpha Rugs "),
		City:        strp("Bandung"),
		CreditLimit: &limit,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Rugs", got.Name)
	assert.Equal(t, "Bandung", got.City)
	assert.Equal(t, "alpha@x.id", got.Email)
	assert.Equal(t, "u-1", got.CreatedBy)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	// case differences still collide with another customer's email
	_, err = uc.UpdateCustomer(ctx, &dto.UpdateCustomerInput{ID: a.ID, Email: strp("BETA@x.id")})
	assert.Equal(t, apperror.KindAlreadyExists, apperror.KindOf(err))

	// re-saving its own email is fine
	_, err = uc.UpdateCustomer(ctx, &dto.UpdateCustomerInput{ID: a.ID, Email: strp("Alpha@x.id")})
	require.NoError(t, err)

	for _, in := range []dto.UpdateCustomerInput{
		{ID: a.ID, Name: strp("  ")},
		{ID: a.ID, Email: strp("nope")},
		{ID: a.ID, Location: strp("all")},
	} {
		in := in
		_, err := uc.UpdateCustomer(ctx, &in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}

	_, err = uc.UpdateCustomer(ctx, &dto.UpdateCustomerInput{ID: "ghost", Name: strp("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListCustomers(t *testing.T) {
	ctx := context.Background()
	uc := NewCustomerUseCase(memory.NewStore(), logger.NewNop())
	for _, in := range []dto.CreateCustomerInput{
		{Name: "Citra", Email: "citra@x.id", City: "Medan", Location: "north"},
		{Name: "adi", Email: "adi@x.id", City: "Bandung", Location: "north"},
		{Name: "Budi", Email: "budi@x.id", City: "Bandung", Location: "south"},
	} {
		in := in
		_, err := uc.CreateCustomer(ctx, &in)
		require.NoError(t, err)
	}

	all, total, err := uc.ListCustomers(ctx, &dto.CustomerFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"adi", "Budi", "Citra"}, []string{all[0].Name, all[1].Name, all[2].Name})

	north, total, err := uc.ListCustomers(ctx, &dto.CustomerFilters{Location: "north", Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, north, 1)
	assert.Equal(t, "Citra", north[0].Name)

	found, total, err := uc.ListCustomers(ctx, &dto.CustomerFilters{Search: "bandung"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, found, 2)

	_, _, err = uc.ListCustomers(ctx, &dto.CustomerFilters{PageSize: -1})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
