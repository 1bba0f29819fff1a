package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory"
	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/storage/memory"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (inventory.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	w := ledger.NewWriter(store, ledger.Config{AllowNegativeStock: true, MaxRetries: 2}, logger.NewNop())
	return NewInventoryUseCase(store, w, logger.NewNop()), store
}

func validInput() *dto.CreateItemInput {
	return &dto.CreateItemInput{
		Name:         "Persian Red 2x3",
		Category:     "rug",
		Material:     "wool",
		Color:        "red",
		Size:         "2x3",
		UnitPrice:    decimal.NewFromInt(150),
		CostPrice:    decimal.NewFromInt(90),
		Quantity:     10,
		MinimumStock: 3,
		MaximumStock: 40,
		Barcode:      "8991234567890",
		SKU:          "RUG-RED-23",
		Location:     "north",
		UserID:       "u-1",
	}
}

func TestCreateItem(t *testing.T) {
	uc, _ := newUseCase(t)

	item, err := uc.CreateItem(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, int64(10), item.InitialQuantity)
	assert.Equal(t, int64(10), item.CurrentQuantity)
	assert.Equal(t, "u-1", item.CreatedBy)

	got, err := uc.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.SKU, got.SKU)
}

func TestCreateItem_validation(t *testing.T) {
	uc, _ := newUseCase(t)

	mutations := map[string]func(in *dto.CreateItemInput){
		"missing name":      func(in *dto.CreateItemInput) { in.Name = " " },
		"missing sku":       func(in *dto.CreateItemInput) { in.SKU = "" },
		"reserved location": func(in *dto.CreateItemInput) { in.Location = "all" },
		"negative price":    func(in *dto.CreateItemInput) { in.UnitPrice = decimal.NewFromInt(-1) },
		"negative quantity": func(in *dto.CreateItemInput) { in.Quantity = -1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(in)
			_, err := uc.CreateItem(context.Background(), in)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestCreateItem_duplicateBarcode(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.CreateItem(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.SKU = "RUG-OTHER"
	_, err = uc.CreateItem(context.Background(), in)
	assert.Equal(t, apperror.KindAlreadyExists, apperror.KindOf(err))
}

func TestUpdateItem_leavesQuantityAlone(t *testing.T) {
	uc, _ := newUseCase(t)
	item, err := uc.CreateItem(context.Background(), validInput())
	require.NoError(t, err)

	name := "Persian Crimson"
	price := decimal.NewFromInt(175)
	minStock := int64(5)
	got, err := uc.UpdateItem(context.Background(), &dto.UpdateItemInput{ID: item.ID, Name: &name, UnitPrice: &price, MinimumStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, "Persian Crimson", got.Name)
	assert.True(t, price.Equal(got.UnitPrice))
	assert.Equal(t, int64(5), got.MinimumStock)
	assert.Equal(t, int64(10), got.CurrentQuantity)

	empty := ""
	_, err = uc.UpdateItem(context.Background(), &dto.UpdateItemInput{ID: item.ID, Color: &empty})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = uc.UpdateItem(context.Background(), &dto.UpdateItemInput{ID: "ghost", Name: &name})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAdjustStock(t *testing.T) {
	uc, _ := newUseCase(t)
	item, err := uc.CreateItem(context.Background(), validInput())
	require.NoError(t, err)

	got, mv, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ItemID: item.ID, MovementType: model.MovementIn, Quantity: 5,
		ReferenceType: model.ReferencePurchase, ReferenceID: "PO-1", Notes: "restock", UserID: "u-2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.CurrentQuantity)
	assert.Equal(t, int64(5), mv.QuantityChange)
	assert.Equal(t, model.ReferencePurchase, mv.ReferenceType)

	movs, err := uc.ListItemMovements(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)

	found, err := uc.GetMovement(context.Background(), mv.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-1", found.ReferenceID)
}

func TestListMovements_rejectsUnknownOrder(t *testing.T) {
	uc, _ := newUseCase(t)
	_, _, err := uc.ListMovements(context.Background(), &dto.MovementFilters{OrderBy: "notes"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestListItems_lowStock(t *testing.T) {
	uc, _ := newUseCase(t)
	item, err := uc.CreateItem(context.Background(), validInput())
	require.NoError(t, err)

	other := validInput()
	other.Barcode, other.SKU, other.Location = "111", "RUG-2", "south"
	_, err = uc.CreateItem(context.Background(), other)
	require.NoError(t, err)

	_, _, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{ItemID: item.ID, MovementType: model.MovementAdjustment, Quantity: 2})
	require.NoError(t, err)

	items, total, err := uc.ListItems(context.Background(), &dto.ItemFilters{Location: "all", LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, item.ID, items[0].ID)

	_, total, err = uc.ListItems(context.Background(), &dto.ItemFilters{Location: "south"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
