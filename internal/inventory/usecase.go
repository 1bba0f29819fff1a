package inventory

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.InventoryItem, error)
	ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, *model.Movement, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error)
	ListItemMovements(ctx context.Context, itemID string) ([]model.Movement, error)
	GetMovement(ctx context.Context, id string) (*model.Movement, error)
}
