package inventory

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
)

// Repository reads items and movements and writes item details. Quantities are changed
// only through ledger.Writer.
type Repository interface {
	CreateItem(ctx context.Context, item *model.InventoryItem) error
	UpdateItemDetails(ctx context.Context, item *model.InventoryItem) error
	FindItemByID(ctx context.Context, id string) (*model.InventoryItem, error)
	FindItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error)

	// Movements, read only
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error)
	ListItemMovements(ctx context.Context, itemID string) ([]model.Movement, error)
	FindMovementByID(ctx context.Context, id string) (*model.Movement, error)
}
