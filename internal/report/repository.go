package report

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
)

// Repository takes consistent read-only snapshots. Location "" or "all" spans every site.
type Repository interface {
	ItemsSnapshot(ctx context.Context, location string) ([]model.InventoryItem, error)
	OrdersSnapshot(ctx context.Context, location string, from, to *time.Time) ([]model.Order, error)
	ItemLedgerSnapshot(ctx context.Context, itemID string) (*model.InventoryItem, []model.Movement, error)
	DashboardSnapshot(ctx context.Context, location string, recent int) (*dto.DashboardSnapshot, error)
}
