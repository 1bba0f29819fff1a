package report

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
)

type UseCase interface {
	InventorySummary(ctx context.Context, location string) (*dto.InventorySummary, error)
	SalesSummary(ctx context.Context, location string, from, to *time.Time) (*dto.SalesSummary, error)
	LowStockItems(ctx context.Context, location string) ([]model.InventoryItem, error)
	DashboardStats(ctx context.Context, location string) (*dto.DashboardStats, error)
	VerifyItemLedger(ctx context.Context, itemID string) (*dto.LedgerCheck, error)
}
