package order

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
)

// Repository serves committed orders. Writes happen inside ledger transactions.
type Repository interface {
	FindOrderByID(ctx context.Context, id string) (*model.Order, error)
	FindOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
}
