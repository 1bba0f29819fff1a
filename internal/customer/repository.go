package customer

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
)

type Repository interface {
	CreateCustomer(ctx context.Context, c *model.Customer) error
	FindCustomerByID(ctx context.Context, id string) (*model.Customer, error)
	FindCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error)
	UpdateCustomer(ctx context.Context, c *model.Customer) error
}
