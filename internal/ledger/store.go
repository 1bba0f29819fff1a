// Package ledger owns every change to an item's quantity. A change is a locked read of the
// item, a new quantity and one appended movement, all inside a single storage transaction.
package ledger

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
)

// Tx is the set of storage operations that must share one transaction. Implementations
// hold the locks they take until the transaction ends.
type Tx interface {
	// LockItem returns the item and holds its lock until commit or rollback.
	LockItem(ctx context.Context, itemID string) (*model.InventoryItem, error)
	GetItem(ctx context.Context, itemID string) (*model.InventoryItem, error)
	// SetQuantity requires the item to be locked by this transaction.
	SetQuantity(ctx context.Context, itemID string, qty int64, at time.Time) error
	// AppendMovement fills m.Sequence no later than commit.
	AppendMovement(ctx context.Context, m *model.Movement) error

	NextOrderNumber(ctx context.Context, year int) (int64, error)
	InsertOrder(ctx context.Context, o *model.Order) error
	FindOrderByIdempotencyKey(ctx context.Context, key string) (*model.Order, error)
	LockOrder(ctx context.Context, orderID string) (*model.Order, error)
	UpdateOrder(ctx context.Context, o *model.Order) error

	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
}

// TxManager runs fn inside a transaction. The transaction commits when fn returns nil and
// rolls back otherwise, leaving no trace of fn's writes.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Notifier observes movements after they are durable.
type Notifier interface {
	OnMovementsCommitted(ctx context.Context, movements []model.Movement) error
}
