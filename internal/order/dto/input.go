package dto

import (
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type OrderLineInput struct {
	ItemID   string
	Quantity int64
	// UnitPrice defaults to the item's unit price when nil.
	UnitPrice          *decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
}

type CreateOrderInput struct {
	CustomerID         string
	Lines              []OrderLineInput
	TaxPercentage      decimal.Decimal
	TaxAmount          decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	Status             model.OrderStatus
	PaymentAmount      decimal.Decimal
	PaymentMethod      *string
	PaymentDate        *time.Time
	DueDate            *time.Time
	Notes              string
	Location           string
	IdempotencyKey     string
	UserID             string
	// Scope restricts the location the order may resolve to; empty or "all" allows any.
	Scope string
}

type UpdateOrderStatusInput struct {
	OrderID       string
	Status        model.OrderStatus
	PaymentAmount *decimal.Decimal
	PaymentMethod *string
	PaymentDate   *time.Time
	UserID        string
}
