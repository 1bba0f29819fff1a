package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderUnpaid    OrderStatus = "unpaid"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderDraft:  {OrderUnpaid, OrderPaid},
	OrderUnpaid: {OrderPaid, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderDraft, OrderUnpaid, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

// MovesStock reports whether an order in this status has taken its lines out of stock.
func (s OrderStatus) MovesStock() bool {
	return s != OrderDraft
}

func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderLine struct {
	OrderID            string          `db:"order_id" json:"-"`
	LineNo             int             `db:"line_no" json:"line_no"`
	ItemID             string          `db:"item_id" json:"item_id"`
	Quantity           int64           `db:"quantity" json:"quantity"`
	UnitPrice          decimal.Decimal `db:"unit_price" json:"unit_price"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	Total              decimal.Decimal `db:"total" json:"total"`
}

// Order is a sales invoice. Lines are fixed at creation; only status and payment fields
// change afterwards.
type Order struct {
	ID                 string          `db:"id" json:"id"`
	Number             string          `db:"order_number" json:"order_number"`
	CustomerID         string          `db:"customer_id" json:"customer_id"`
	Lines              []OrderLine     `db:"-" json:"lines"`
	Subtotal           decimal.Decimal `db:"subtotal" json:"subtotal"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxPercentage      decimal.Decimal `db:"tax_percentage" json:"tax_percentage"`
	TaxAmount          decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	Total              decimal.Decimal `db:"total" json:"total"`
	Status             OrderStatus     `db:"status" json:"status"`
	PaymentAmount      decimal.Decimal `db:"payment_amount" json:"payment_amount"`
	PaymentMethod      *string         `db:"payment_method" json:"payment_method,omitempty"`
	PaymentDate        *time.Time      `db:"payment_date" json:"payment_date,omitempty"`
	DueDate            *time.Time      `db:"due_date" json:"due_date,omitempty"`
	Notes              string          `db:"notes" json:"notes,omitempty"`
	Location           string          `db:"location" json:"location"`
	IdempotencyKey     *string         `db:"idempotency_key" json:"idempotency_key,omitempty"`
	StockApplied       bool            `db:"stock_applied" json:"stock_applied"`
	CreatedBy          string          `db:"created_by" json:"created_by"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Clone returns a copy that shares no slice or pointer state with o.
func (o *Order) Clone() Order {
	c := *o
	c.Lines = append([]OrderLine(nil), o.Lines...)
	if o.PaymentMethod != nil {
		v := *o.PaymentMethod
		c.PaymentMethod = &v
	}
	if o.PaymentDate != nil {
		v := *o.PaymentDate
		c.PaymentDate = &v
	}
	if o.DueDate != nil {
		v := *o.DueDate
		c.DueDate = &v
	}
	if o.IdempotencyKey != nil {
		v := *o.IdempotencyKey
		c.IdempotencyKey = &v
	}
	return c
}
