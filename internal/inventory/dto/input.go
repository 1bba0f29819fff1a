package dto

import (
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type CreateItemInput struct {
	Name         string
	Category     string
	Material     string
	Color        string
	Size         string
	RollLength   *float64
	UnitPrice    decimal.Decimal
	CostPrice    decimal.Decimal
	Quantity     int64
	MinimumStock int64
	MaximumStock int64
	Barcode      string
	SKU          string
	Location     string
	Supplier     *string
	Description  *string
	UserID       string
}

// UpdateItemInput changes descriptive and pricing fields. Nil fields are left untouched.
type UpdateItemInput struct {
	ID           string
	Name         *string
	Category     *string
	Material     *string
	Color        *string
	Size         *string
	RollLength   *float64
	UnitPrice    *decimal.Decimal
	CostPrice    *decimal.Decimal
	MinimumStock *int64
	MaximumStock *int64
	Supplier     *string
	Description  *string
}

type AdjustStockInput struct {
	ItemID        string
	MovementType  model.MovementKind
	Quantity      int64
	ReferenceType model.ReferenceType
	ReferenceID   string
	Notes         string
	Location      string
	UserID        string
}
