package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked, sellable unit. CurrentQuantity is a cached projection of the
// movement ledger: InitialQuantity plus the QuantityChange of every movement of the item.
type InventoryItem struct {
	ID              string          `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Category        string          `db:"category" json:"category"`
	Material        string          `db:"material" json:"material"`
	Color           string          `db:"color" json:"color"`
	Size            string          `db:"size" json:"size"`
	RollLength      *float64        `db:"roll_length" json:"roll_length,omitempty"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unit_price"`
	CostPrice       decimal.Decimal `db:"cost_price" json:"cost_price"`
	InitialQuantity int64           `db:"initial_quantity" json:"initial_quantity"`
	CurrentQuantity int64           `db:"current_quantity" json:"current_quantity"`
	MinimumStock    int64           `db:"minimum_stock" json:"minimum_stock"`
	MaximumStock    int64           `db:"maximum_stock" json:"maximum_stock"`
	Barcode         string          `db:"barcode" json:"barcode"`
	SKU             string          `db:"sku" json:"sku"`
	Location        string          `db:"location" json:"location"`
	Supplier        *string         `db:"supplier" json:"supplier,omitempty"`
	Description     *string         `db:"description" json:"description,omitempty"`
	CreatedBy       string          `db:"created_by" json:"created_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentQuantity <= i.MinimumStock
}

func (i *InventoryItem) IsOutOfStock() bool {
	return i.CurrentQuantity == 0
}

// StockValue is the item's on-hand quantity valued at cost.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.CostPrice.Mul(decimal.NewFromInt(i.CurrentQuantity))
}
