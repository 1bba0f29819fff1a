package dto

import (
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// DashboardSnapshot is everything the dashboard reads, taken at one point in time.
type DashboardSnapshot struct {
	Items           []model.InventoryItem
	Orders          []model.Order
	CustomerCount   int
	RecentMovements []model.Movement
}

type InventorySummary struct {
	Location        string          `json:"location"`
	TotalItems      int             `json:"total_items"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
}

type LocationSales struct {
	Location   string          `json:"location"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type ProductSales struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type SalesSummary struct {
	Location          string          `json:"location"`
	From              *time.Time      `json:"from,omitempty"`
	To                *time.Time      `json:"to,omitempty"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OrderCount        int             `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ByLocation        []LocationSales `json:"by_location"`
	ByProduct         []ProductSales  `json:"by_product"`
}

type DashboardStats struct {
	Location        string           `json:"location"`
	TotalCustomers  int              `json:"total_customers"`
	TotalItems      int              `json:"total_items"`
	TotalOrders     int              `json:"total_orders"`
	TotalSales      decimal.Decimal  `json:"total_sales"`
	PaidOrders      int              `json:"paid_orders"`
	UnpaidOrders    int              `json:"unpaid_orders"`
	PendingOrders   int              `json:"pending_orders"`
	MonthlyRevenue  decimal.Decimal  `json:"monthly_revenue"`
	InventoryValue  decimal.Decimal  `json:"inventory_value"`
	LowStockItems   int              `json:"low_stock_items"`
	RecentMovements []model.Movement `json:"recent_movements"`
}

// LedgerCheck is the result of replaying an item's movements against its cached quantity.
type LedgerCheck struct {
	ItemID          string  `json:"item_id"`
	InitialQuantity int64   `json:"initial_quantity"`
	CurrentQuantity int64   `json:"current_quantity"`
	LedgerQuantity  int64   `json:"ledger_quantity"`
	Movements       int     `json:"movements"`
	ChainBreaks     []int64 `json:"chain_breaks,omitempty"`
	Consistent      bool    `json:"consistent"`
}
