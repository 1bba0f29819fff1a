package stockv1

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	Id              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Material        string          `json:"material"`
	Color           string          `json:"color"`
	Size            string          `json:"size"`
	RollLength      *float64        `json:"roll_length,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	InitialQuantity int64           `json:"initial_quantity"`
	CurrentQuantity int64           `json:"current_quantity"`
	MinimumStock    int64           `json:"minimum_stock"`
	MaximumStock    int64           `json:"maximum_stock"`
	Barcode         string          `json:"barcode"`
	Sku             string          `json:"sku"`
	Location        string          `json:"location"`
	Supplier        string          `json:"supplier,omitempty"`
	Description     string          `json:"description,omitempty"`
	LowStock        bool            `json:"low_stock"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateItemRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Material     string          `json:"material"`
	Color        string          `json:"color"`
	Size         string          `json:"size"`
	RollLength   *float64        `json:"roll_length,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Quantity     int64           `json:"quantity"`
	MinimumStock int64           `json:"minimum_stock"`
	MaximumStock int64           `json:"maximum_stock"`
	Barcode      string          `json:"barcode"`
	Sku          string          `json:"sku"`
	Location     string          `json:"location"`
	Supplier     *string         `json:"supplier,omitempty"`
	Description  *string         `json:"description,omitempty"`
}

type GetItemRequest struct {
	Id string `json:"id"`
}

// UpdateItemRequest leaves absent fields unchanged.
type UpdateItemRequest struct {
	Id           string           `json:"id"`
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Material     *string          `json:"material,omitempty"`
	Color        *string          `json:"color,omitempty"`
	Size         *string          `json:"size,omitempty"`
	RollLength   *float64         `json:"roll_length,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	MinimumStock *int64           `json:"minimum_stock,omitempty"`
	MaximumStock *int64           `json:"maximum_stock,omitempty"`
	Supplier     *string          `json:"supplier,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

type ListItemsRequest struct {
	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`
	LowStock bool   `json:"low_stock,omitempty"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
}

type ListItemsResponse struct {
	Items []*Item `json:"items"`
	Total int32   `json:"total"`
}

type Movement struct {
	Sequence         int64     `json:"sequence"`
	Id               string    `json:"id"`
	ItemId           string    `json:"item_id"`
	MovementType     string    `json:"movement_type"`
	Quantity         int64     `json:"quantity"`
	QuantityChange   int64     `json:"quantity_change"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	ReferenceType    string    `json:"reference_type,omitempty"`
	ReferenceId      string    `json:"reference_id,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Location         string    `json:"location"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

type AdjustStockRequest struct {
	ItemId        string `json:"item_id"`
	MovementType  string `json:"movement_type"`
	Quantity      int64  `json:"quantity"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceId   string `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Location      string `json:"location,omitempty"`
}

type AdjustStockResponse struct {
	Item     *Item     `json:"item"`
	Movement *Movement `json:"movement"`
}

type ListMovementsRequest struct {
	Location string `json:"location,omitempty"`
	ItemId   string `json:"item_id,omitempty"`
	OrderBy  string `json:"order_by,omitempty"`
	Desc     bool   `json:"desc,omitempty"`
	Limit    int32  `json:"limit,omitempty"`
	Offset   int32  `json:"offset,omitempty"`
}

type ListMovementsResponse struct {
	Movements []*Movement `json:"movements"`
	Total     int32       `json:"total"`
}

type ListItemMovementsRequest struct {
	ItemId string `json:"item_id"`
}

type GetMovementRequest struct {
	Id string `json:"id"`
}

type OrderLine struct {
	LineNo             int32           `json:"line_no"`
	ItemId             string          `json:"item_id"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	Total              decimal.Decimal `json:"total"`
}

type Order struct {
	Id                 string          `json:"id"`
	OrderNumber        string          `json:"order_number"`
	CustomerId         string          `json:"customer_id"`
	Lines              []*OrderLine    `json:"lines"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	Total              decimal.Decimal `json:"total"`
	Status             string          `json:"status"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	PaymentDate        *time.Time      `json:"payment_date,omitempty"`
	DueDate            *time.Time      `json:"due_date,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Location           string          `json:"location"`
	StockApplied       bool            `json:"stock_applied"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type OrderLineInput struct {
	ItemId   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	// UnitPrice defaults to the item's price when absent.
	UnitPrice          *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal  `json:"discount_amount"`
}

type CreateOrderRequest struct {
	CustomerId         string            `json:"customer_id"`
	Lines              []*OrderLineInput `json:"lines"`
	TaxPercentage      decimal.Decimal   `json:"tax_percentage"`
	TaxAmount          decimal.Decimal   `json:"tax_amount"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal   `json:"discount_amount"`
	Status             string            `json:"status"`
	PaymentAmount      decimal.Decimal   `json:"payment_amount"`
	PaymentMethod      *string           `json:"payment_method,omitempty"`
	PaymentDate        *time.Time        `json:"payment_date,omitempty"`
	DueDate            *time.Time        `json:"due_date,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	Location           string            `json:"location,omitempty"`
	IdempotencyKey     string            `json:"idempotency_key,omitempty"`
}

type GetOrderRequest struct {
	Id string `json:"id"`
}

type ListOrdersRequest struct {
	Location   string `json:"location,omitempty"`
	Status     string `json:"status,omitempty"`
	CustomerId string `json:"customer_id,omitempty"`
	Page       int32  `json:"page,omitempty"`
	PageSize   int32  `json:"page_size,omitempty"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
	Total  int32    `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Id            string           `json:"id"`
	Status        string           `json:"status"`
	PaymentAmount *decimal.Decimal `json:"payment_amount,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
}

type Customer struct {
	Id           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address,omitempty"`
	City         string          `json:"city,omitempty"`
	Location     string          `json:"location"`
	TaxNumber    string          `json:"tax_number,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CreateCustomerRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address,omitempty"`
	City         string          `json:"city,omitempty"`
	Location     string          `json:"location"`
	TaxNumber    string          `json:"tax_number,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms,omitempty"`
}

type GetCustomerRequest struct {
	Id string `json:"id"`
}

type ListCustomersRequest struct {
	Location string `json:"location,omitempty"`
	Search   string `json:"search,omitempty"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
}

type ListCustomersResponse struct {
	Customers []*Customer `json:"customers"`
	Total     int32       `json:"total"`
}

// UpdateCustomerRequest changes only the fields that are set.
type UpdateCustomerRequest struct {
	Id           string           `json:"id"`
	Name         *string          `json:"name,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	City         *string          `json:"city,omitempty"`
	Location     *string          `json:"location,omitempty"`
	TaxNumber    *string          `json:"tax_number,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty"`
	PaymentTerms *string          `json:"payment_terms,omitempty"`
}
