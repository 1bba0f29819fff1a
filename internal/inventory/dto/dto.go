package dto

type ItemFilters struct {
	Location string // "" or "all" for every location
	Category string
	LowStock bool // current_quantity <= minimum_stock
	Page     int
	PageSize int
}

type MovementFilters struct {
	Location string
	ItemID   string
	OrderBy  string // created_at, quantity or movement_type
	Desc     bool
	Limit    int
	Offset   int
}

var MovementOrderColumns = map[string]bool{
	"created_at":    true,
	"quantity":      true,
	"movement_type": true,
}
