package dto

type OrderFilters struct {
	Location   string
	Status     string
	CustomerID string
	Page       int
	PageSize   int
}
