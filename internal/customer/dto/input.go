package dto

import "github.com/shopspring/decimal"

type CreateCustomerInput struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	City         string
	Location     string
	TaxNumber    string
	CreditLimit  decimal.Decimal
	PaymentTerms string
	UserID       string
}

// UpdateCustomerInput leaves nil fields unchanged.
type UpdateCustomerInput struct {
	ID           string
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
	Location     *string
	TaxNumber    *string
	CreditLimit  *decimal.Decimal
	PaymentTerms *string
}

type CustomerFilters struct {
	Location string
	// Search matches name, email or city, case-insensitively.
	Search   string
	Page     int
	PageSize int
}
