package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Email        string          `db:"email" json:"email"`
	Phone        string          `db:"phone" json:"phone"`
	Address      string          `db:"address" json:"address,omitempty"`
	City         string          `db:"city" json:"city,omitempty"`
	Location     string          `db:"location" json:"location"`
	TaxNumber    string          `db:"tax_number" json:"tax_number,omitempty"`
	CreditLimit  decimal.Decimal `db:"credit_limit" json:"credit_limit"`
	PaymentTerms string          `db:"payment_terms" json:"payment_terms,omitempty"`
	CreatedBy    string          `db:"created_by" json:"created_by"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
