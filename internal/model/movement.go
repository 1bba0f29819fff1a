package model

import "time"

type MovementKind string

const (
	MovementIn         MovementKind = "in"
	MovementOut        MovementKind = "out"
	MovementAdjustment MovementKind = "adjustment"
)

func (k MovementKind) Valid() bool {
	switch k {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

type ReferenceType string

const (
	ReferenceNone       ReferenceType = ""
	ReferenceInvoice    ReferenceType = "invoice"
	ReferencePurchase   ReferenceType = "purchase"
	ReferenceReturn     ReferenceType = "return"
	ReferenceAdjustment ReferenceType = "adjustment"
)

func (r ReferenceType) Valid() bool {
	switch r {
	case ReferenceNone, ReferenceInvoice, ReferencePurchase, ReferenceReturn, ReferenceAdjustment:
		return true
	}
	return false
}

// Movement is one immutable change of an item's quantity. Sequence is the ledger position,
// assigned when the movement is committed.
type Movement struct {
	Sequence         int64         `db:"seq" json:"sequence"`
	ID               string        `db:"id" json:"id"`
	ItemID           string        `db:"item_id" json:"item_id"`
	Kind             MovementKind  `db:"movement_type" json:"movement_type"`
	Quantity         int64         `db:"quantity" json:"quantity"`
	QuantityChange   int64         `db:"quantity_change" json:"quantity_change"`
	PreviousQuantity int64         `db:"previous_quantity" json:"previous_quantity"`
	NewQuantity      int64         `db:"new_quantity" json:"new_quantity"`
	ReferenceType    ReferenceType `db:"reference_type" json:"reference_type,omitempty"`
	ReferenceID      string        `db:"reference_id" json:"reference_id,omitempty"`
	Notes            string        `db:"notes" json:"notes,omitempty"`
	Location         string        `db:"location" json:"location"`
	CreatedBy        string        `db:"created_by" json:"created_by"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

// NextQuantity computes the quantity a movement of kind k with quantity q produces from prev.
// Adjustments set an absolute quantity; in and out are deltas.
func NextQuantity(k MovementKind, prev, q int64) int64 {
	switch k {
	case MovementIn:
		return prev + q
	case MovementOut:
		return prev - q
	default:
		return q
	}
}
