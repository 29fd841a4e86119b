package model

import "time"

// Lot is a received inventory batch. SKUs link to the lot their stock is
// drawn from; CurrentQuantity is the remaining quantity in the batch.
type Lot struct {
	BaseModel
	MerchantID      string     `db:"merchant_id" json:"merchant_id"`
	LotNumber       string     `db:"lot_number" json:"lot_number"`
	CurrentQuantity float64    `db:"current_quantity" json:"current_quantity"`
	InitialQuantity float64    `db:"initial_quantity" json:"initial_quantity"`
	ReceivedAt      *time.Time `db:"received_at" json:"received_at"`
	ExpiresAt       *time.Time `db:"expires_at" json:"expires_at"`
	Notes           *string    `db:"notes" json:"notes"`
}

type LotMovement struct {
	ID             string    `db:"id" json:"id"`
	MerchantID     string    `db:"merchant_id" json:"merchant_id"`
	LotID          string    `db:"lot_id" json:"lot_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange float64   `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64   `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64   `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
