package dto

import "time"

type CreateLotInput struct {
	MerchantID      string
	LotNumber       string
	InitialQuantity float64
	ReceivedAt      *time.Time
	ExpiresAt       *time.Time
	Notes           string
}

type UpdateLotInput struct {
	ID         string
	MerchantID string
	LotNumber  string
	ExpiresAt  *time.Time
	Notes      string
}

type AdjustQuantityInput struct {
	MerchantID     string
	LotID          string
	QuantityChange float64
	Reason         string
	ReferenceID    string
	ReferenceType  string // 'manual_adjustment', 'sale', 'return'
	UserID         string
}
