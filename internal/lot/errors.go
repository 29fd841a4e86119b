package lot

import "errors"

var (
	ErrNotFound             = errors.New("lot not found")
	ErrLotNumberTaken       = errors.New("lot number already exists")
	ErrInsufficientQuantity = errors.New("insufficient lot quantity")
	ErrBusy                 = errors.New("lot is locked, please retry")
)
