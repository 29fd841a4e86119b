package product

import "errors"

var (
	ErrNotFound             = errors.New("product not found")
	ErrSlugTaken            = errors.New("slug already exists")
	ErrDuplicateCombination = errors.New("duplicate attribute combination")
)
