package category

import "errors"

var (
	ErrNotFound       = errors.New("category not found")
	ErrParentNotFound = errors.New("parent category not found")
)
