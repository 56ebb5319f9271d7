package employees

import "errors"

var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidInput = errors.New("invalid employee input")
)
