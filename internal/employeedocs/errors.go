package employeedocs

import "errors"

var (
	ErrNotFound     = errors.New("employee document not found")
	ErrInvalidInput = errors.New("invalid employee document input")
)
