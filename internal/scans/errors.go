package scans

import "errors"

var (
	ErrNotFound     = errors.New("scan batch not found")
	ErrInvalidInput = errors.New("invalid scan batch input")
)

const (
	ErrorCodeVisionTimeout = "VISION_TIMEOUT"
	ErrorCodeVisionOutput  = "VISION_OUTPUT_INVALID"
	ErrorCodeStorage       = "STORAGE_ERROR"
	ErrorCodeInternal      = "INTERNAL_ERROR"
)
