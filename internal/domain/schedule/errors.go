package schedule

import "errors"

var (
	ErrInvalidInterval   = errors.New("invalid slot interval")
	ErrSlotUnavailable   = errors.New("slot no longer available")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrNotFound          = errors.New("slot not found")
	ErrForbidden         = errors.New("forbidden")
)
