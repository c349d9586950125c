package feedback

import "errors"

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrRecordNotFound = errors.New("review record not found")
	ErrForbidden      = errors.New("forbidden")
)
