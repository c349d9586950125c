package review

import "errors"

var (
	ErrNotFound      = errors.New("review record not found")
	ErrFileNotFound  = errors.New("file not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidStatus = errors.New("invalid record status")
	ErrEmptyFile     = errors.New("file is empty")
)
