package domain

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrConflict      = errors.New("resource conflict")
	ErrValidation    = errors.New("validation failed")
	ErrCorruptStore  = errors.New("corrupt store")
	ErrDuplicateDate = errors.New("diary entry already exists for date")
)
