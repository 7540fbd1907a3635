package services

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("forbidden")
)
