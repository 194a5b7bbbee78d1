package service

import "errors"

// Service errors.
var (
	ErrClientClosed = errors.New("delve: client is closed")
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
)
