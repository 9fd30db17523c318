package service

import "errors"

// Sentinel errors handlers translate into response codes. Authentication and
// authorization failures come from pkg/session and are re-exported here so
// handlers switch on a single package.
var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicate      = errors.New("already exists")
	ErrNotFound       = errors.New("not found")
	ErrPaymentGateway = errors.New("payment gateway failure")
	ErrContentMissing = errors.New("content missing")
)
