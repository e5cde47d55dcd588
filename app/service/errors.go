package service

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderAlreadyExists  = errors.New("order already exists")
	ErrEventNotFound       = errors.New("event not found")
	ErrEventRejected       = errors.New("event rejected")
	ErrProviderUnsupported = errors.New("provider is not supported")
	ErrNoPublicURL         = errors.New("no public url available")
)
