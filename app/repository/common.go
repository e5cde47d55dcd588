package repository

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

const defaultCapacity = 256

func normalizeCapacity(capacity int) int {
	if capacity <= 0 {
		return defaultCapacity
	}
	return capacity
}
