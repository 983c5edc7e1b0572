package service

import "errors"

// Domain errors surfaced to handlers, which map them to HTTP statuses via
// errors.Is. Store-level failures are not wrapped into these — they propagate
// as-is and abort the operation with a 500.
var (
	// ErrOutOfStock: sell quantity exceeds current stock, or stock is zero.
	// Nothing is mutated.
	ErrOutOfStock = errors.New("insufficient stock")
	// ErrNotFound: unknown product/category/user id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateCategory: category name already taken.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrValidation wraps user-correctable input problems; the wrapping
	// message carries the detail.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials: bad username/password or unusable token.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
