// internal/domain/errors.go
package domain

import "errors"

var (
	// ErrNoCards means the user has zero cards in the wallet.
	ErrNoCards = errors.New("no cards found for user")

	// ErrNoApplicableCard means the user has cards but none carries an
	// active, matching rule for the purchase.
	ErrNoApplicableCard = errors.New("no applicable card rules found")

	ErrUserNotFound = errors.New("user not found")
	ErrCardNotFound = errors.New("card not found")
	ErrEmailTaken   = errors.New("email already registered")
)
