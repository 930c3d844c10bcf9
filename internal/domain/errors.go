package domain

import "errors"

var (
	// Registry errors
	ErrValidation      = errors.New("validation failed")
	ErrAccountNotFound = errors.New("account not found")

	// Journal errors
	ErrInvalidLine     = errors.New("invalid journal line")
	ErrInvalidEntry    = errors.New("invalid journal entry")
	ErrUnbalancedEntry = errors.New("journal entry does not balance")

	// Storage errors
	ErrReferenceViolation = errors.New("referenced account no longer exists")
	ErrPersistence        = errors.New("persistence failure")
	ErrConsistency        = errors.New("ledger consistency violation")
)
