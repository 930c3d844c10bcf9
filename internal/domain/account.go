package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccountType classifies an account within the chart of accounts.
type AccountType string

const (
	Assets      AccountType = "Assets"
	Liabilities AccountType = "Liabilities"
	Equity      AccountType = "Equity"
	Revenue     AccountType = "Revenue"
	Expenses    AccountType = "Expenses"
)

// AccountTypes is the closed classification set, in presentation order.
var AccountTypes = []AccountType{Assets, Liabilities, Equity, Revenue, Expenses}

// Valid reports whether t belongs to the closed classification set.
func (t AccountType) Valid() bool {
	switch t {
	case Assets, Liabilities, Equity, Revenue, Expenses:
		return true
	}

	return false
}

// Account is a named, typed ledger account. The ID is assigned at creation
// and identifies the account for the lifetime of the ledger.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxAccountNameLength bounds display names.
const MaxAccountNameLength = 255

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, MaxAccountNameLength)
	}

	return nil
}

// ValidateAccountType validates an account classification.
func ValidateAccountType(t AccountType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q is not a valid account type", ErrValidation, string(t))
	}

	return nil
}
