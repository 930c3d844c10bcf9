package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/iho/bookkeeper/internal/domain"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name        string
		accountName string
		expectError bool
	}{
		{"valid name", "Cash", false},
		{"valid name with spaces", "Accounts Receivable", false},
		{"empty name", "", true},
		{"whitespace only", "   ", true},
		{"max length", strings.Repeat("a", 255), false},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAccountName(tt.accountName)

			if tt.expectError {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAccountType(t *testing.T) {
	for _, typ := range domain.AccountTypes {
		if err := domain.ValidateAccountType(typ); err != nil {
			t.Errorf("expected %q to be valid, got %v", typ, err)
		}
	}

	invalid := []domain.AccountType{"", "assets", "Asset", "Income", "Other"}
	for _, typ := range invalid {
		if err := domain.ValidateAccountType(typ); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation for %q, got %v", typ, err)
		}
	}
}

func TestAccountTypeValid(t *testing.T) {
	if !domain.Equity.Valid() {
		t.Error("expected Equity to be valid")
	}

	if domain.AccountType("Expences").Valid() {
		t.Error("expected misspelled type to be invalid")
	}
}
