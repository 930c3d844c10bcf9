package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func snapshot(ids ...string) map[string]*domain.Account {
	m := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		m[id] = &domain.Account{ID: id, Name: "account " + id, Type: domain.Assets}
	}

	return m
}

func TestJournalLineValidate(t *testing.T) {
	accounts := snapshot("acc-1")

	tests := []struct {
		name        string
		line        domain.JournalLine
		expectError bool
	}{
		{
			name: "valid debit line",
			line: domain.JournalLine{AccountID: "acc-1", Debit: dec("100"), Credit: decimal.Zero},
		},
		{
			name: "valid credit line",
			line: domain.JournalLine{AccountID: "acc-1", Debit: decimal.Zero, Credit: dec("100")},
		},
		{
			name: "zero line is valid at line level",
			line: domain.JournalLine{AccountID: "acc-1"},
		},
		{
			name:        "missing account id",
			line:        domain.JournalLine{Debit: dec("10")},
			expectError: true,
		},
		{
			name:        "unknown account",
			line:        domain.JournalLine{AccountID: "ghost", Debit: dec("10")},
			expectError: true,
		},
		{
			name:        "negative debit",
			line:        domain.JournalLine{AccountID: "acc-1", Debit: dec("-5")},
			expectError: true,
		},
		{
			name:        "negative credit",
			line:        domain.JournalLine{AccountID: "acc-1", Credit: dec("-0.01")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate(accounts)

			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidLine) {
					t.Errorf("expected ErrInvalidLine, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeLines(t *testing.T) {
	accounts := snapshot("cash", "revenue", "tax")

	tests := []struct {
		name      string
		lines     []domain.JournalLine
		wantErr   error
		wantCount int
	}{
		{
			name: "balanced two-line entry",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("100")},
				{AccountID: "revenue", Credit: dec("100")},
			},
			wantCount: 2,
		},
		{
			name: "zero lines are filtered, not rejected",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("100")},
				{AccountID: "tax"},
				{AccountID: "revenue", Credit: dec("100")},
			},
			wantCount: 2,
		},
		{
			name: "unbalanced entry",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("100")},
				{AccountID: "revenue", Credit: dec("90")},
			},
			wantErr: domain.ErrUnbalancedEntry,
		},
		{
			name: "single contributing line",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("100")},
				{AccountID: "revenue"},
			},
			wantErr: domain.ErrInvalidEntry,
		},
		{
			name:    "no lines at all",
			lines:   nil,
			wantErr: domain.ErrInvalidEntry,
		},
		{
			name: "negative amount fails before balance check",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("-5")},
				{AccountID: "revenue", Credit: dec("-5")},
			},
			wantErr: domain.ErrInvalidLine,
		},
		{
			name: "unknown account aborts whole entry",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("100")},
				{AccountID: "ghost", Credit: dec("100")},
			},
			wantErr: domain.ErrInvalidLine,
		},
		{
			name: "split entry balances across many lines",
			lines: []domain.JournalLine{
				{AccountID: "cash", Debit: dec("110")},
				{AccountID: "revenue", Credit: dec("100")},
				{AccountID: "tax", Credit: dec("10")},
			},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeLines(tt.lines, accounts)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != tt.wantCount {
				t.Errorf("expected %d lines, got %d", tt.wantCount, len(got))
			}
		})
	}
}

// Fractional amounts that misbehave under binary floats must balance
// exactly here: 0.10 + 0.20 == 0.30.
func TestNormalizeLinesExactDecimalBalance(t *testing.T) {
	accounts := snapshot("cash", "fees", "revenue")

	lines := []domain.JournalLine{
		{AccountID: "cash", Debit: dec("0.10")},
		{AccountID: "fees", Debit: dec("0.20")},
		{AccountID: "revenue", Credit: dec("0.30")},
	}

	got, err := domain.NormalizeLines(lines, accounts)
	if err != nil {
		t.Fatalf("expected exact balance, got %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}

	debit, credit := domain.Totals(got)
	if !debit.Equal(credit) {
		t.Errorf("totals diverge: debit %s, credit %s", debit, credit)
	}

	if !debit.Equal(dec("0.30")) {
		t.Errorf("expected total 0.30, got %s", debit)
	}
}

func TestTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: dec("1.11")},
		{AccountID: "b", Debit: dec("2.22"), Credit: dec("0.01")},
		{AccountID: "c", Credit: dec("3.32")},
	}

	debit, credit := domain.Totals(lines)

	if !debit.Equal(dec("3.33")) {
		t.Errorf("expected debit total 3.33, got %s", debit)
	}

	if !credit.Equal(dec("3.33")) {
		t.Errorf("expected credit total 3.33, got %s", credit)
	}
}

func TestContributing(t *testing.T) {
	if (domain.JournalLine{AccountID: "a"}).Contributing() {
		t.Error("zero/zero line must not contribute")
	}

	if !(domain.JournalLine{AccountID: "a", Debit: dec("0.01")}).Contributing() {
		t.Error("debit line must contribute")
	}

	if !(domain.JournalLine{AccountID: "a", Credit: dec("5")}).Contributing() {
		t.Error("credit line must contribute")
	}
}
