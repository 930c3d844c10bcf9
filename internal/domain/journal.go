package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MinContributingLines is the smallest number of contributing lines a
// postable entry may carry. Double-entry needs a debit side and a credit
// side.
const MinContributingLines = 2

// JournalLine is one leg of a journal entry. Lines have no existence
// outside their owning entry; an account is only referenced, never owned.
type JournalLine struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Contributing reports whether the line carries any amount. Zero/zero
// lines are dropped during normalization instead of being rejected.
func (l JournalLine) Contributing() bool {
	return l.Debit.IsPositive() || l.Credit.IsPositive()
}

// Validate checks the per-line invariants against an account snapshot.
func (l JournalLine) Validate(accounts map[string]*Account) error {
	if l.AccountID == "" {
		return fmt.Errorf("%w: missing account reference", ErrInvalidLine)
	}

	if _, ok := accounts[l.AccountID]; !ok {
		return fmt.Errorf("%w: account %q does not exist", ErrInvalidLine, l.AccountID)
	}

	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidLine)
	}

	return nil
}

// JournalEntry is a balanced set of lines posted as one atomic unit.
// Entries are immutable once posted.
type JournalEntry struct {
	ID        string
	Date      time.Time
	Memo      string
	Lines     []JournalLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Totals returns the debit and credit sums over lines. Sums are exact;
// amounts never pass through binary floats.
func Totals(lines []JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	return debit, credit
}

// NormalizeLines validates every candidate line against the account
// snapshot, drops non-contributing lines, and enforces the minimum line
// count and the balance invariant. The returned slice is what gets posted.
//
// Any line failure aborts the whole entry; there is no partial acceptance.
func NormalizeLines(lines []JournalLine, accounts map[string]*Account) ([]JournalLine, error) {
	for _, l := range lines {
		if err := l.Validate(accounts); err != nil {
			return nil, err
		}
	}

	contributing := make([]JournalLine, 0, len(lines))
	for _, l := range lines {
		if l.Contributing() {
			contributing = append(contributing, l)
		}
	}

	if len(contributing) < MinContributingLines {
		return nil, fmt.Errorf("%w: at least %d contributing lines required, got %d",
			ErrInvalidEntry, MinContributingLines, len(contributing))
	}

	debit, credit := Totals(contributing)
	if !debit.Equal(credit) {
		return nil, fmt.Errorf("%w: debits total %s, credits total %s",
			ErrUnbalancedEntry, debit, credit)
	}

	return contributing, nil
}

// PostedLine is a journal line joined with its account for read views.
type PostedLine struct {
	AccountID   string
	AccountName string
	AccountType AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// PostedEntry is the read-side projection of a journal entry with
// resolved account references.
type PostedEntry struct {
	ID        string
	Date      time.Time
	Memo      string
	Lines     []PostedLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrialBalanceRow aggregates posted debits and credits for one account.
type TrialBalanceRow struct {
	AccountID   string
	AccountName string
	AccountType AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
