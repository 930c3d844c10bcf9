package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// DateLayout is the wire format for journal entry dates.
const DateLayout = "2006-01-02"

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name: r.Name,
		Type: domain.AccountType(r.Type),
	}
}

// UpdateAccountRequest represents a request to update an account.
type UpdateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		Name: r.Name,
		Type: domain.AccountType(r.Type),
	}
}

// JournalLineItem is one line of a candidate journal entry.
type JournalLineItem struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateEntryRequest represents a request to post a journal entry.
type CreateEntryRequest struct {
	Date  string            `json:"date"`
	Memo  string            `json:"memo,omitempty"`
	Lines []JournalLineItem `json:"lines"`
}

// ToUseCaseInput converts to use case input. An empty date stays the zero
// time; the use case rejects it with the entry-level error.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.CreateEntryInput, error) {
	var date time.Time

	if r.Date != "" {
		parsed, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			return usecase.CreateEntryInput{}, fmt.Errorf("%w: date must be formatted as %s", domain.ErrInvalidEntry, DateLayout)
		}

		date = parsed
	}

	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}

	return usecase.CreateEntryInput{
		Date:  date,
		Memo:  r.Memo,
		Lines: lines,
	}, nil
}
