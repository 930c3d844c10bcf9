package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// AccountUsageResponse reports whether an account is referenced by lines.
type AccountUsageResponse struct {
	AccountID string `json:"account_id"`
	InUse     bool   `json:"in_use"`
}

// PostedLineResponse is a journal line with its resolved account.
type PostedLineResponse struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID        string               `json:"id"`
	Date      string               `json:"date"`
	Memo      string               `json:"memo,omitempty"`
	Lines     []PostedLineResponse `json:"lines"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// EntryFromDomain converts a freshly posted entry to a response. Account
// names are not joined on the write path; only IDs are echoed back.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	lines := make([]PostedLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = PostedLineResponse{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}

	return &EntryResponse{
		ID:        e.ID,
		Date:      e.Date.Format(DateLayout),
		Memo:      e.Memo,
		Lines:     lines,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// PostedEntryFromDomain converts a read-side entry projection to a response.
func PostedEntryFromDomain(e *domain.PostedEntry) *EntryResponse {
	lines := make([]PostedLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = PostedLineResponse{
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			AccountType: string(l.AccountType),
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}

	return &EntryResponse{
		ID:        e.ID,
		Date:      e.Date.Format(DateLayout),
		Memo:      e.Memo,
		Lines:     lines,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// PostedEntriesFromDomain converts entry projections to responses.
func PostedEntriesFromDomain(entries []*domain.PostedEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = PostedEntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a list of journal entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// TrialBalanceRowResponse is one account's totals in the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// TrialBalanceResponse wraps the trial balance rows.
type TrialBalanceResponse struct {
	Rows []*TrialBalanceRowResponse `json:"rows"`
}

// TrialBalanceFromDomain converts trial balance rows to a response.
func TrialBalanceFromDomain(rows []*domain.TrialBalanceRow) *TrialBalanceResponse {
	result := make([]*TrialBalanceRowResponse, len(rows))
	for i, r := range rows {
		result[i] = &TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			TotalDebit:  r.TotalDebit,
			TotalCredit: r.TotalCredit,
		}
	}
	return &TrialBalanceResponse{Rows: result}
}

// ConsistencyResponse reports the ledger-wide balance check.
type ConsistencyResponse struct {
	Consistent bool `json:"consistent"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
