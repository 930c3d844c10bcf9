package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Account, error)
	// List returns accounts ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	// GetByIDsForShare locks the account rows inside tx so a concurrent
	// delete cannot commit until the caller's transaction resolves.
	GetByIDsForShare(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
}

// JournalRepository defines data access for journal entries and their lines.
type JournalRepository interface {
	// CreateWithLines persists the entry header and all its lines inside
	// tx as one unit. The store never sees a header without its lines.
	CreateWithLines(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	// DeleteLinesByAccount removes every line referencing the account and
	// returns how many were removed.
	DeleteLinesByAccount(ctx context.Context, tx Transaction, accountID string) (int64, error)
	HasLinesForAccount(ctx context.Context, accountID string) (bool, error)
	// ListWithLinesAndAccounts returns entries ordered by date, newest
	// first, with every line joined to its account.
	ListWithLinesAndAccounts(ctx context.Context) ([]*domain.PostedEntry, error)
	SumDebitsCredits(ctx context.Context) (debit, credit decimal.Decimal, err error)
	TrialBalance(ctx context.Context) ([]*domain.TrialBalanceRow, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines read-side caching operations. Correctness never depends
// on the cache; every error from it is ignorable.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
