package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without Func overrides it behaves as an in-memory store.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsFunc         func(ctx context.Context, ids []string) ([]*domain.Account, error)
	ListFunc             func(ctx context.Context) ([]*domain.Account, error)
	UpdateFunc           func(ctx context.Context, account *domain.Account) error
	DeleteTxFunc         func(ctx context.Context, tx usecase.Transaction, id string) error
	GetByIDsForShareFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing any Func override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) GetByIDsForShare(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForShareFunc != nil {
		return m.GetByIDsForShareFunc(ctx, tx, ids)
	}
	return m.GetByIDs(ctx, ids)
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateWithLinesFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	DeleteLinesByAccountFunc     func(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error)
	HasLinesForAccountFunc       func(ctx context.Context, accountID string) (bool, error)
	ListWithLinesAndAccountsFunc func(ctx context.Context) ([]*domain.PostedEntry, error)
	SumDebitsCreditsFunc         func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
	TrialBalanceFunc             func(ctx context.Context) ([]*domain.TrialBalanceRow, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

// Entries returns the stored entries for assertions.
func (m *MockJournalRepository) Entries() []*domain.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.JournalEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	return entries
}

func (m *MockJournalRepository) CreateWithLines(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateWithLinesFunc != nil {
		return m.CreateWithLinesFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) DeleteLinesByAccount(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error) {
	if m.DeleteLinesByAccountFunc != nil {
		return m.DeleteLinesByAccountFunc(ctx, tx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, entry := range m.entries {
		kept := entry.Lines[:0]
		for _, l := range entry.Lines {
			if l.AccountID == accountID {
				removed++
				continue
			}
			kept = append(kept, l)
		}
		entry.Lines = kept
		m.entries[id] = entry
	}
	return removed, nil
}

func (m *MockJournalRepository) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	if m.HasLinesForAccountFunc != nil {
		return m.HasLinesForAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.entries {
		for _, l := range entry.Lines {
			if l.AccountID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *MockJournalRepository) ListWithLinesAndAccounts(ctx context.Context) ([]*domain.PostedEntry, error) {
	if m.ListWithLinesAndAccountsFunc != nil {
		return m.ListWithLinesAndAccountsFunc(ctx)
	}
	return []*domain.PostedEntry{}, nil
}

func (m *MockJournalRepository) SumDebitsCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumDebitsCreditsFunc != nil {
		return m.SumDebitsCreditsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	debit, credit := decimal.Zero, decimal.Zero
	for _, entry := range m.entries {
		d, c := domain.Totals(entry.Lines)
		debit = debit.Add(d)
		credit = credit.Add(c)
	}
	return debit, credit, nil
}

func (m *MockJournalRepository) TrialBalance(ctx context.Context) ([]*domain.TrialBalanceRow, error) {
	if m.TrialBalanceFunc != nil {
		return m.TrialBalanceFunc(ctx)
	}
	return []*domain.TrialBalanceRow{}, nil
}

// MockTransaction records commit/rollback calls.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu   sync.Mutex
	Txs  []*MockTransaction
	Fail error

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	if m.Fail != nil {
		return nil, m.Fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// LastTx returns the most recently started transaction, if any.
func (m *MockTransactionManager) LastTx() *MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Txs) == 0 {
		return nil
	}
	return m.Txs[len(m.Txs)-1]
}
