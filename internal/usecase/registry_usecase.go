package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/bookkeeper/internal/domain"
)

const accountListCacheKey = "accounts:list"

// RegistryUseCase owns the chart of accounts: creation, mutation, and the
// cascading delete that keeps journal lines referentially intact.
type RegistryUseCase struct {
	accountRepo AccountRepository
	journalRepo JournalRepository
	txManager   TransactionManager
	idGen       IDGenerator
	cache       Cache
	cacheTTL    time.Duration
}

// NewRegistryUseCase creates a new RegistryUseCase. cache may be nil.
func NewRegistryUseCase(
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	txManager TransactionManager,
	idGen IDGenerator,
	cache Cache,
	cacheTTL time.Duration,
) *RegistryUseCase {
	return &RegistryUseCase{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		txManager:   txManager,
		idGen:       idGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name string
	Type domain.AccountType
}

// CreateAccount creates a new account with both timestamps set to now.
func (uc *RegistryUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountType(input.Type); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Type:      input.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: create account: %v", domain.ErrPersistence, err)
	}

	uc.invalidateListCache(ctx)

	return account, nil
}

// GetAccount retrieves an account by ID. Absence is ErrAccountNotFound; a
// storage fault on this read path degrades to absence as well.
func (uc *RegistryUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}

		log.Warn().Err(err).Str("account_id", id).Msg("account fetch degraded to absence")

		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// ListAccounts lists accounts ordered by recency. A storage fault returns
// an empty slice instead of an error; a failed listing is less harmful
// than a failed page.
func (uc *RegistryUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	if accounts, ok := uc.cachedList(ctx); ok {
		return accounts, nil
	}

	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("account listing degraded to empty result")

		return []*domain.Account{}, nil
	}

	uc.storeListCache(ctx, accounts)

	return accounts, nil
}

// UpdateAccountInput represents input for updating an account.
type UpdateAccountInput struct {
	Name string
	Type domain.AccountType
}

// UpdateAccount mutates name and type and refreshes updated_at.
func (uc *RegistryUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountType(input.Type); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: fetch account: %v", domain.ErrPersistence, err)
	}

	account.Name = strings.TrimSpace(input.Name)
	account.Type = input.Type
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: update account: %v", domain.ErrPersistence, err)
	}

	uc.invalidateListCache(ctx)

	return account, nil
}

// DeleteAccount removes the account and, first, every journal line that
// references it. Lines-then-account runs as one transaction; a failure at
// either step leaves the ledger untouched.
//
// Deleting referenced lines mutates posted history. See DESIGN.md for the
// stricter reject-on-reference alternative.
func (uc *RegistryUseCase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		return fmt.Errorf("%w: fetch account: %v", domain.ErrPersistence, err)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	removed, err := uc.journalRepo.DeleteLinesByAccount(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("%w: delete lines: %v", domain.ErrPersistence, err)
	}

	if err := uc.accountRepo.DeleteTx(ctx, tx, id); err != nil {
		return fmt.Errorf("%w: delete account: %v", domain.ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrPersistence, err)
	}

	if removed > 0 {
		log.Info().Str("account_id", id).Int64("lines_removed", removed).Msg("cascading account delete")
	}

	uc.invalidateListCache(ctx)

	return nil
}

// AccountInUse reports whether any posted line references the account.
func (uc *RegistryUseCase) AccountInUse(ctx context.Context, id string) (bool, error) {
	inUse, err := uc.journalRepo.HasLinesForAccount(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: account usage: %v", domain.ErrPersistence, err)
	}

	return inUse, nil
}

func (uc *RegistryUseCase) cachedList(ctx context.Context) ([]*domain.Account, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, accountListCacheKey)
	if err != nil || raw == "" {
		return nil, false
	}

	var accounts []*domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, false
	}

	return accounts, true
}

func (uc *RegistryUseCase) storeListCache(ctx context.Context, accounts []*domain.Account) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(accounts)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, accountListCacheKey, string(raw), uc.cacheTTL); err != nil {
		log.Debug().Err(err).Msg("account list cache write failed")
	}
}

func (uc *RegistryUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, accountListCacheKey); err != nil {
		log.Debug().Err(err).Msg("account list cache invalidation failed")
	}
}
