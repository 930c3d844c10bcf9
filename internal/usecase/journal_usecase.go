package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/bookkeeper/internal/domain"
)

// JournalUseCase validates and posts journal entries and serves the
// read-side projections.
type JournalUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	journalRepo JournalRepository
	idGen       IDGenerator
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	idGen IDGenerator,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		idGen:       idGen,
	}
}

// CreateEntryInput represents a candidate journal entry.
type CreateEntryInput struct {
	Date  time.Time
	Memo  string
	Lines []domain.JournalLine
}

// CreateEntry validates the candidate entry and posts it atomically:
// either the header and every line exist afterwards, or nothing does.
//
// Account references are checked twice. The snapshot check before the
// transaction fails fast with a line-level error; the row locks inside
// the transaction are what actually prevent a concurrent account delete
// from committing a dangling reference.
func (uc *JournalUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.JournalEntry, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidEntry)
	}

	snapshot, err := uc.accountSnapshot(ctx, accountIDs(input.Lines))
	if err != nil {
		return nil, err
	}

	lines, err := domain.NormalizeLines(input.Lines, snapshot)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entry := &domain.JournalEntry{
		ID:        uc.idGen.Generate(),
		Date:      input.Date,
		Memo:      input.Memo,
		Lines:     lines,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", domain.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	ids := accountIDs(lines)

	locked, err := uc.accountRepo.GetByIDsForShare(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: lock accounts: %v", domain.ErrPersistence, err)
	}

	if len(locked) != len(ids) {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, domain.ErrReferenceViolation)
	}

	if err := uc.journalRepo.CreateWithLines(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("%w: post entry: %v", domain.ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", domain.ErrPersistence, err)
	}

	return entry, nil
}

// ListEntries returns posted entries ordered by date, newest first, with
// every line joined to its account. A dangling account reference is a
// consistency violation and surfaces as such; plain storage faults on
// this read path degrade to an empty result.
func (uc *JournalUseCase) ListEntries(ctx context.Context) ([]*domain.PostedEntry, error) {
	entries, err := uc.journalRepo.ListWithLinesAndAccounts(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConsistency) {
			return nil, err
		}

		log.Warn().Err(err).Msg("journal listing degraded to empty result")

		return []*domain.PostedEntry{}, nil
	}

	return entries, nil
}

// accountSnapshot fetches the referenced accounts keyed by ID. Unknown
// IDs are simply absent from the map; line validation reports them.
func (uc *JournalUseCase) accountSnapshot(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	if len(ids) == 0 {
		return map[string]*domain.Account{}, nil
	}

	accounts, err := uc.accountRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: account snapshot: %v", domain.ErrPersistence, err)
	}

	m := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}

	return m, nil
}

// accountIDs returns the sorted unique account IDs referenced by lines.
// Sorted so rows are always locked in the same order.
func accountIDs(lines []domain.JournalLine) []string {
	seen := make(map[string]bool, len(lines))

	var ids []string
	for _, l := range lines {
		if l.AccountID == "" || seen[l.AccountID] {
			continue
		}

		seen[l.AccountID] = true
		ids = append(ids, l.AccountID)
	}

	sort.Strings(ids)

	return ids
}
