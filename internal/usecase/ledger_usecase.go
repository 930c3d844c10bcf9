package usecase

import (
	"context"
	"fmt"

	"github.com/iho/bookkeeper/internal/domain"
)

// LedgerUseCase handles ledger-wide read models.
type LedgerUseCase struct {
	journalRepo JournalRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(journalRepo JournalRepository) *LedgerUseCase {
	return &LedgerUseCase{journalRepo: journalRepo}
}

// CheckConsistency verifies that posted debits equal posted credits over
// the whole ledger. Every accepted entry balances, so an imbalance here
// means the stored state was corrupted after the fact.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	debit, credit, err := uc.journalRepo.SumDebitsCredits(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: consistency scan: %v", domain.ErrPersistence, err)
	}

	if !debit.Equal(credit) {
		return false, fmt.Errorf("%w: debits total %s, credits total %s",
			domain.ErrConsistency, debit, credit)
	}

	return true, nil
}

// TrialBalance returns per-account debit and credit totals.
func (uc *LedgerUseCase) TrialBalance(ctx context.Context) ([]*domain.TrialBalanceRow, error) {
	rows, err := uc.journalRepo.TrialBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: trial balance: %v", domain.ErrPersistence, err)
	}

	return rows, nil
}
