package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
	"github.com/iho/bookkeeper/internal/usecase/mocks"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name       string
		debit      string
		credit     string
		sumErr     error
		wantOK     bool
		wantErrIs  error
	}{
		{name: "balanced ledger", debit: "300.30", credit: "300.30", wantOK: true},
		{name: "empty ledger", debit: "0", credit: "0", wantOK: true},
		{name: "imbalance", debit: "100", credit: "90", wantErrIs: domain.ErrConsistency},
		{name: "storage fault", sumErr: errors.New("connection reset"), wantErrIs: domain.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := mocks.NewMockJournalRepository()
			journal.SumDebitsCreditsFunc = func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
				if tt.sumErr != nil {
					return decimal.Zero, decimal.Zero, tt.sumErr
				}

				return dec(tt.debit), dec(tt.credit), nil
			}

			uc := usecase.NewLedgerUseCase(journal)

			ok, err := uc.CheckConsistency(context.Background())

			if tt.wantErrIs != nil {
				if !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("expected %v, got %v", tt.wantErrIs, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
		})
	}
}

func TestLedgerUseCase_TrialBalance(t *testing.T) {
	journal := mocks.NewMockJournalRepository()
	journal.TrialBalanceFunc = func(ctx context.Context) ([]*domain.TrialBalanceRow, error) {
		return []*domain.TrialBalanceRow{
			{AccountID: "cash", AccountName: "Cash", AccountType: domain.Assets, TotalDebit: dec("100"), TotalCredit: dec("25")},
		}, nil
	}

	uc := usecase.NewLedgerUseCase(journal)

	rows, err := uc.TrialBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 || !rows[0].TotalDebit.Equal(dec("100")) {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestLedgerUseCase_TrialBalanceFault(t *testing.T) {
	journal := mocks.NewMockJournalRepository()
	journal.TrialBalanceFunc = func(ctx context.Context) ([]*domain.TrialBalanceRow, error) {
		return nil, errors.New("connection reset")
	}

	uc := usecase.NewLedgerUseCase(journal)

	if _, err := uc.TrialBalance(context.Background()); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
