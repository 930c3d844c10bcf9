package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (bool, error)
	TrialBalance(ctx context.Context) ([]*domain.TrialBalanceRow, error)
}

// LedgerHandler serves ledger-wide read models.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Consistency reports whether posted debits equal posted credits.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	ok, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrConsistency) {
			writeJSON(w, http.StatusOK, dto.ConsistencyResponse{Consistent: false})
			return
		}

		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{Consistent: ok})
}

// TrialBalance returns per-account debit and credit totals.
func (h *LedgerHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.ledgerUC.TrialBalance(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build trial balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(rows))
}
