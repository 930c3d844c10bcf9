package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/infrastructure/metrics"
	"github.com/iho/bookkeeper/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context) ([]*domain.PostedEntry, error)
}

// JournalHandler handles journal entry HTTP requests.
type JournalHandler struct {
	journalUC JournalService
	metrics   *metrics.Metrics
}

// NewJournalHandler creates a new JournalHandler. metrics may be nil.
func NewJournalHandler(journalUC JournalService, m *metrics.Metrics) *JournalHandler {
	return &JournalHandler{journalUC: journalUC, metrics: m}
}

// Create posts a journal entry.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		h.recordRejection(err)
		writeError(w, mapDomainError(err), "failed to post entry", err.Error())

		return
	}

	entry, err := h.journalUC.CreateEntry(r.Context(), input)
	if err != nil {
		h.recordRejection(err)
		writeError(w, mapDomainError(err), "failed to post entry", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.EntriesPosted.Inc()
		h.metrics.EntryLines.Observe(float64(len(entry.Lines)))
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// List lists posted entries, newest first, with joined accounts.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journalUC.ListEntries(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.PostedEntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

func (h *JournalHandler) recordRejection(err error) {
	if h.metrics == nil {
		return
	}

	h.metrics.EntriesRejected.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrReferenceViolation):
		return "reference_violation"
	case errors.Is(err, domain.ErrUnbalancedEntry):
		return "unbalanced"
	case errors.Is(err, domain.ErrInvalidLine):
		return "invalid_line"
	case errors.Is(err, domain.ErrInvalidEntry):
		return "invalid_entry"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	default:
		return "other"
	}
}
