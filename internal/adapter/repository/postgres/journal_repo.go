package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// CreateWithLines persists the entry header and all its lines inside tx.
func (r *JournalRepository) CreateWithLines(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := pgxTxFrom(tx)

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO journal_entries (id, entry_date, memo, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID,
		timeToPgDate(entry.Date),
		entry.Memo,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}

	for i, line := range entry.Lines {
		_, err := pgxTx.Exec(ctx,
			`INSERT INTO journal_lines (entry_id, position, account_id, debit, credit)
			 VALUES ($1, $2, $3, $4, $5)`,
			entry.ID,
			i,
			line.AccountID,
			decimalToNumeric(line.Debit),
			decimalToNumeric(line.Credit),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteLinesByAccount removes every line referencing the account inside tx.
func (r *JournalRepository) DeleteLinesByAccount(ctx context.Context, tx usecase.Transaction, accountID string) (int64, error) {
	tag, err := pgxTxFrom(tx).Exec(ctx,
		`DELETE FROM journal_lines WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// HasLinesForAccount reports whether any journal line references the account.
func (r *JournalRepository) HasLinesForAccount(ctx context.Context, accountID string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1)`, accountID).
		Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ListWithLinesAndAccounts returns entries newest first, each line joined
// to its account. A line whose account no longer exists makes the whole
// read fail with ErrConsistency; the join is LEFT so the gap is visible
// instead of the line silently disappearing.
func (r *JournalRepository) ListWithLinesAndAccounts(ctx context.Context) ([]*domain.PostedEntry, error) {
	var entries []*domain.PostedEntry

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT e.id, e.entry_date, e.memo, e.created_at, e.updated_at,
			        l.account_id, a.name, a.type, l.debit, l.credit
			 FROM journal_entries e
			 JOIN journal_lines l ON l.entry_id = e.id
			 LEFT JOIN accounts a ON a.id = l.account_id
			 ORDER BY e.entry_date DESC, e.created_at DESC, e.id, l.position`)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries, err = groupEntryRows(rows)

		return err
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// SumDebitsCredits returns the grand totals over every posted line.
func (r *JournalRepository) SumDebitsCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit pgtype.Numeric

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0) FROM journal_lines`).
		Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debit), numericToDecimal(credit), nil
}

// TrialBalance aggregates posted debits and credits per account.
func (r *JournalRepository) TrialBalance(ctx context.Context) ([]*domain.TrialBalanceRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.name, a.type,
		        COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		 FROM accounts a
		 LEFT JOIN journal_lines l ON l.account_id = a.id
		 GROUP BY a.id, a.name, a.type
		 ORDER BY a.name, a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.TrialBalanceRow, 0)

	for rows.Next() {
		var (
			row    domain.TrialBalanceRow
			typ    string
			debit  pgtype.Numeric
			credit pgtype.Numeric
		)

		if err := rows.Scan(&row.AccountID, &row.AccountName, &typ, &debit, &credit); err != nil {
			return nil, err
		}

		row.AccountType = domain.AccountType(typ)
		row.TotalDebit = numericToDecimal(debit)
		row.TotalCredit = numericToDecimal(credit)

		result = append(result, &row)
	}

	return result, rows.Err()
}

type entryRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func groupEntryRows(rows entryRows) ([]*domain.PostedEntry, error) {
	entries := make([]*domain.PostedEntry, 0)

	var current *domain.PostedEntry

	for rows.Next() {
		var (
			id          string
			entryDate   pgtype.Date
			memo        string
			createdAt   pgtype.Timestamptz
			updatedAt   pgtype.Timestamptz
			accountID   string
			accountName pgtype.Text
			accountType pgtype.Text
			debit       pgtype.Numeric
			credit      pgtype.Numeric
		)

		err := rows.Scan(&id, &entryDate, &memo, &createdAt, &updatedAt,
			&accountID, &accountName, &accountType, &debit, &credit)
		if err != nil {
			return nil, err
		}

		if !accountName.Valid {
			return nil, fmt.Errorf("%w: entry %s references missing account %s",
				domain.ErrConsistency, id, accountID)
		}

		if current == nil || current.ID != id {
			current = &domain.PostedEntry{
				ID:        id,
				Date:      entryDate.Time,
				Memo:      memo,
				CreatedAt: createdAt.Time,
				UpdatedAt: updatedAt.Time,
			}
			entries = append(entries, current)
		}

		current.Lines = append(current.Lines, domain.PostedLine{
			AccountID:   accountID,
			AccountName: accountName.String,
			AccountType: domain.AccountType(accountType.String),
			Debit:       numericToDecimal(debit),
			Credit:      numericToDecimal(credit),
		})
	}

	return entries, rows.Err()
}
