package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/domain"
)

type fakeEntryRow struct {
	id          string
	date        time.Time
	memo        string
	accountID   string
	accountName pgtype.Text
	accountType pgtype.Text
	debit       decimal.Decimal
	credit      decimal.Decimal
}

type fakeEntryRows struct {
	rows []fakeEntryRow
	pos  int
}

func (r *fakeEntryRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}

	r.pos++

	return true
}

func (r *fakeEntryRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]

	*dest[0].(*string) = row.id
	*dest[1].(*pgtype.Date) = pgtype.Date{Time: row.date, Valid: true}
	*dest[2].(*string) = row.memo
	*dest[3].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: row.date, Valid: true}
	*dest[4].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: row.date, Valid: true}
	*dest[5].(*string) = row.accountID
	*dest[6].(*pgtype.Text) = row.accountName
	*dest[7].(*pgtype.Text) = row.accountType
	*dest[8].(*pgtype.Numeric) = decimalToNumeric(row.debit)
	*dest[9].(*pgtype.Numeric) = decimalToNumeric(row.credit)

	return nil
}

func (r *fakeEntryRows) Err() error { return nil }

func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func TestGroupEntryRows(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := &fakeEntryRows{rows: []fakeEntryRow{
		{id: "e1", date: date, memo: "rent", accountID: "cash", accountName: text("Cash"), accountType: text("Assets"), credit: decimal.NewFromInt(900)},
		{id: "e1", date: date, memo: "rent", accountID: "rent", accountName: text("Rent"), accountType: text("Expenses"), debit: decimal.NewFromInt(900)},
		{id: "e2", date: date, memo: "sale", accountID: "cash", accountName: text("Cash"), accountType: text("Assets"), debit: decimal.NewFromInt(100)},
		{id: "e2", date: date, memo: "sale", accountID: "revenue", accountName: text("Revenue"), accountType: text("Revenue"), credit: decimal.NewFromInt(100)},
	}}

	entries, err := groupEntryRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.ID != "e1" || len(first.Lines) != 2 {
		t.Fatalf("expected e1 with 2 lines, got %+v", first)
	}

	if first.Lines[0].AccountName != "Cash" || !first.Lines[0].Credit.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected joined cash line, got %+v", first.Lines[0])
	}

	if entries[1].ID != "e2" || entries[1].Lines[1].AccountID != "revenue" {
		t.Fatalf("expected e2 revenue line, got %+v", entries[1])
	}
}

func TestGroupEntryRows_Empty(t *testing.T) {
	entries, err := groupEntryRows(&fakeEntryRows{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestGroupEntryRows_DanglingReference(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := &fakeEntryRows{rows: []fakeEntryRow{
		{id: "e1", date: date, accountID: "ghost", accountName: pgtype.Text{}, accountType: pgtype.Text{}, debit: decimal.NewFromInt(5)},
	}}

	_, err := groupEntryRows(rows)
	if !errors.Is(err, domain.ErrConsistency) {
		t.Fatalf("expected ErrConsistency for dangling reference, got %v", err)
	}
}
