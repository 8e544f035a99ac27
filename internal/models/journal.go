package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID      string          `db:"entry_id"`
	AgencyID     string          `db:"agency_id"`
	EntryDate    time.Time       `db:"entry_date"`
	Description  string          `db:"description"`
	CurrencyCode string          `db:"currency_code"`
	Amount       decimal.Decimal `db:"amount"`
	AuditFields
}

// JournalLine mirrors the journal_lines table.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	Side      string          `db:"side"`
	Amount    decimal.Decimal `db:"amount"`
	Memo      string          `db:"memo"`
}
