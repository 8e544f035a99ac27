package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide distinguishes the debit and credit sides of a journal line.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// JournalEntry is a paired debit/credit bookkeeping record. Every recorded
// payment produces exactly one entry with balanced lines.
type JournalEntry struct {
	EntryID      string          `json:"entryID"` // Primary Key (UUID)
	AgencyID     string          `json:"agencyID"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"` // Sum of the debit side
	Lines        []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID    string          `json:"lineID"` // Primary Key (UUID)
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Side      EntrySide       `json:"side"`
	Amount    decimal.Decimal `json:"amount"` // Always positive; Side carries the direction
	Memo      string          `json:"memo"`
}

// SignedAmount applies the double-entry sign convention for the line against
// the given account type: debits increase ASSET/EXPENSE balances and decrease
// the rest; credits do the opposite.
func (l JournalLine) SignedAmount(accountType AccountType) decimal.Decimal {
	amount := l.Amount
	isDebit := l.Side == Debit
	switch accountType {
	case Asset, Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case Liability, Equity, Revenue:
		if isDebit {
			amount = amount.Neg()
		}
	}
	return amount
}
