package domain

import "github.com/shopspring/decimal"

// AccountType categorizes ledger accounts for double-entry bookkeeping.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Well-known account codes created on demand when payments are recorded.
const (
	AccountCodeCash       = "CASH"
	AccountCodeReceivable = "AR"
)

// Account is a ledger account belonging to an agency.
type Account struct {
	AccountID    string          `json:"accountID"` // Primary Key (UUID)
	AgencyID     string          `json:"agencyID"`
	Code         string          `json:"code"` // Short stable identifier, unique per agency
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
