package models

import "github.com/shopspring/decimal"

// Account mirrors the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	AgencyID     string          `db:"agency_id"`
	Code         string          `db:"code"`
	Name         string          `db:"name"`
	AccountType  string          `db:"account_type"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
