package domain_test

import (
	"testing"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalLine_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(50)

	tests := []struct {
		name        string
		side        domain.EntrySide
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit increases asset", domain.Debit, domain.Asset, amount},
		{"credit decreases asset", domain.Credit, domain.Asset, amount.Neg()},
		{"debit increases expense", domain.Debit, domain.Expense, amount},
		{"credit decreases expense", domain.Credit, domain.Expense, amount.Neg()},
		{"debit decreases liability", domain.Debit, domain.Liability, amount.Neg()},
		{"credit increases liability", domain.Credit, domain.Liability, amount},
		{"debit decreases revenue", domain.Debit, domain.Revenue, amount.Neg()},
		{"credit increases revenue", domain.Credit, domain.Revenue, amount},
		{"debit decreases equity", domain.Debit, domain.Equity, amount.Neg()},
		{"credit increases equity", domain.Credit, domain.Equity, amount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.JournalLine{Side: tt.side, Amount: amount}
			assert.True(t, tt.want.Equal(line.SignedAmount(tt.accountType)),
				"got %s, want %s", line.SignedAmount(tt.accountType), tt.want)
		})
	}
}
