package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
)

type PgxPaymentRepository struct {
	BaseRepository
	ledgerRepo *PgxLedgerRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool, ledgerRepo *PgxLedgerRepository) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

func toDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		AgencyID:    m.AgencyID,
		InvoiceID:   m.InvoiceID,
		EntryID:     m.EntryID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      domain.PaymentMethod(m.Method),
		Reference:   m.Reference,
		Notes:       m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const paymentColumns = `payment_id, agency_id, invoice_id, entry_id, amount, payment_date, method, reference, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.AgencyID,
		&m.InvoiceID,
		&m.EntryID,
		&m.Amount,
		&m.PaymentDate,
		&m.Method,
		&m.Reference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// RecordPayment posts the payment and its journal entry atomically: the
// entry and lines are inserted, account rows are locked and their balances
// shifted, the payment row is written, and the invoice's paid amount and
// status are recomputed under a row lock. Everything commits or rolls back
// together.
func (r *PgxPaymentRepository) RecordPayment(ctx context.Context, payment domain.Payment, entry domain.JournalEntry, balanceChanges map[string]decimal.Decimal) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := entry.CreatedAt
	userID := entry.CreatedBy

	// 1. Re-read the invoice under lock so the payable check holds until commit.
	invoiceQuery := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	mInvoice, err := scanInvoice(tx.QueryRow(ctx, invoiceQuery, payment.InvoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock invoice %s: %w", payment.InvoiceID, err)
	}
	invoice := toDomainInvoice(mInvoice)

	if !invoice.IsPayable() {
		return nil, fmt.Errorf("invoice %s is not payable in status %s: %w", invoice.InvoiceID, invoice.Status, apperrors.ErrValidation)
	}
	if payment.Amount.GreaterThan(invoice.Outstanding()) {
		return nil, fmt.Errorf("payment of %s exceeds outstanding %s: %w", payment.Amount, invoice.Outstanding(), apperrors.ErrValidation)
	}

	// 2. Insert the journal entry.
	entryQuery := `
		INSERT INTO journal_entries (entry_id, agency_id, entry_date, description, currency_code, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.AgencyID,
		entry.EntryDate,
		entry.Description,
		entry.CurrencyCode,
		entry.Amount,
		now,
		userID,
		now,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	// 3. Lock the affected accounts and apply the balance deltas.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.ledgerRepo.findAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return nil, err
	}
	if err := r.ledgerRepo.updateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, err
	}

	// 4. Insert the journal lines.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, side, amount, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			string(line.Side),
			line.Amount,
			line.Memo,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert journal lines for entry %s: %w", entry.EntryID, err)
	}

	// 5. Insert the payment row.
	paymentQuery := `
		INSERT INTO payments (payment_id, agency_id, invoice_id, entry_id, amount, payment_date, method, reference, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		payment.PaymentID,
		payment.AgencyID,
		payment.InvoiceID,
		entry.EntryID,
		payment.Amount,
		payment.PaymentDate,
		string(payment.Method),
		payment.Reference,
		payment.Notes,
		now,
		userID,
		now,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	// 6. Recompute the invoice's paid amount and settlement status.
	newPaid := invoice.PaidAmount.Add(payment.Amount)
	newStatus := invoice.SettlementStatus(newPaid)
	updateInvoiceQuery := `
		UPDATE invoices
		SET paid_amount = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $5;
	`
	_, err = tx.Exec(ctx, updateInvoiceQuery, newPaid, string(newStatus), now, userID, invoice.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice %s after payment: %w", invoice.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	invoice.PaidAmount = newPaid
	invoice.Status = newStatus
	invoice.Touch(userID, now)
	return &invoice, nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	d := toDomainPayment(m)
	return &d, nil
}

func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY payment_date, created_at;`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}

func (r *PgxPaymentRepository) SumPaymentsForInvoice(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1;`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for invoice %s: %w", invoiceID, err)
	}
	return sum, nil
}
