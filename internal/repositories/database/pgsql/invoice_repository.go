package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

func toDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		AgencyID:      m.AgencyID,
		ClientID:      m.ClientID,
		InvoiceNumber: m.InvoiceNumber,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		CurrencyCode:  m.CurrencyCode,
		Subtotal:      m.Subtotal,
		TaxRate:       m.TaxRate,
		TaxAmount:     m.TaxAmount,
		Total:         m.Total,
		PaidAmount:    m.PaidAmount,
		Status:        domain.InvoiceStatus(m.Status),
		Notes:         m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:      m.LineID,
		InvoiceID:   m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

const invoiceColumns = `invoice_id, agency_id, client_id, invoice_number, issue_date, due_date, currency_code, subtotal, tax_rate, tax_amount, total, paid_amount, status, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.AgencyID,
		&m.ClientID,
		&m.InvoiceNumber,
		&m.IssueDate,
		&m.DueDate,
		&m.CurrencyCode,
		&m.Subtotal,
		&m.TaxRate,
		&m.TaxAmount,
		&m.Total,
		&m.PaidAmount,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// allocateInvoiceNumber claims the next sequence value for the agency and
// year inside tx. The upsert serializes concurrent allocations on the
// sequence row, so numbers are gapless per agency and year.
func allocateInvoiceNumber(ctx context.Context, tx pgx.Tx, agencyID string, year int) (string, error) {
	query := `
		INSERT INTO invoice_sequences (agency_id, year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (agency_id, year) DO UPDATE SET
			last_number = invoice_sequences.last_number + 1
		RETURNING last_number;
	`
	var n int
	if err := tx.QueryRow(ctx, query, agencyID, year).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", year, n), nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	invoiceNumber, err := allocateInvoiceNumber(ctx, tx, invoice.AgencyID, invoice.IssueDate.UTC().Year())
	if err != nil {
		return "", err
	}

	invoiceQuery := `
		INSERT INTO invoices (invoice_id, agency_id, client_id, invoice_number, issue_date, due_date, currency_code, subtotal, tax_rate, tax_amount, total, paid_amount, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		invoice.InvoiceID,
		invoice.AgencyID,
		invoice.ClientID,
		invoiceNumber,
		invoice.IssueDate,
		invoice.DueDate,
		invoice.CurrencyCode,
		invoice.Subtotal,
		invoice.TaxRate,
		invoice.TaxAmount,
		invoice.Total,
		invoice.PaidAmount,
		string(invoice.Status),
		invoice.Notes,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert invoice: %w", err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_id, invoice_id, description, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range invoice.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			invoice.InvoiceID,
			line.Description,
			line.Quantity,
			line.UnitPrice,
			line.Amount,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", fmt.Errorf("failed to insert invoice lines: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return invoiceNumber, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	d := toDomainInvoice(m)
	return &d, nil
}

func (r *PgxInvoiceRepository) FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT line_id, invoice_id, description, quantity, unit_price, amount
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice lines for %s: %w", invoiceID, err)
	}
	defer rows.Close()

	lines := []domain.InvoiceLine{}
	for rows.Next() {
		var m models.InvoiceLine
		err := rows.Scan(
			&m.LineID,
			&m.InvoiceID,
			&m.Description,
			&m.Quantity,
			&m.UnitPrice,
			&m.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		lines = append(lines, toDomainInvoiceLine(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", rows.Err())
	}
	return lines, nil
}

func (r *PgxInvoiceRepository) ListInvoicesByAgency(ctx context.Context, agencyID string, status *domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE agency_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY issue_date DESC, invoice_number DESC LIMIT $3 OFFSET $4;`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	rows, err := r.Pool.Query(ctx, query, agencyID, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, toDomainInvoice(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE invoice_id = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), now, userID, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInvoiceRepository) MarkOverdueInvoices(ctx context.Context, agencyID string, asOf time.Time, userID string) (int64, error) {
	query := `
		UPDATE invoices
		SET status = 'OVERDUE', last_updated_at = $1, last_updated_by = $2
		WHERE agency_id = $3 AND due_date < $4 AND status IN ('SENT', 'PARTIALLY_PAID');
	`
	cmdTag, err := r.Pool.Exec(ctx, query, asOf, userID, agencyID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
