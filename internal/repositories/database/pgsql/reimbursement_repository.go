package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
)

type PgxReimbursementRepository struct {
	BaseRepository
}

func newPgxReimbursementRepository(pool *pgxpool.Pool) portsrepo.ReimbursementRepository {
	return &PgxReimbursementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReimbursementRepository = (*PgxReimbursementRepository)(nil)

func toModelReimbursement(d domain.Reimbursement) models.Reimbursement {
	m := models.Reimbursement{
		ReimbursementID: d.ReimbursementID,
		AgencyID:        d.AgencyID,
		UserID:          d.UserID,
		Category:        d.Category,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Description:     d.Description,
		ReceiptRef:      d.ReceiptRef,
		Status:          string(d.Status),
		DecisionNote:    d.DecisionNote,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.DecidedBy != nil {
		m.DecidedBy = sql.NullString{String: *d.DecidedBy, Valid: true}
	}
	if d.DecidedAt != nil {
		m.DecidedAt = sql.NullTime{Time: *d.DecidedAt, Valid: true}
	}
	if d.PaidAt != nil {
		m.PaidAt = sql.NullTime{Time: *d.PaidAt, Valid: true}
	}
	return m
}

func toDomainReimbursement(m models.Reimbursement) domain.Reimbursement {
	d := domain.Reimbursement{
		ReimbursementID: m.ReimbursementID,
		AgencyID:        m.AgencyID,
		UserID:          m.UserID,
		Category:        m.Category,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Description:     m.Description,
		ReceiptRef:      m.ReceiptRef,
		Status:          domain.ReimbursementStatus(m.Status),
		DecisionNote:    m.DecisionNote,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.DecidedBy.Valid {
		d.DecidedBy = &m.DecidedBy.String
	}
	if m.DecidedAt.Valid {
		d.DecidedAt = &m.DecidedAt.Time
	}
	if m.PaidAt.Valid {
		d.PaidAt = &m.PaidAt.Time
	}
	return d
}

const reimbursementColumns = `reimbursement_id, agency_id, user_id, category, amount, currency_code, description, receipt_ref, status, decided_by, decided_at, decision_note, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func scanReimbursement(row pgx.Row) (models.Reimbursement, error) {
	var m models.Reimbursement
	err := row.Scan(
		&m.ReimbursementID,
		&m.AgencyID,
		&m.UserID,
		&m.Category,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.ReceiptRef,
		&m.Status,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.DecisionNote,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxReimbursementRepository) SaveReimbursement(ctx context.Context, reimbursement domain.Reimbursement) error {
	m := toModelReimbursement(reimbursement)
	query := `
		INSERT INTO reimbursements (reimbursement_id, agency_id, user_id, category, amount, currency_code, description, receipt_ref, status, decision_note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReimbursementID,
		m.AgencyID,
		m.UserID,
		m.Category,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.ReceiptRef,
		m.Status,
		m.DecisionNote,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reimbursement: %w", err)
	}
	return nil
}

func (r *PgxReimbursementRepository) FindReimbursementByID(ctx context.Context, reimbursementID string) (*domain.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE reimbursement_id = $1;`
	m, err := scanReimbursement(r.Pool.QueryRow(ctx, query, reimbursementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reimbursement by ID %s: %w", reimbursementID, err)
	}
	d := toDomainReimbursement(m)
	return &d, nil
}

func (r *PgxReimbursementRepository) ListReimbursementsByAgency(ctx context.Context, agencyID string, status *domain.ReimbursementStatus, limit int, offset int) ([]domain.Reimbursement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE agency_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4;`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	return r.queryReimbursements(ctx, query, agencyID, statusFilter, limit, offset)
}

func (r *PgxReimbursementRepository) ListReimbursementsByUser(ctx context.Context, agencyID string, userID string) ([]domain.Reimbursement, error) {
	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE agency_id = $1 AND user_id = $2 ORDER BY created_at DESC;`
	return r.queryReimbursements(ctx, query, agencyID, userID)
}

func (r *PgxReimbursementRepository) UpdateReimbursement(ctx context.Context, reimbursement domain.Reimbursement) error {
	m := toModelReimbursement(reimbursement)
	query := `
		UPDATE reimbursements
		SET status = $1, decided_by = $2, decided_at = $3, decision_note = $4, paid_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE reimbursement_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.DecidedBy,
		m.DecidedAt,
		m.DecisionNote,
		m.PaidAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ReimbursementID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reimbursement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReimbursementRepository) queryReimbursements(ctx context.Context, query string, args ...any) ([]domain.Reimbursement, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reimbursements: %w", err)
	}
	defer rows.Close()

	reimbursements := []domain.Reimbursement{}
	for rows.Next() {
		m, err := scanReimbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement row: %w", err)
		}
		reimbursements = append(reimbursements, toDomainReimbursement(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reimbursement rows: %w", rows.Err())
	}
	return reimbursements, nil
}
