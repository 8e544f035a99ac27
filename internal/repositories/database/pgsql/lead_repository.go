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

type PgxLeadRepository struct {
	BaseRepository
}

func newPgxLeadRepository(pool *pgxpool.Pool) portsrepo.LeadRepository {
	return &PgxLeadRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LeadRepository = (*PgxLeadRepository)(nil)

func toModelLead(d domain.Lead) models.Lead {
	m := models.Lead{
		LeadID:         d.LeadID,
		AgencyID:       d.AgencyID,
		Name:           d.Name,
		ContactName:    d.ContactName,
		Email:          d.Email,
		Phone:          d.Phone,
		Source:         d.Source,
		EstimatedValue: d.EstimatedValue,
		Status:         string(d.Status),
		Notes:          d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.ConvertedClientID != nil {
		m.ConvertedClientID = sql.NullString{String: *d.ConvertedClientID, Valid: true}
	}
	return m
}

func toDomainLead(m models.Lead) domain.Lead {
	d := domain.Lead{
		LeadID:         m.LeadID,
		AgencyID:       m.AgencyID,
		Name:           m.Name,
		ContactName:    m.ContactName,
		Email:          m.Email,
		Phone:          m.Phone,
		Source:         m.Source,
		EstimatedValue: m.EstimatedValue,
		Status:         domain.LeadStatus(m.Status),
		Notes:          m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ConvertedClientID.Valid {
		d.ConvertedClientID = &m.ConvertedClientID.String
	}
	return d
}

const leadColumns = `lead_id, agency_id, name, contact_name, email, phone, source, estimated_value, status, converted_client_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanLead(row pgx.Row) (models.Lead, error) {
	var m models.Lead
	err := row.Scan(
		&m.LeadID,
		&m.AgencyID,
		&m.Name,
		&m.ContactName,
		&m.Email,
		&m.Phone,
		&m.Source,
		&m.EstimatedValue,
		&m.Status,
		&m.ConvertedClientID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	m := toModelLead(lead)
	query := `
		INSERT INTO leads (lead_id, agency_id, name, contact_name, email, phone, source, estimated_value, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LeadID,
		m.AgencyID,
		m.Name,
		m.ContactName,
		m.Email,
		m.Phone,
		m.Source,
		m.EstimatedValue,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

func (r *PgxLeadRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1;`
	m, err := scanLead(r.Pool.QueryRow(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lead by ID %s: %w", leadID, err)
	}
	d := toDomainLead(m)
	return &d, nil
}

func (r *PgxLeadRepository) ListLeadsByAgency(ctx context.Context, agencyID string, status *domain.LeadStatus, limit int, offset int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE agency_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4;`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	rows, err := r.Pool.Query(ctx, query, agencyID, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := []domain.Lead{}
	for rows.Next() {
		m, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, toDomainLead(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating lead rows: %w", rows.Err())
	}
	return leads, nil
}

func (r *PgxLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	m := toModelLead(lead)
	query := `
		UPDATE leads
		SET name = $1, contact_name = $2, email = $3, phone = $4, source = $5, estimated_value = $6, status = $7, converted_client_id = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE lead_id = $12;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.ContactName,
		m.Email,
		m.Phone,
		m.Source,
		m.EstimatedValue,
		m.Status,
		m.ConvertedClientID,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LeadID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ConvertLead inserts the new client (and optional project) and flips the
// lead to CONVERTED in one transaction. The lead row is guarded against a
// concurrent conversion by requiring its prior status to still be QUALIFIED.
func (r *PgxLeadRepository) ConvertLead(ctx context.Context, lead domain.Lead, client domain.Client, project *domain.Project) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mc := toModelClient(client)
	clientQuery := `
		INSERT INTO clients (client_id, agency_id, name, contact_name, email, phone, address, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, clientQuery,
		mc.ClientID,
		mc.AgencyID,
		mc.Name,
		mc.ContactName,
		mc.Email,
		mc.Phone,
		mc.Address,
		mc.Status,
		mc.Notes,
		mc.CreatedAt,
		mc.CreatedBy,
		mc.LastUpdatedAt,
		mc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert client for lead conversion: %w", err)
	}

	if project != nil {
		mp := toModelProject(*project)
		projectQuery := `
			INSERT INTO projects (project_id, agency_id, client_id, name, description, status, start_date, end_date, budget, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
		`
		_, err = tx.Exec(ctx, projectQuery,
			mp.ProjectID,
			mp.AgencyID,
			mp.ClientID,
			mp.Name,
			mp.Description,
			mp.Status,
			mp.StartDate,
			mp.EndDate,
			mp.Budget,
			mp.CreatedAt,
			mp.CreatedBy,
			mp.LastUpdatedAt,
			mp.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project for lead conversion: %w", err)
		}
	}

	ml := toModelLead(lead)
	leadQuery := `
		UPDATE leads
		SET status = $1, converted_client_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE lead_id = $5 AND status = 'QUALIFIED';
	`
	cmdTag, err := tx.Exec(ctx, leadQuery,
		ml.Status,
		ml.ConvertedClientID,
		ml.LastUpdatedAt,
		ml.LastUpdatedBy,
		ml.LeadID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead during conversion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s is no longer qualified for conversion: %w", ml.LeadID, apperrors.ErrValidation)
	}

	return r.Commit(ctx, tx)
}
