package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
)

type PgxAgencyRepository struct {
	BaseRepository
}

func newPgxAgencyRepository(pool *pgxpool.Pool) portsrepo.AgencyRepository {
	return &PgxAgencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgencyRepository = (*PgxAgencyRepository)(nil)

func toModelAgency(d domain.Agency) models.Agency {
	return models.Agency{
		AgencyID:     d.AgencyID,
		Name:         d.Name,
		Description:  d.Description,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAgency(m models.Agency) domain.Agency {
	return domain.Agency{
		AgencyID:     m.AgencyID,
		Name:         m.Name,
		Description:  m.Description,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainUserAgency(m models.UserAgency) domain.UserAgency {
	return domain.UserAgency{
		UserID:   m.UserID,
		UserName: m.UserName,
		AgencyID: m.AgencyID,
		Role:     domain.AgencyRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

func (r *PgxAgencyRepository) SaveAgency(ctx context.Context, agency domain.Agency) error {
	m := toModelAgency(agency)
	query := `
		INSERT INTO agencies (agency_id, name, description, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AgencyID,
		m.Name,
		m.Description,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: agency with ID %s already exists", apperrors.ErrDuplicate, m.AgencyID)
		}
		return fmt.Errorf("failed to save agency: %w", err)
	}
	return nil
}

func (r *PgxAgencyRepository) FindAgencyByID(ctx context.Context, agencyID string) (*domain.Agency, error) {
	query := `
		SELECT agency_id, name, description, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM agencies
		WHERE agency_id = $1;
	`
	var m models.Agency
	err := r.Pool.QueryRow(ctx, query, agencyID).Scan(
		&m.AgencyID,
		&m.Name,
		&m.Description,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find agency by ID %s: %w", agencyID, err)
	}
	d := toDomainAgency(m)
	return &d, nil
}

func (r *PgxAgencyRepository) ListAgenciesByUserID(ctx context.Context, userID string) ([]domain.Agency, error) {
	query := `
		SELECT a.agency_id, a.name, a.description, a.currency_code, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM agencies a
		JOIN user_agencies ua ON ua.agency_id = a.agency_id
		WHERE ua.user_id = $1 AND ua.role != 'REMOVED'
		ORDER BY a.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agencies for user %s: %w", userID, err)
	}
	defer rows.Close()

	agencies := []domain.Agency{}
	for rows.Next() {
		var m models.Agency
		err := rows.Scan(
			&m.AgencyID,
			&m.Name,
			&m.Description,
			&m.CurrencyCode,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agency row: %w", err)
		}
		agencies = append(agencies, toDomainAgency(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating agency rows: %w", rows.Err())
	}
	return agencies, nil
}

func (r *PgxAgencyRepository) UpdateAgency(ctx context.Context, agency domain.Agency) error {
	m := toModelAgency(agency)
	query := `
		UPDATE agencies
		SET name = $1, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE agency_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.AgencyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update agency: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAgencyRepository) DeactivateAgency(ctx context.Context, agencyID string, userID string, now time.Time) error {
	query := `
		UPDATE agencies
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE agency_id = $3 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, now, userID, agencyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate agency: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAgencyRepository) AddUserToAgency(ctx context.Context, membership domain.UserAgency) error {
	// Upsert so re-adding a REMOVED member restores the row with the new role.
	query := `
		INSERT INTO user_agencies (user_id, agency_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, agency_id) DO UPDATE SET
			role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.AgencyID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add user to agency: %w", err)
	}
	return nil
}

func (r *PgxAgencyRepository) FindUserAgencyRole(ctx context.Context, userID string, agencyID string) (*domain.UserAgency, error) {
	query := `
		SELECT ua.user_id, u.name, ua.agency_id, ua.role, ua.joined_at
		FROM user_agencies ua
		JOIN users u ON u.user_id = ua.user_id
		WHERE ua.user_id = $1 AND ua.agency_id = $2;
	`
	var m models.UserAgency
	err := r.Pool.QueryRow(ctx, query, userID, agencyID).Scan(
		&m.UserID,
		&m.UserName,
		&m.AgencyID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s in agency %s: %w", userID, agencyID, err)
	}
	d := toDomainUserAgency(m)
	return &d, nil
}

func (r *PgxAgencyRepository) UpdateUserAgencyRole(ctx context.Context, userID string, agencyID string, role domain.AgencyRole) error {
	query := `
		UPDATE user_agencies
		SET role = $1
		WHERE user_id = $2 AND agency_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(role), userID, agencyID)
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAgencyRepository) ListAgencyMembers(ctx context.Context, agencyID string) ([]domain.UserAgency, error) {
	query := `
		SELECT ua.user_id, u.name, ua.agency_id, ua.role, ua.joined_at
		FROM user_agencies ua
		JOIN users u ON u.user_id = ua.user_id
		WHERE ua.agency_id = $1 AND ua.role != 'REMOVED'
		ORDER BY ua.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members for agency %s: %w", agencyID, err)
	}
	defer rows.Close()

	members := []domain.UserAgency{}
	for rows.Next() {
		var m models.UserAgency
		err := rows.Scan(
			&m.UserID,
			&m.UserName,
			&m.AgencyID,
			&m.Role,
			&m.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		members = append(members, toDomainUserAgency(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", rows.Err())
	}
	return members, nil
}
