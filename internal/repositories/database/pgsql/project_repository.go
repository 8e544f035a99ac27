package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepository {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepository = (*PgxProjectRepository)(nil)

func toModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		AgencyID:    d.AgencyID,
		ClientID:    d.ClientID,
		Name:        d.Name,
		Description: d.Description,
		Status:      string(d.Status),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Budget:      d.Budget,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		AgencyID:    m.AgencyID,
		ClientID:    m.ClientID,
		Name:        m.Name,
		Description: m.Description,
		Status:      domain.ProjectStatus(m.Status),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Budget:      m.Budget,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const projectColumns = `project_id, agency_id, client_id, name, description, status, start_date, end_date, budget, created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.AgencyID,
		&m.ClientID,
		&m.Name,
		&m.Description,
		&m.Status,
		&m.StartDate,
		&m.EndDate,
		&m.Budget,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
		INSERT INTO projects (project_id, agency_id, client_id, name, description, status, start_date, end_date, budget, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.AgencyID,
		m.ClientID,
		m.Name,
		m.Description,
		m.Status,
		m.StartDate,
		m.EndDate,
		m.Budget,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	m, err := scanProject(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	d := toDomainProject(m)
	return &d, nil
}

func (r *PgxProjectRepository) ListProjectsByAgency(ctx context.Context, agencyID string, limit int, offset int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE agency_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, agencyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, toDomainProject(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}
	return projects, nil
}

func (r *PgxProjectRepository) ListProjectsByClient(ctx context.Context, agencyID string, clientID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE agency_id = $1 AND client_id = $2 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, agencyID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects for client %s: %w", clientID, err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, toDomainProject(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
		UPDATE projects
		SET name = $1, description = $2, status = $3, start_date = $4, end_date = $5, budget = $6, last_updated_at = $7, last_updated_by = $8
		WHERE project_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.Status,
		m.StartDate,
		m.EndDate,
		m.Budget,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
