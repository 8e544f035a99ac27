package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencydesk/agency_desk_app/internal/apperrors"
	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	portsrepo "github.com/agencydesk/agency_desk_app/internal/core/ports/repositories"
	"github.com/agencydesk/agency_desk_app/internal/models"
)

type PgxJobRepository struct {
	BaseRepository
}

func newPgxJobRepository(pool *pgxpool.Pool) portsrepo.JobRepository {
	return &PgxJobRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JobRepository = (*PgxJobRepository)(nil)

func toModelJob(d domain.Job) models.Job {
	m := models.Job{
		JobID:          d.JobID,
		AgencyID:       d.AgencyID,
		Title:          d.Title,
		Description:    d.Description,
		Status:         string(d.Status),
		ScheduledStart: d.ScheduledStart,
		ScheduledEnd:   d.ScheduledEnd,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.ProjectID != nil {
		m.ProjectID = sql.NullString{String: *d.ProjectID, Valid: true}
	}
	return m
}

func toDomainJob(m models.Job) domain.Job {
	d := domain.Job{
		JobID:          m.JobID,
		AgencyID:       m.AgencyID,
		Title:          m.Title,
		Description:    m.Description,
		Status:         domain.JobStatus(m.Status),
		ScheduledStart: m.ScheduledStart,
		ScheduledEnd:   m.ScheduledEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ProjectID.Valid {
		d.ProjectID = &m.ProjectID.String
	}
	return d
}

func toDomainAssignment(m models.TeamAssignment) domain.TeamAssignment {
	return domain.TeamAssignment{
		AssignmentID: m.AssignmentID,
		AgencyID:     m.AgencyID,
		JobID:        m.JobID,
		UserID:       m.UserID,
		UserName:     m.UserName,
		Note:         m.Note,
		AssignedAt:   m.AssignedAt,
		AssignedBy:   m.AssignedBy,
	}
}

const jobColumns = `job_id, agency_id, project_id, title, description, status, scheduled_start, scheduled_end, created_at, created_by, last_updated_at, last_updated_by`

func scanJob(row pgx.Row) (models.Job, error) {
	var m models.Job
	err := row.Scan(
		&m.JobID,
		&m.AgencyID,
		&m.ProjectID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.ScheduledStart,
		&m.ScheduledEnd,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxJobRepository) SaveJob(ctx context.Context, job domain.Job) error {
	m := toModelJob(job)
	query := `
		INSERT INTO jobs (job_id, agency_id, project_id, title, description, status, scheduled_start, scheduled_end, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.JobID,
		m.AgencyID,
		m.ProjectID,
		m.Title,
		m.Description,
		m.Status,
		m.ScheduledStart,
		m.ScheduledEnd,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (r *PgxJobRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1;`
	m, err := scanJob(r.Pool.QueryRow(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job by ID %s: %w", jobID, err)
	}
	d := toDomainJob(m)
	return &d, nil
}

func (r *PgxJobRepository) ListJobsByAgency(ctx context.Context, agencyID string, status *domain.JobStatus, limit int, offset int) ([]domain.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE agency_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4;`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	rows, err := r.Pool.Query(ctx, query, agencyID, statusFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		m, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, toDomainJob(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", rows.Err())
	}
	return jobs, nil
}

func (r *PgxJobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	m := toModelJob(job)
	query := `
		UPDATE jobs
		SET project_id = $1, title = $2, description = $3, status = $4, scheduled_start = $5, scheduled_end = $6, last_updated_at = $7, last_updated_by = $8
		WHERE job_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.Title,
		m.Description,
		m.Status,
		m.ScheduledStart,
		m.ScheduledEnd,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.JobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJobRepository) SaveAssignment(ctx context.Context, assignment domain.TeamAssignment) error {
	query := `
		INSERT INTO team_assignments (assignment_id, agency_id, job_id, user_id, note, assigned_at, assigned_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		assignment.AssignmentID,
		assignment.AgencyID,
		assignment.JobID,
		assignment.UserID,
		assignment.Note,
		assignment.AssignedAt,
		assignment.AssignedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: user already assigned to this job", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save team assignment: %w", err)
	}
	return nil
}

func (r *PgxJobRepository) DeleteAssignment(ctx context.Context, jobID string, userID string) error {
	query := `DELETE FROM team_assignments WHERE job_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, jobID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete team assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJobRepository) ListAssignmentsByJob(ctx context.Context, jobID string) ([]domain.TeamAssignment, error) {
	query := `
		SELECT ta.assignment_id, ta.agency_id, ta.job_id, ta.user_id, u.name, ta.note, ta.assigned_at, ta.assigned_by
		FROM team_assignments ta
		JOIN users u ON u.user_id = ta.user_id
		WHERE ta.job_id = $1
		ORDER BY ta.assigned_at;
	`
	return r.queryAssignments(ctx, query, jobID)
}

func (r *PgxJobRepository) ListAssignmentsByUser(ctx context.Context, agencyID string, userID string) ([]domain.TeamAssignment, error) {
	query := `
		SELECT ta.assignment_id, ta.agency_id, ta.job_id, ta.user_id, u.name, ta.note, ta.assigned_at, ta.assigned_by
		FROM team_assignments ta
		JOIN users u ON u.user_id = ta.user_id
		WHERE ta.agency_id = $1 AND ta.user_id = $2
		ORDER BY ta.assigned_at DESC;
	`
	return r.queryAssignments(ctx, query, agencyID, userID)
}

func (r *PgxJobRepository) queryAssignments(ctx context.Context, query string, args ...any) ([]domain.TeamAssignment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query team assignments: %w", err)
	}
	defer rows.Close()

	assignments := []domain.TeamAssignment{}
	for rows.Next() {
		var m models.TeamAssignment
		err := rows.Scan(
			&m.AssignmentID,
			&m.AgencyID,
			&m.JobID,
			&m.UserID,
			&m.UserName,
			&m.Note,
			&m.AssignedAt,
			&m.AssignedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team assignment row: %w", err)
		}
		assignments = append(assignments, toDomainAssignment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating team assignment rows: %w", rows.Err())
	}
	return assignments, nil
}
