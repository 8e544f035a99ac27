package pgsql

import (
	"context"
	"database/sql"
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

type PgxLeaveRepository struct {
	BaseRepository
}

func newPgxLeaveRepository(pool *pgxpool.Pool) portsrepo.LeaveRepository {
	return &PgxLeaveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LeaveRepository = (*PgxLeaveRepository)(nil)

func toDomainLeaveType(m models.LeaveType) domain.LeaveType {
	return domain.LeaveType{
		LeaveTypeID:   m.LeaveTypeID,
		AgencyID:      m.AgencyID,
		Name:          m.Name,
		AllowanceDays: m.AllowanceDays,
		IsPaid:        m.IsPaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainHoliday(m models.Holiday) domain.Holiday {
	return domain.Holiday{
		HolidayID: m.HolidayID,
		AgencyID:  m.AgencyID,
		Name:      m.Name,
		Date:      m.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toModelLeaveRequest(d domain.LeaveRequest) models.LeaveRequest {
	m := models.LeaveRequest{
		LeaveRequestID: d.LeaveRequestID,
		AgencyID:       d.AgencyID,
		UserID:         d.UserID,
		LeaveTypeID:    d.LeaveTypeID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		WorkingDays:    d.WorkingDays,
		Reason:         d.Reason,
		Status:         string(d.Status),
		DecisionNote:   d.DecisionNote,
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
	return m
}

func toDomainLeaveRequest(m models.LeaveRequest) domain.LeaveRequest {
	d := domain.LeaveRequest{
		LeaveRequestID: m.LeaveRequestID,
		AgencyID:       m.AgencyID,
		UserID:         m.UserID,
		LeaveTypeID:    m.LeaveTypeID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		WorkingDays:    m.WorkingDays,
		Reason:         m.Reason,
		Status:         domain.LeaveStatus(m.Status),
		DecisionNote:   m.DecisionNote,
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
	return d
}

const leaveRequestColumns = `leave_request_id, agency_id, user_id, leave_type_id, start_date, end_date, working_days, reason, status, decided_by, decided_at, decision_note, created_at, created_by, last_updated_at, last_updated_by`

func scanLeaveRequest(row pgx.Row) (models.LeaveRequest, error) {
	var m models.LeaveRequest
	err := row.Scan(
		&m.LeaveRequestID,
		&m.AgencyID,
		&m.UserID,
		&m.LeaveTypeID,
		&m.StartDate,
		&m.EndDate,
		&m.WorkingDays,
		&m.Reason,
		&m.Status,
		&m.DecidedBy,
		&m.DecidedAt,
		&m.DecisionNote,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLeaveRepository) SaveLeaveType(ctx context.Context, leaveType domain.LeaveType) error {
	query := `
		INSERT INTO leave_types (leave_type_id, agency_id, name, allowance_days, is_paid, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		leaveType.LeaveTypeID,
		leaveType.AgencyID,
		leaveType.Name,
		leaveType.AllowanceDays,
		leaveType.IsPaid,
		leaveType.CreatedAt,
		leaveType.CreatedBy,
		leaveType.LastUpdatedAt,
		leaveType.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: leave type %q already exists in agency", apperrors.ErrDuplicate, leaveType.Name)
		}
		return fmt.Errorf("failed to save leave type: %w", err)
	}
	return nil
}

func (r *PgxLeaveRepository) FindLeaveTypeByID(ctx context.Context, leaveTypeID string) (*domain.LeaveType, error) {
	query := `
		SELECT leave_type_id, agency_id, name, allowance_days, is_paid, created_at, created_by, last_updated_at, last_updated_by
		FROM leave_types
		WHERE leave_type_id = $1;
	`
	var m models.LeaveType
	err := r.Pool.QueryRow(ctx, query, leaveTypeID).Scan(
		&m.LeaveTypeID,
		&m.AgencyID,
		&m.Name,
		&m.AllowanceDays,
		&m.IsPaid,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find leave type by ID %s: %w", leaveTypeID, err)
	}
	d := toDomainLeaveType(m)
	return &d, nil
}

func (r *PgxLeaveRepository) ListLeaveTypesByAgency(ctx context.Context, agencyID string) ([]domain.LeaveType, error) {
	query := `
		SELECT leave_type_id, agency_id, name, allowance_days, is_paid, created_at, created_by, last_updated_at, last_updated_by
		FROM leave_types
		WHERE agency_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	types := []domain.LeaveType{}
	for rows.Next() {
		var m models.LeaveType
		err := rows.Scan(
			&m.LeaveTypeID,
			&m.AgencyID,
			&m.Name,
			&m.AllowanceDays,
			&m.IsPaid,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type row: %w", err)
		}
		types = append(types, toDomainLeaveType(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating leave type rows: %w", rows.Err())
	}
	return types, nil
}

func (r *PgxLeaveRepository) UpdateLeaveType(ctx context.Context, leaveType domain.LeaveType) error {
	query := `
		UPDATE leave_types
		SET name = $1, allowance_days = $2, is_paid = $3, last_updated_at = $4, last_updated_by = $5
		WHERE leave_type_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		leaveType.Name,
		leaveType.AllowanceDays,
		leaveType.IsPaid,
		leaveType.LastUpdatedAt,
		leaveType.LastUpdatedBy,
		leaveType.LeaveTypeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLeaveType removes a leave type. Types referenced by leave requests
// are protected by the foreign key and reported as a validation error.
func (r *PgxLeaveRepository) DeleteLeaveType(ctx context.Context, leaveTypeID string) error {
	query := `DELETE FROM leave_types WHERE leave_type_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, leaveTypeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: leave type is referenced by existing leave requests", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLeaveRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	query := `
		INSERT INTO holidays (holiday_id, agency_id, name, holiday_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		holiday.HolidayID,
		holiday.AgencyID,
		holiday.Name,
		holiday.Date,
		holiday.CreatedAt,
		holiday.CreatedBy,
		holiday.LastUpdatedAt,
		holiday.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: holiday on that date already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save holiday: %w", err)
	}
	return nil
}

func (r *PgxLeaveRepository) DeleteHoliday(ctx context.Context, holidayID string) error {
	query := `DELETE FROM holidays WHERE holiday_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, holidayID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLeaveRepository) ListHolidaysByAgency(ctx context.Context, agencyID string, from time.Time, to time.Time) ([]domain.Holiday, error) {
	query := `
		SELECT holiday_id, agency_id, name, holiday_date, created_at, created_by, last_updated_at, last_updated_by
		FROM holidays
		WHERE agency_id = $1 AND holiday_date >= $2 AND holiday_date <= $3
		ORDER BY holiday_date;
	`
	rows, err := r.Pool.Query(ctx, query, agencyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := []domain.Holiday{}
	for rows.Next() {
		var m models.Holiday
		err := rows.Scan(
			&m.HolidayID,
			&m.AgencyID,
			&m.Name,
			&m.Date,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		holidays = append(holidays, toDomainHoliday(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating holiday rows: %w", rows.Err())
	}
	return holidays, nil
}

func (r *PgxLeaveRepository) SaveLeaveRequest(ctx context.Context, request domain.LeaveRequest) error {
	m := toModelLeaveRequest(request)
	query := `
		INSERT INTO leave_requests (leave_request_id, agency_id, user_id, leave_type_id, start_date, end_date, working_days, reason, status, decision_note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LeaveRequestID,
		m.AgencyID,
		m.UserID,
		m.LeaveTypeID,
		m.StartDate,
		m.EndDate,
		m.WorkingDays,
		m.Reason,
		m.Status,
		m.DecisionNote,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save leave request: %w", err)
	}
	return nil
}

func (r *PgxLeaveRepository) FindLeaveRequestByID(ctx context.Context, requestID string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE leave_request_id = $1;`
	m, err := scanLeaveRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find leave request by ID %s: %w", requestID, err)
	}
	d := toDomainLeaveRequest(m)
	return &d, nil
}

func (r *PgxLeaveRepository) ListLeaveRequestsByAgency(ctx context.Context, agencyID string, status *domain.LeaveStatus, limit int, offset int) ([]domain.LeaveRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE agency_id = $1 AND ($2::text IS NULL OR status = $2) ORDER BY created_at DESC LIMIT $3 OFFSET $4;`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	return r.queryLeaveRequests(ctx, query, agencyID, statusFilter, limit, offset)
}

func (r *PgxLeaveRepository) ListLeaveRequestsByUser(ctx context.Context, agencyID string, userID string) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE agency_id = $1 AND user_id = $2 ORDER BY start_date DESC;`
	return r.queryLeaveRequests(ctx, query, agencyID, userID)
}

func (r *PgxLeaveRepository) FindOverlappingRequests(ctx context.Context, agencyID string, userID string, start time.Time, end time.Time) ([]domain.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE agency_id = $1 AND user_id = $2
		  AND status IN ('PENDING', 'APPROVED')
		  AND start_date <= $4 AND end_date >= $3;
	`
	return r.queryLeaveRequests(ctx, query, agencyID, userID, start, end)
}

func (r *PgxLeaveRepository) SumApprovedDays(ctx context.Context, agencyID string, userID string, leaveTypeID string, year int) (int, error) {
	query := `
		SELECT COALESCE(SUM(working_days), 0)
		FROM leave_requests
		WHERE agency_id = $1 AND user_id = $2 AND leave_type_id = $3
		  AND status = 'APPROVED'
		  AND EXTRACT(YEAR FROM start_date) = $4;
	`
	var sum int
	if err := r.Pool.QueryRow(ctx, query, agencyID, userID, leaveTypeID, year).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}
	return sum, nil
}

func (r *PgxLeaveRepository) UpdateLeaveRequest(ctx context.Context, request domain.LeaveRequest) error {
	m := toModelLeaveRequest(request)
	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, decision_note = $4, last_updated_at = $5, last_updated_by = $6
		WHERE leave_request_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Status,
		m.DecidedBy,
		m.DecidedAt,
		m.DecisionNote,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.LeaveRequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLeaveRepository) queryLeaveRequests(ctx context.Context, query string, args ...any) ([]domain.LeaveRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.LeaveRequest{}
	for rows.Next() {
		m, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, toDomainLeaveRequest(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating leave request rows: %w", rows.Err())
	}
	return requests, nil
}
