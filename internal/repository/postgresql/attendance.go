package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, employee_id, date::text, status, login_time, logout_time, login_location, logout_location,
	late_minutes, late_penalty_amount, total_working_hours, overtime_hours, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.EmployeeID, &ev.Date, &ev.Status, &ev.LoginTime, &ev.LogoutTime,
		&ev.LoginLocation, &ev.LogoutLocation, &ev.LateMinutes, &ev.PenaltyAmount,
		&ev.WorkingHours, &ev.OvertimeHours, &ev.CreatedAt, &ev.UpdatedAt,
	)
	return ev, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, date, status, login_time, login_location, late_minutes, late_penalty_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT uk_attendance_employee_date DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		event.EmployeeID, event.Date, event.Status, event.LoginTime, event.LoginLocation,
		event.LateMinutes, event.PenaltyAmount,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Event{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2::date`

	ev, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return ev, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CloseSession(ctx context.Context, event attendance.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET logout_time = $1, logout_location = $2, total_working_hours = $3, overtime_hours = $4, updated_at = NOW()
		WHERE id = $5 AND logout_time IS NULL
	`

	tag, err := q.Exec(ctx, query, event.LogoutTime, event.LogoutLocation, event.WorkingHours, event.OvertimeHours, event.ID)
	if err != nil {
		return fmt.Errorf("failed to close attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 ORDER BY date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountLateInMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountLateInMonth(ctx context.Context, employeeID string, year, month int) (int, error) {
	q := GetQuerier(ctx, r.db)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE employee_id = $1 AND status = $2 AND date >= $3 AND date < $4
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, attendance.StatusLate, start, start.AddDate(0, 1, 0)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count late logins: %w", err)
	}
	return count, nil
}
