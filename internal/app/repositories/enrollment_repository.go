package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db Querier
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db Querier) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `id, student_id, grade_id, school_year, status, enrolled_at, notes`

// Create inserts a new enrollment row with a generated id. The unique
// constraint on (student_id, school_year) rejects a second row for the same
// student and year.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = uuid.NewString()

	query := `
		INSERT INTO enrollments (id, student_id, grade_id, school_year, status, enrolled_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		enrollment.ID, enrollment.StudentID, enrollment.GradeID,
		enrollment.SchoolYear, enrollment.Status, enrollment.EnrolledAt, enrollment.Notes)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetActive returns the single enrollment row for (student, school year).
func (r *EnrollmentRepository) GetActive(ctx context.Context, studentID, schoolYear string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 AND school_year = $2`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, studentID, schoolYear).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.GradeID,
		&enrollment.SchoolYear,
		&enrollment.Status,
		&enrollment.EnrolledAt,
		&enrollment.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// Seat places the enrollment in a grade in one statement: grade reference,
// enrolled status and enrollment date change together or not at all.
func (r *EnrollmentRepository) Seat(ctx context.Context, enrollmentID, gradeID string, at time.Time) error {
	query := `
		UPDATE enrollments
		SET grade_id = $1, status = $2, enrolled_at = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, gradeID, models.StatusEnrolled, at, enrollmentID)
	if err != nil {
		return fmt.Errorf("error seating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Unseat clears the grade reference and returns the row to the pre-enrolled
// pool.
func (r *EnrollmentRepository) Unseat(ctx context.Context, enrollmentID string) error {
	query := `
		UPDATE enrollments
		SET grade_id = NULL, status = $1, enrolled_at = NULL
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, models.StatusPreEnrolled, enrollmentID)
	if err != nil {
		return fmt.Errorf("error unseating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Graduate moves the row to the terminal state, clearing any held seat so the
// grade reference never outlives enrolled status.
func (r *EnrollmentRepository) Graduate(ctx context.Context, enrollmentID string) error {
	query := `
		UPDATE enrollments
		SET grade_id = NULL, status = $1
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, models.StatusGraduated, enrollmentID)
	if err != nil {
		return fmt.Errorf("error graduating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
