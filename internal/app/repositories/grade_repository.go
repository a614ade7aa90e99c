package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/dberrors"
)

// GradeRepository handles database operations for grade sections
type GradeRepository struct {
	db Querier
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db Querier) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeColumns = `id, name, level, section, shift, capacity`

// Create inserts a new grade with a generated id.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	grade.ID = uuid.NewString()

	query := `
		INSERT INTO grades (id, name, level, section, shift, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		grade.ID, grade.Name, grade.Level, grade.Section, grade.Shift, grade.Capacity)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrGradeAlreadyExists
		}
		return fmt.Errorf("error creating grade: %w", err)
	}

	return nil
}

// GetByID retrieves a grade by ID
func (r *GradeRepository) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades WHERE id = $1`
	return r.scanGrade(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a grade and locks its row until the surrounding
// transaction commits. Seat admission and grade deletion both go through this
// lock, which is what keeps the capacity check and its write atomic.
func (r *GradeRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades WHERE id = $1 FOR UPDATE`
	return r.scanGrade(r.db.QueryRow(ctx, query, id))
}

func (r *GradeRepository) scanGrade(row pgx.Row) (*models.Grade, error) {
	var grade models.Grade
	err := row.Scan(
		&grade.ID,
		&grade.Name,
		&grade.Level,
		&grade.Section,
		&grade.Shift,
		&grade.Capacity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	return &grade, nil
}

// GetAll retrieves all grades ordered by level, name and section
func (r *GradeRepository) GetAll(ctx context.Context) ([]*models.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades ORDER BY level, name, section`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		if err := rows.Scan(
			&grade.ID,
			&grade.Name,
			&grade.Level,
			&grade.Section,
			&grade.Shift,
			&grade.Capacity,
		); err != nil {
			return nil, err
		}
		grades = append(grades, &grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// Update replaces all fields of an existing grade
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET name = $1, level = $2, section = $3, shift = $4, capacity = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		grade.Name, grade.Level, grade.Section, grade.Shift, grade.Capacity, grade.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrGradeAlreadyExists
		}
		return fmt.Errorf("error updating grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// Delete removes a grade and its teacher assignment link rows. Callers run
// this inside a transaction so both deletes commit together.
func (r *GradeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM teacher_assignments WHERE grade_id = $1`, id); err != nil {
		return fmt.Errorf("error deleting teacher assignments: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// CountEnrolled counts the enrollments currently seated in the grade.
func (r *GradeRepository) CountEnrolled(ctx context.Context, gradeID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE grade_id = $1 AND status = $2`,
		gradeID, models.StatusEnrolled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrolled students: %w", err)
	}
	return count, nil
}
