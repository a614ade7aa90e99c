package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db Querier
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, first_name, last_name, birth_date, gender, nationality, address, phone, special_condition, guardian_id`

// Create inserts a new student with a generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	student.ID = uuid.NewString()

	query := `
		INSERT INTO students (id, first_name, last_name, birth_date, gender, nationality, address, phone, special_condition, guardian_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		student.ID, student.FirstName, student.LastName, student.BirthDate,
		student.Gender, student.Nationality, student.Address, student.Phone,
		student.SpecialCondition, student.GuardianID)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
		&student.Gender,
		&student.Nationality,
		&student.Address,
		&student.Phone,
		&student.SpecialCondition,
		&student.GuardianID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students ordered by last name
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.FirstName,
			&student.LastName,
			&student.BirthDate,
			&student.Gender,
			&student.Nationality,
			&student.Address,
			&student.Phone,
			&student.SpecialCondition,
			&student.GuardianID,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update applies an administrative edit to a student row. The guardian
// reference is left untouched.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, birth_date = $3, gender = $4,
		    nationality = $5, address = $6, phone = $7, special_condition = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.BirthDate, student.Gender,
		student.Nationality, student.Address, student.Phone, student.SpecialCondition,
		student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
