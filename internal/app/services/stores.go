package services

import (
	"context"
	"time"

	"github.com/sigesco/sigesco/internal/app/models"
)

// The contracts below are what this core consumes from the entity store. The
// pgx implementations live in the repositories package; tests run against an
// in-memory implementation. All writes use parameter binding.

// GradeStore provides access to grade sections and their occupancy.
type GradeStore interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id string) (*models.Grade, error)
	// GetByIDForUpdate loads the grade and takes a row-level lock held until
	// the surrounding transaction ends. Only meaningful inside InTx.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Grade, error)
	GetAll(ctx context.Context) ([]*models.Grade, error)
	Update(ctx context.Context, grade *models.Grade) error
	// Delete removes the grade and its teacher assignment links.
	Delete(ctx context.Context, id string) error
	// CountEnrolled counts enrollments with status=enrolled seated in the grade.
	CountEnrolled(ctx context.Context, gradeID string) (int, error)
}

// GuardianStore provides guardian lookup and race-safe creation.
type GuardianStore interface {
	GetByID(ctx context.Context, id string) (*models.Guardian, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.Guardian, error)
	// CreateIfAbsent inserts the guardian unless a row with the same national
	// identifier already exists, in which case it returns the existing row's
	// id. The uniqueness constraint on the identifier column is the final
	// arbiter under concurrent registrations.
	CreateIfAbsent(ctx context.Context, guardian *models.Guardian) (id string, created bool, err error)
}

// StudentStore provides access to student records.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
}

// EnrollmentStore provides access to the per-school-year enrollment rows.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// GetActive returns the single enrollment row for (student, schoolYear).
	GetActive(ctx context.Context, studentID, schoolYear string) (*models.Enrollment, error)
	// Seat places the enrollment in a grade: sets the grade reference,
	// status=enrolled and the enrollment date in one statement.
	Seat(ctx context.Context, enrollmentID, gradeID string, at time.Time) error
	// Unseat clears the grade reference and returns the row to pre_enrolled.
	Unseat(ctx context.Context, enrollmentID string) error
	// Graduate moves the row to the terminal state, clearing any seat.
	Graduate(ctx context.Context, enrollmentID string) error
}

// UserStore provides access to staff accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Stores is the bundle of entity stores sharing one database handle. Inside
// InTx every store operates on the same transaction.
type Stores interface {
	Grades() GradeStore
	Guardians() GuardianStore
	Students() StudentStore
	Enrollments() EnrollmentStore
}

// TxManager hands out store bundles. InTx commits when fn returns nil and
// rolls back otherwise; no partial write ever survives a failure.
type TxManager interface {
	// Stores returns a bundle for single-statement work outside a transaction.
	Stores() Stores
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
