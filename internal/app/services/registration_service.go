package services

import (
	"context"
	"strings"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/validation"
)

// RegistrationService creates students together with their guardian and
// initial enrollment. Registration is all-or-nothing: a student row never
// exists without exactly one enrollment row for its school year.
type RegistrationService struct {
	tx TxManager
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(tx TxManager) *RegistrationService {
	return &RegistrationService{tx: tx}
}

// validateStudent validates student data before database operations
func validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.New(apperrors.KindValidation, "student is nil")
	}
	if !validation.IsValidName(student.FirstName) || !validation.IsValidName(student.LastName) {
		return apperrors.New(apperrors.KindValidation, "student name is required")
	}
	if student.BirthDate.IsZero() {
		return apperrors.New(apperrors.KindValidation, "student birth date is required")
	}
	if !validation.IsValidPhone(student.Phone) {
		return apperrors.New(apperrors.KindValidation, "invalid student phone")
	}
	return nil
}

// validateGuardian validates guardian data before database operations
func validateGuardian(guardian *models.Guardian) error {
	if guardian == nil {
		return apperrors.New(apperrors.KindValidation, "guardian is nil")
	}
	if !validation.IsValidName(guardian.FirstName) || !validation.IsValidName(guardian.LastName) {
		return apperrors.New(apperrors.KindValidation, "guardian name is required")
	}
	if !validation.IsValidNationalID(guardian.NationalID) {
		return apperrors.New(apperrors.KindValidation, "invalid guardian national identifier")
	}
	if strings.TrimSpace(guardian.Relationship) == "" {
		return apperrors.New(apperrors.KindValidation, "guardian relationship is required")
	}
	if !validation.IsValidPhone(guardian.Phone) {
		return apperrors.New(apperrors.KindValidation, "invalid guardian phone")
	}
	return nil
}

// RegisterStudent registers a new student: the guardian is resolved by
// national identifier (created only if absent), the student row is inserted
// referencing it, and a pre-enrolled unseated enrollment is opened for the
// school year. All of it commits or none of it does. Returns the new
// student's id.
func (s *RegistrationService) RegisterStudent(ctx context.Context, student *models.Student, guardian *models.Guardian, schoolYear string) (string, error) {
	if err := validateStudent(student); err != nil {
		return "", err
	}
	if err := validateGuardian(guardian); err != nil {
		return "", err
	}
	if !validation.IsValidSchoolYear(schoolYear) {
		return "", apperrors.Newf(apperrors.KindValidation, "invalid school year %q", schoolYear)
	}

	guardian.NationalID = validation.NormalizeNationalID(guardian.NationalID)

	err := s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		// Resolve the guardian. The lookup is best effort; the unique
		// constraint behind CreateIfAbsent settles concurrent duplicates.
		existing, err := st.Guardians().GetByNationalID(ctx, guardian.NationalID)
		switch {
		case err == nil:
			guardian.ID = existing.ID
		case apperrors.IsKind(err, apperrors.KindNotFound):
			id, _, err := st.Guardians().CreateIfAbsent(ctx, guardian)
			if err != nil {
				return err
			}
			guardian.ID = id
		default:
			return err
		}

		student.GuardianID = guardian.ID
		if err := st.Students().Create(ctx, student); err != nil {
			return err
		}

		enrollment := &models.Enrollment{
			StudentID:  student.ID,
			SchoolYear: schoolYear,
			Status:     models.StatusPreEnrolled,
		}
		return st.Enrollments().Create(ctx, enrollment)
	})
	if err != nil {
		return "", err
	}

	return student.ID, nil
}

// GetStudent retrieves a student with its guardian populated.
func (s *RegistrationService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "student id is required")
	}

	st := s.tx.Stores()
	student, err := st.Students().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	guardian, err := st.Guardians().GetByID(ctx, student.GuardianID)
	if err == nil {
		student.Guardian = guardian
	}

	return student, nil
}

// GetAllStudents retrieves all students.
func (s *RegistrationService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.tx.Stores().Students().GetAll(ctx)
}

// UpdateStudent applies an administrative edit to a student record. The
// guardian reference is not changed here; re-linking guardians is a separate
// administrative concern.
func (s *RegistrationService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if strings.TrimSpace(student.ID) == "" {
		return apperrors.New(apperrors.KindValidation, "student id is required")
	}
	if err := validateStudent(student); err != nil {
		return err
	}
	return s.tx.Stores().Students().Update(ctx, student)
}
