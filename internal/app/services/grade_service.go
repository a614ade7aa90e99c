package services

import (
	"context"
	"strings"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/validation"
)

// GradeService manages the grade section catalog. Deletion is guarded by the
// occupancy invariant; capacity edits are not (lowering capacity below the
// current occupancy is allowed and simply blocks further admissions).
type GradeService struct {
	tx TxManager
}

// NewGradeService creates a new grade service instance
func NewGradeService(tx TxManager) *GradeService {
	return &GradeService{tx: tx}
}

// validateGrade validates grade data before database operations
func validateGrade(grade *models.Grade) error {
	if grade == nil {
		return apperrors.New(apperrors.KindValidation, "grade is nil")
	}
	if !validation.IsValidName(grade.Name) {
		return apperrors.New(apperrors.KindValidation, "grade name is required")
	}
	if strings.TrimSpace(grade.Level) == "" {
		return apperrors.New(apperrors.KindValidation, "grade level is required")
	}
	if strings.TrimSpace(grade.Section) == "" {
		return apperrors.New(apperrors.KindValidation, "grade section is required")
	}
	if !models.ValidShift(grade.Shift) {
		return apperrors.Newf(apperrors.KindValidation, "invalid shift %q", grade.Shift)
	}
	if grade.Capacity <= 0 {
		return apperrors.New(apperrors.KindValidation, "capacity must be a positive integer")
	}
	return nil
}

// CreateGrade creates a new grade section. Fails with a duplicate error if a
// grade with the same (name, level, section, shift) tuple already exists.
func (s *GradeService) CreateGrade(ctx context.Context, grade *models.Grade) error {
	if err := validateGrade(grade); err != nil {
		return err
	}
	return s.tx.Stores().Grades().Create(ctx, grade)
}

// GetGradeByID retrieves a grade by ID.
func (s *GradeService) GetGradeByID(ctx context.Context, id string) (*models.Grade, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "grade id is required")
	}
	return s.tx.Stores().Grades().GetByID(ctx, id)
}

// GetAllGrades retrieves all grade sections.
func (s *GradeService) GetAllGrades(ctx context.Context) ([]*models.Grade, error) {
	return s.tx.Stores().Grades().GetAll(ctx)
}

// GetOccupancy returns the enrolled occupant count of a grade. Informational
// only; admission decisions never use this read.
func (s *GradeService) GetOccupancy(ctx context.Context, id string) (int, error) {
	if strings.TrimSpace(id) == "" {
		return 0, apperrors.New(apperrors.KindValidation, "grade id is required")
	}
	if _, err := s.tx.Stores().Grades().GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.tx.Stores().Grades().CountEnrolled(ctx, id)
}

// UpdateGrade replaces all fields of an existing grade.
func (s *GradeService) UpdateGrade(ctx context.Context, grade *models.Grade) error {
	if strings.TrimSpace(grade.ID) == "" {
		return apperrors.New(apperrors.KindValidation, "grade id is required")
	}
	if err := validateGrade(grade); err != nil {
		return err
	}
	return s.tx.Stores().Grades().Update(ctx, grade)
}

// DeleteGrade removes a grade and its teacher assignment links. Fails with an
// occupied error while any enrollment still holds a seat in it. The check and
// the delete run under the grade row lock, so a concurrent seat assignment
// cannot slip in between them.
func (s *GradeService) DeleteGrade(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.New(apperrors.KindValidation, "grade id is required")
	}

	return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		if _, err := st.Grades().GetByIDForUpdate(ctx, id); err != nil {
			return err
		}

		occupied, err := st.Grades().CountEnrolled(ctx, id)
		if err != nil {
			return err
		}
		if occupied > 0 {
			return apperrors.ErrGradeOccupied
		}

		return st.Grades().Delete(ctx, id)
	})
}
