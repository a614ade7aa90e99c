package services

import (
	"context"
	"strings"
	"time"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/validation"
)

// AllocationService assigns and releases grade seats. Every operation is one
// atomic transaction; the capacity check and the seating write always happen
// under the same grade row lock, so concurrent assignments against a nearly
// full grade cannot both succeed.
type AllocationService struct {
	tx  TxManager
	now func() time.Time
}

// NewAllocationService creates a new allocation service instance
func NewAllocationService(tx TxManager) *AllocationService {
	return &AllocationService{
		tx:  tx,
		now: time.Now,
	}
}

func validateAllocationKey(studentID, schoolYear string) error {
	if strings.TrimSpace(studentID) == "" {
		return apperrors.New(apperrors.KindValidation, "student id is required")
	}
	if !validation.IsValidSchoolYear(schoolYear) {
		return apperrors.Newf(apperrors.KindValidation, "invalid school year %q", schoolYear)
	}
	return nil
}

// AssignSeat seats the student's enrollment for the school year in the given
// grade. A student already seated elsewhere is reassigned: the old seat is
// released and the new one taken in the same transaction. Assigning the seat
// the student already holds is a no-op success.
func (s *AllocationService) AssignSeat(ctx context.Context, studentID, gradeID, schoolYear string) error {
	if err := validateAllocationKey(studentID, schoolYear); err != nil {
		return err
	}
	if strings.TrimSpace(gradeID) == "" {
		return apperrors.New(apperrors.KindValidation, "grade id is required")
	}

	return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		enrollment, err := st.Enrollments().GetActive(ctx, studentID, schoolYear)
		if err != nil {
			return err
		}

		if enrollment.Seated() && *enrollment.GradeID == gradeID {
			// Already holds this exact seat
			return nil
		}

		if !models.CanTransition(enrollment.Status, models.StatusEnrolled) {
			return apperrors.Newf(apperrors.KindValidation,
				"enrollment in status %q cannot take a seat", enrollment.Status)
		}

		// Lock the grade row before reading occupancy. The lock is held to
		// commit, closing the window where two transactions both count a
		// free seat.
		grade, err := st.Grades().GetByIDForUpdate(ctx, gradeID)
		if err != nil {
			return err
		}

		occupied, err := st.Grades().CountEnrolled(ctx, gradeID)
		if err != nil {
			return err
		}

		if !CanAdmit(grade, occupied) {
			return apperrors.ErrGradeFull
		}

		return st.Enrollments().Seat(ctx, enrollment.ID, gradeID, s.now())
	})
}

// ReleaseSeat withdraws the student from its seat, returning the enrollment
// to the pre-enrolled pool. Releasing a student with no seat succeeds without
// writing anything; callers are not required to check state first.
func (s *AllocationService) ReleaseSeat(ctx context.Context, studentID, schoolYear string) error {
	if err := validateAllocationKey(studentID, schoolYear); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		enrollment, err := st.Enrollments().GetActive(ctx, studentID, schoolYear)
		if err != nil {
			return err
		}

		if enrollment.Status == models.StatusGraduated {
			return apperrors.New(apperrors.KindValidation, "enrollment already graduated")
		}

		if !enrollment.Seated() {
			// Idempotent no-op
			return nil
		}

		return st.Enrollments().Unseat(ctx, enrollment.ID)
	})
}

// Graduate moves the student's enrollment to the terminal graduated state,
// releasing its seat if one is held. Graduating twice is a no-op success.
func (s *AllocationService) Graduate(ctx context.Context, studentID, schoolYear string) error {
	if err := validateAllocationKey(studentID, schoolYear); err != nil {
		return err
	}

	return s.tx.InTx(ctx, func(ctx context.Context, st Stores) error {
		enrollment, err := st.Enrollments().GetActive(ctx, studentID, schoolYear)
		if err != nil {
			return err
		}

		if enrollment.Status == models.StatusGraduated {
			return nil
		}

		if !models.CanTransition(enrollment.Status, models.StatusGraduated) {
			return apperrors.Newf(apperrors.KindValidation,
				"enrollment in status %q cannot graduate", enrollment.Status)
		}

		return st.Enrollments().Graduate(ctx, enrollment.ID)
	})
}

// GetEnrollment returns the student's enrollment row for the school year.
func (s *AllocationService) GetEnrollment(ctx context.Context, studentID, schoolYear string) (*models.Enrollment, error) {
	if err := validateAllocationKey(studentID, schoolYear); err != nil {
		return nil, err
	}
	return s.tx.Stores().Enrollments().GetActive(ctx, studentID, schoolYear)
}
