package models

import "time"

// EnrollmentStatus represents the lifecycle state of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	// StatusPreEnrolled - registered for the school year, no seat taken
	StatusPreEnrolled EnrollmentStatus = "pre_enrolled"
	// StatusEnrolled - holds a seat in a grade
	StatusEnrolled EnrollmentStatus = "enrolled"
	// StatusWithdrawn - administratively withdrawn; the row is immediately
	// returned to pre_enrolled, so this value never persists (kept for the
	// status CHECK and for audit notes)
	StatusWithdrawn EnrollmentStatus = "withdrawn"
	// StatusGraduated - terminal
	StatusGraduated EnrollmentStatus = "graduated"
)

// validTransitions is the enrollment state machine. Guards (seat
// availability) are enforced by the allocation service; this table only
// answers whether the move is ever legal.
var validTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	StatusPreEnrolled: {StatusEnrolled, StatusGraduated},
	StatusEnrolled:    {StatusEnrolled, StatusPreEnrolled, StatusGraduated},
	StatusWithdrawn:   {StatusPreEnrolled},
	StatusGraduated:   {},
}

// CanTransition reports whether an enrollment may move from one status to
// another. enrolled→enrolled is the seat reassignment case;
// enrolled→pre_enrolled is withdrawal (the seat returns to the pool).
func CanTransition(from, to EnrollmentStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Enrollment is the per-school-year record tracking a student's admission
// state and, while enrolled, the grade seat it occupies. Exactly one row
// exists per (student, school year).
type Enrollment struct {
	ID         string           `json:"id" db:"id"`
	StudentID  string           `json:"studentId" db:"student_id"`
	GradeID    *string          `json:"gradeId,omitempty" db:"grade_id"` // Non-nil only while status is enrolled
	SchoolYear string           `json:"schoolYear" db:"school_year"`     // Decided once at registration
	Status     EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt *time.Time       `json:"enrolledAt,omitempty" db:"enrolled_at"` // Set when a seat is taken
	Notes      string           `json:"notes,omitempty" db:"notes"`
}

// Seated reports whether the enrollment currently occupies a seat.
func (e *Enrollment) Seated() bool {
	return e.Status == StatusEnrolled && e.GradeID != nil
}
