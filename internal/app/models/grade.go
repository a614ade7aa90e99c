package models

// GradeShift is the time-of-day block a grade section runs in.
type GradeShift string

// Possible shifts.
const (
	ShiftMorning   GradeShift = "morning"
	ShiftAfternoon GradeShift = "afternoon"
	ShiftEvening   GradeShift = "evening"
)

// ValidShift reports whether s is one of the known shifts.
func ValidShift(s GradeShift) bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftEvening:
		return true
	}
	return false
}

// Grade is a school-year section: a (name, level, section, shift) combination
// with a fixed number of seats. No two grades may share the full tuple.
type Grade struct {
	ID       string     `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`         // Display name, e.g. "3rd Grade"
	Level    string     `json:"level" db:"level"`       // Educational level, e.g. "primary"
	Section  string     `json:"section" db:"section"`   // Section label, e.g. "A"
	Shift    GradeShift `json:"shift" db:"shift"`       // morning/afternoon/evening
	Capacity int        `json:"capacity" db:"capacity"` // Seats, always > 0
}

// TeacherAssignment links a teacher to a grade. These rows are removed with
// their grade when it is deleted.
type TeacherAssignment struct {
	ID      string `json:"id" db:"id"`
	GradeID string `json:"gradeId" db:"grade_id"`
	Teacher string `json:"teacher" db:"teacher"`
	Subject string `json:"subject,omitempty" db:"subject"`
}
