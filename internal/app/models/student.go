package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID               string    `json:"id" db:"id"`                         // Opaque system-generated identifier
	FirstName        string    `json:"firstName" db:"first_name"`          // Given name(s)
	LastName         string    `json:"lastName" db:"last_name"`            // Family name(s)
	BirthDate        time.Time `json:"birthDate" db:"birth_date"`          // Date of birth
	Gender           string    `json:"gender" db:"gender"`                 // Declared gender
	Nationality      string    `json:"nationality" db:"nationality"`       // Country of citizenship
	Address          string    `json:"address,omitempty" db:"address"`     // Home address
	Phone            string    `json:"phone,omitempty" db:"phone"`         // Contact phone
	SpecialCondition string    `json:"specialCondition,omitempty" db:"special_condition"` // Optional medical/learning note
	GuardianID       string    `json:"guardianId" db:"guardian_id"`        // Responsible guardian (always set)

	// Relations (populated when needed)
	Guardian *Guardian `json:"guardian,omitempty"` // Guardian record
}
