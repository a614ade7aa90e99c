package models

// Guardian represents the legally responsible adult linked to one or more
// students. Guardians are shared: at most one row exists per national
// identifier, and students reference it.
type Guardian struct {
	ID           string `json:"id" db:"id"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	NationalID   string `json:"nationalId" db:"national_id"` // Unique across all guardians
	Phone        string `json:"phone,omitempty" db:"phone"`
	Email        string `json:"email,omitempty" db:"email"`
	Relationship string `json:"relationship" db:"relationship"` // "parent", "legal tutor", ...
}
