package models

// UserRole is the staff role attached to an account.
type UserRole string

// Staff roles.
const (
	RoleAdmin     UserRole = "admin"
	RoleSecretary UserRole = "secretary"
)

// User is a staff account. Every operation in the system requires an
// authenticated staff caller; this is the record behind that precondition.
type User struct {
	ID       string   `json:"id" db:"id"`
	Username string   `json:"username" db:"username"`
	Password string   `json:"-" db:"password"` // bcrypt hash, never serialized
	FullName string   `json:"fullName" db:"full_name"`
	Role     UserRole `json:"role" db:"role"`
}
