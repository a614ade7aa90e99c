package dto

import (
	"time"

	"github.com/sigesco/sigesco/internal/app/models"
)

// GuardianRequest carries guardian fields inside a registration request.
type GuardianRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	NationalID   string `json:"nationalId" binding:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	Relationship string `json:"relationship" binding:"required"`
}

// RegisterStudentRequest creates a student, resolves its guardian and opens
// the initial enrollment in one shot.
type RegisterStudentRequest struct {
	FirstName        string          `json:"firstName" binding:"required"`
	LastName         string          `json:"lastName" binding:"required"`
	BirthDate        time.Time       `json:"birthDate" binding:"required" example:"2018-03-14T00:00:00Z"`
	Gender           string          `json:"gender" binding:"required"`
	Nationality      string          `json:"nationality" binding:"required"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	SpecialCondition string          `json:"specialCondition"`
	Guardian         GuardianRequest `json:"guardian" binding:"required"`
	// SchoolYear tags the enrollment; defaults to the configured academic
	// year when omitted
	SchoolYear string `json:"schoolYear"`
}

// Student builds the student model from the request.
func (r *RegisterStudentRequest) Student() *models.Student {
	return &models.Student{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		BirthDate:        r.BirthDate,
		Gender:           r.Gender,
		Nationality:      r.Nationality,
		Address:          r.Address,
		Phone:            r.Phone,
		SpecialCondition: r.SpecialCondition,
	}
}

// GuardianModel builds the guardian model from the request.
func (r *RegisterStudentRequest) GuardianModel() *models.Guardian {
	return &models.Guardian{
		FirstName:    r.Guardian.FirstName,
		LastName:     r.Guardian.LastName,
		NationalID:   r.Guardian.NationalID,
		Phone:        r.Guardian.Phone,
		Email:        r.Guardian.Email,
		Relationship: r.Guardian.Relationship,
	}
}

// UpdateStudentRequest represents an administrative edit of a student record.
type UpdateStudentRequest struct {
	FirstName        string    `json:"firstName" binding:"required"`
	LastName         string    `json:"lastName" binding:"required"`
	BirthDate        time.Time `json:"birthDate" binding:"required"`
	Gender           string    `json:"gender" binding:"required"`
	Nationality      string    `json:"nationality" binding:"required"`
	Address          string    `json:"address"`
	Phone            string    `json:"phone"`
	SpecialCondition string    `json:"specialCondition"`
}

// RegisterStudentResponse returns the ids created by a registration.
type RegisterStudentResponse struct {
	StudentID  string `json:"studentId"`
	SchoolYear string `json:"schoolYear"`
}
