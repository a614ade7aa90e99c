package dto

import "github.com/sigesco/sigesco/internal/app/models"

// GradeRequest carries grade fields for create and update (full replacement).
type GradeRequest struct {
	Name     string            `json:"name" binding:"required"`
	Level    string            `json:"level" binding:"required"`
	Section  string            `json:"section" binding:"required"`
	Shift    models.GradeShift `json:"shift" binding:"required"`
	Capacity int               `json:"capacity" binding:"required,min=1"`
}

// Model builds the grade model from the request.
func (r *GradeRequest) Model() *models.Grade {
	return &models.Grade{
		Name:     r.Name,
		Level:    r.Level,
		Section:  r.Section,
		Shift:    r.Shift,
		Capacity: r.Capacity,
	}
}

// GradeResponse is a grade together with its current occupancy.
type GradeResponse struct {
	models.Grade
	Occupied int `json:"occupied"`
}

// AssignSeatRequest names the grade a student should be seated in.
type AssignSeatRequest struct {
	GradeID string `json:"gradeId" binding:"required"`
	// SchoolYear defaults to the configured academic year when omitted
	SchoolYear string `json:"schoolYear"`
}
