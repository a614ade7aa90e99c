package services

import "github.com/sigesco/sigesco/internal/app/models"

// CanAdmit decides whether one more enrollment fits in the grade given its
// current enrolled occupant count. Pure; the occupant count must be read in
// the same transaction as the write that acts on the answer, otherwise two
// concurrent admissions can both see a free seat.
func CanAdmit(grade *models.Grade, occupied int) bool {
	return occupied < grade.Capacity
}
