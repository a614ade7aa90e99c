package services

import (
	"context"
	"testing"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
)

func validGrade() *models.Grade {
	return &models.Grade{
		Name:     "3rd Grade",
		Level:    "primary",
		Section:  "A",
		Shift:    models.ShiftMorning,
		Capacity: 30,
	}
}

func TestCreateGrade(t *testing.T) {
	tx := newMemTxManager()
	svc := NewGradeService(tx)
	ctx := context.Background()

	grade := validGrade()
	if err := svc.CreateGrade(ctx, grade); err != nil {
		t.Fatalf("CreateGrade: %v", err)
	}
	if grade.ID == "" {
		t.Fatal("no id assigned")
	}

	got, err := svc.GetGradeByID(ctx, grade.ID)
	if err != nil {
		t.Fatalf("GetGradeByID: %v", err)
	}
	if got.Capacity != 30 || got.Shift != models.ShiftMorning {
		t.Errorf("stored grade = %+v", got)
	}
}

func TestCreateGradeDuplicateTuple(t *testing.T) {
	tx := newMemTxManager()
	svc := NewGradeService(tx)
	ctx := context.Background()

	if err := svc.CreateGrade(ctx, validGrade()); err != nil {
		t.Fatalf("CreateGrade: %v", err)
	}
	if err := svc.CreateGrade(ctx, validGrade()); !apperrors.IsKind(err, apperrors.KindDuplicate) {
		t.Fatalf("duplicate tuple: got %v, want duplicate error", err)
	}

	// Same name on a different shift is a different section.
	other := validGrade()
	other.Shift = models.ShiftAfternoon
	if err := svc.CreateGrade(ctx, other); err != nil {
		t.Fatalf("different shift: %v", err)
	}
}

func TestCreateGradeValidation(t *testing.T) {
	svc := NewGradeService(newMemTxManager())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Grade)
	}{
		{"zero capacity", func(g *models.Grade) { g.Capacity = 0 }},
		{"negative capacity", func(g *models.Grade) { g.Capacity = -5 }},
		{"bad shift", func(g *models.Grade) { g.Shift = "night" }},
		{"missing name", func(g *models.Grade) { g.Name = "" }},
		{"missing level", func(g *models.Grade) { g.Level = " " }},
		{"missing section", func(g *models.Grade) { g.Section = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grade := validGrade()
			tc.mutate(grade)
			if err := svc.CreateGrade(ctx, grade); !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestDeleteGradeOccupied(t *testing.T) {
	tx := newMemTxManager()
	svc := NewGradeService(tx)
	alloc := NewAllocationService(tx)
	ctx := context.Background()

	grade := seedGrade(tx, "3rd Grade", 5)
	student := seedStudent(tx, "ana", testYear)

	if err := alloc.AssignSeat(ctx, student.ID, grade.ID, testYear); err != nil {
		t.Fatalf("AssignSeat: %v", err)
	}

	if err := svc.DeleteGrade(ctx, grade.ID); !apperrors.IsKind(err, apperrors.KindOccupied) {
		t.Fatalf("delete occupied grade: got %v, want occupied error", err)
	}
	if _, err := svc.GetGradeByID(ctx, grade.ID); err != nil {
		t.Fatalf("grade disappeared after rejected delete: %v", err)
	}

	if err := alloc.ReleaseSeat(ctx, student.ID, testYear); err != nil {
		t.Fatalf("ReleaseSeat: %v", err)
	}
	if err := svc.DeleteGrade(ctx, grade.ID); err != nil {
		t.Fatalf("delete empty grade: %v", err)
	}
	if _, err := svc.GetGradeByID(ctx, grade.ID); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("after delete: got %v, want not found", err)
	}
}

func TestDeleteGradeNotFound(t *testing.T) {
	svc := NewGradeService(newMemTxManager())
	if err := svc.DeleteGrade(context.Background(), "nope"); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestUpdateGrade(t *testing.T) {
	tx := newMemTxManager()
	svc := NewGradeService(tx)
	ctx := context.Background()

	grade := validGrade()
	if err := svc.CreateGrade(ctx, grade); err != nil {
		t.Fatalf("CreateGrade: %v", err)
	}

	grade.Capacity = 35
	if err := svc.UpdateGrade(ctx, grade); err != nil {
		t.Fatalf("UpdateGrade: %v", err)
	}
	got, _ := svc.GetGradeByID(ctx, grade.ID)
	if got.Capacity != 35 {
		t.Errorf("capacity = %d, want 35", got.Capacity)
	}

	missing := validGrade()
	missing.ID = "nope"
	if err := svc.UpdateGrade(ctx, missing); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("unknown grade: got %v, want not found", err)
	}
}

// Lowering capacity below occupancy is allowed; already seated students keep
// their seats and further admissions are blocked.
func TestUpdateGradeCapacityBelowOccupancy(t *testing.T) {
	tx := newMemTxManager()
	svc := NewGradeService(tx)
	alloc := NewAllocationService(tx)
	ctx := context.Background()

	grade := seedGrade(tx, "3rd Grade", 2)
	first := seedStudent(tx, "ana", testYear)
	second := seedStudent(tx, "bruno", testYear)
	third := seedStudent(tx, "carla", testYear)

	if err := alloc.AssignSeat(ctx, first.ID, grade.ID, testYear); err != nil {
		t.Fatalf("AssignSeat: %v", err)
	}
	if err := alloc.AssignSeat(ctx, second.ID, grade.ID, testYear); err != nil {
		t.Fatalf("AssignSeat: %v", err)
	}

	grade.Capacity = 1
	if err := svc.UpdateGrade(ctx, grade); err != nil {
		t.Fatalf("UpdateGrade: %v", err)
	}

	occupied, err := svc.GetOccupancy(ctx, grade.ID)
	if err != nil {
		t.Fatalf("GetOccupancy: %v", err)
	}
	if occupied != 2 {
		t.Errorf("occupied = %d, want 2", occupied)
	}
	if err := alloc.AssignSeat(ctx, third.ID, grade.ID, testYear); !apperrors.IsKind(err, apperrors.KindCapacityExceeded) {
		t.Errorf("admission over lowered capacity: got %v, want capacity exceeded", err)
	}
}

func TestGetOccupancyUnknownGrade(t *testing.T) {
	svc := NewGradeService(newMemTxManager())
	if _, err := svc.GetOccupancy(context.Background(), "nope"); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}
