package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
)

func testStudent(name string) *models.Student {
	return &models.Student{
		FirstName:   name,
		LastName:    "Quispe",
		BirthDate:   time.Date(2018, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Nationality: "PE",
	}
}

func testGuardian(nationalID string) *models.Guardian {
	return &models.Guardian{
		FirstName:    "Rosa",
		LastName:     "Quispe",
		NationalID:   nationalID,
		Relationship: "parent",
	}
}

func TestRegisterStudent(t *testing.T) {
	tx := newMemTxManager()
	svc := NewRegistrationService(tx)
	ctx := context.Background()

	id, err := svc.RegisterStudent(ctx, testStudent("Ana"), testGuardian("DNI-445566"), testYear)
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}
	if id == "" {
		t.Fatal("empty student id")
	}

	student, err := svc.GetStudent(ctx, id)
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if student.Guardian == nil || student.Guardian.NationalID != "DNI-445566" {
		t.Errorf("guardian not populated: %+v", student.Guardian)
	}

	enrollment, err := tx.Stores().Enrollments().GetActive(ctx, id, testYear)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if enrollment.Status != models.StatusPreEnrolled {
		t.Errorf("status = %q, want %q", enrollment.Status, models.StatusPreEnrolled)
	}
	if enrollment.GradeID != nil {
		t.Error("new enrollment must not hold a seat")
	}
}

// Two registrations naming the same guardian identifier, in different
// spellings, must end up sharing one guardian row.
func TestRegisterStudentGuardianDedup(t *testing.T) {
	tx := newMemTxManager()
	svc := NewRegistrationService(tx)
	ctx := context.Background()

	firstID, err := svc.RegisterStudent(ctx, testStudent("Ana"), testGuardian("DNI-445566"), testYear)
	if err != nil {
		t.Fatalf("first RegisterStudent: %v", err)
	}
	secondID, err := svc.RegisterStudent(ctx, testStudent("Bruno"), testGuardian("  dni-445566 "), testYear)
	if err != nil {
		t.Fatalf("second RegisterStudent: %v", err)
	}

	if n := len(tx.d.guardians); n != 1 {
		t.Fatalf("guardian rows = %d, want 1", n)
	}

	first, _ := tx.Stores().Students().GetByID(ctx, firstID)
	second, _ := tx.Stores().Students().GetByID(ctx, secondID)
	if first.GuardianID != second.GuardianID {
		t.Errorf("guardian ids differ: %q vs %q", first.GuardianID, second.GuardianID)
	}
}

func TestRegisterStudentGuardianDedupConcurrent(t *testing.T) {
	tx := newMemTxManager()
	svc := NewRegistrationService(tx)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Sibling%d", i)
			_, errs[i] = svc.RegisterStudent(ctx, testStudent(name), testGuardian("DNI-445566"), testYear)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("registration %d: %v", i, err)
		}
	}
	if got := len(tx.d.guardians); got != 1 {
		t.Errorf("guardian rows = %d, want 1", got)
	}
	if got := len(tx.d.students); got != n {
		t.Errorf("student rows = %d, want %d", got, n)
	}
}

// enrollmentFailStores makes the enrollment insert fail so the test can watch
// the whole registration roll back.
type enrollmentFailStores struct {
	Stores
}

type enrollmentFailStore struct {
	EnrollmentStore
}

func (enrollmentFailStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return errors.New("injected enrollment failure")
}

func (s enrollmentFailStores) Enrollments() EnrollmentStore {
	return enrollmentFailStore{s.Stores.Enrollments()}
}

type enrollmentFailTx struct {
	*memTxManager
}

func (f enrollmentFailTx) InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	return f.memTxManager.InTx(ctx, func(ctx context.Context, s Stores) error {
		return fn(ctx, enrollmentFailStores{s})
	})
}

func TestRegisterStudentIsAtomic(t *testing.T) {
	tx := newMemTxManager()
	svc := NewRegistrationService(enrollmentFailTx{tx})
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, testStudent("Ana"), testGuardian("DNI-445566"), testYear)
	if err == nil {
		t.Fatal("expected injected failure")
	}

	// Neither the student nor the guardian may survive the rollback.
	if got := len(tx.d.students); got != 0 {
		t.Errorf("student rows = %d, want 0", got)
	}
	if got := len(tx.d.guardians); got != 0 {
		t.Errorf("guardian rows = %d, want 0", got)
	}
}

func TestRegisterStudentValidation(t *testing.T) {
	svc := NewRegistrationService(newMemTxManager())
	ctx := context.Background()

	cases := []struct {
		name     string
		student  *models.Student
		guardian *models.Guardian
		year     string
	}{
		{"nil student", nil, testGuardian("DNI-445566"), testYear},
		{"nil guardian", testStudent("Ana"), nil, testYear},
		{"missing student name", &models.Student{LastName: "Quispe", BirthDate: time.Now()}, testGuardian("DNI-445566"), testYear},
		{"missing birth date", &models.Student{FirstName: "Ana", LastName: "Quispe"}, testGuardian("DNI-445566"), testYear},
		{"bad national id", testStudent("Ana"), testGuardian("x!"), testYear},
		{"missing relationship", testStudent("Ana"), &models.Guardian{FirstName: "Rosa", LastName: "Quispe", NationalID: "DNI-445566"}, testYear},
		{"bad school year", testStudent("Ana"), testGuardian("DNI-445566"), "26-27"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterStudent(ctx, tc.student, tc.guardian, tc.year)
			if !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestUpdateStudent(t *testing.T) {
	tx := newMemTxManager()
	svc := NewRegistrationService(tx)
	ctx := context.Background()

	id, err := svc.RegisterStudent(ctx, testStudent("Ana"), testGuardian("DNI-445566"), testYear)
	if err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}

	student, err := svc.GetStudent(ctx, id)
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	student.Address = "Av. Los Alamos 123"
	if err := svc.UpdateStudent(ctx, student); err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}

	got, err := svc.GetStudent(ctx, id)
	if err != nil {
		t.Fatalf("GetStudent: %v", err)
	}
	if got.Address != "Av. Los Alamos 123" {
		t.Errorf("address = %q after update", got.Address)
	}

	if err := svc.UpdateStudent(ctx, &models.Student{ID: ""}); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("empty id: got %v, want validation error", err)
	}
}

func TestGetStudentNotFound(t *testing.T) {
	svc := NewRegistrationService(newMemTxManager())
	if _, err := svc.GetStudent(context.Background(), "nope"); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}
