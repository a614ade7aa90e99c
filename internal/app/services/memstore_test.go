package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
)

// memDB is an in-memory stand-in for the database used by the service tests.
// One mutex guards all tables; InTx holds it for the whole transaction and
// restores a snapshot on failure, which gives the tests the same serializable
// commit-or-nothing behavior the pgx implementation provides.
type memDB struct {
	mu          sync.Mutex
	grades      map[string]*models.Grade
	guardians   map[string]*models.Guardian
	students    map[string]*models.Student
	enrollments map[string]*models.Enrollment
	seq         int
}

func newMemDB() *memDB {
	return &memDB{
		grades:      make(map[string]*models.Grade),
		guardians:   make(map[string]*models.Guardian),
		students:    make(map[string]*models.Student),
		enrollments: make(map[string]*models.Enrollment),
	}
}

func (d *memDB) nextID(prefix string) string {
	d.seq++
	return fmt.Sprintf("%s-%d", prefix, d.seq)
}

type memSnapshot struct {
	grades      map[string]*models.Grade
	guardians   map[string]*models.Guardian
	students    map[string]*models.Student
	enrollments map[string]*models.Enrollment
	seq         int
}

func copyEnrollment(e *models.Enrollment) *models.Enrollment {
	c := *e
	if e.GradeID != nil {
		gid := *e.GradeID
		c.GradeID = &gid
	}
	if e.EnrolledAt != nil {
		at := *e.EnrolledAt
		c.EnrolledAt = &at
	}
	return &c
}

func (d *memDB) snapshot() memSnapshot {
	s := memSnapshot{
		grades:      make(map[string]*models.Grade, len(d.grades)),
		guardians:   make(map[string]*models.Guardian, len(d.guardians)),
		students:    make(map[string]*models.Student, len(d.students)),
		enrollments: make(map[string]*models.Enrollment, len(d.enrollments)),
		seq:         d.seq,
	}
	for id, g := range d.grades {
		c := *g
		s.grades[id] = &c
	}
	for id, g := range d.guardians {
		c := *g
		s.guardians[id] = &c
	}
	for id, st := range d.students {
		c := *st
		s.students[id] = &c
	}
	for id, e := range d.enrollments {
		s.enrollments[id] = copyEnrollment(e)
	}
	return s
}

func (d *memDB) restore(s memSnapshot) {
	d.grades = s.grades
	d.guardians = s.guardians
	d.students = s.students
	d.enrollments = s.enrollments
	d.seq = s.seq
}

// memStores implements Stores over a memDB. Outside a transaction each call
// takes the lock for itself; inside InTx the transaction already holds it.
type memStores struct {
	d      *memDB
	locked bool
}

func (s *memStores) lock() func() {
	if s.locked {
		return func() {}
	}
	s.d.mu.Lock()
	return s.d.mu.Unlock
}

func (s *memStores) Grades() GradeStore           { return (*memGradeStore)(s) }
func (s *memStores) Guardians() GuardianStore     { return (*memGuardianStore)(s) }
func (s *memStores) Students() StudentStore       { return (*memStudentStore)(s) }
func (s *memStores) Enrollments() EnrollmentStore { return (*memEnrollmentStore)(s) }

type memGradeStore memStores

func (s *memGradeStore) Create(ctx context.Context, grade *models.Grade) error {
	defer (*memStores)(s).lock()()
	for _, g := range s.d.grades {
		if g.Name == grade.Name && g.Level == grade.Level && g.Section == grade.Section && g.Shift == grade.Shift {
			return apperrors.ErrGradeAlreadyExists
		}
	}
	if grade.ID == "" {
		grade.ID = s.d.nextID("grade")
	}
	c := *grade
	s.d.grades[grade.ID] = &c
	return nil
}

func (s *memGradeStore) GetByID(ctx context.Context, id string) (*models.Grade, error) {
	defer (*memStores)(s).lock()()
	g, ok := s.d.grades[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	c := *g
	return &c, nil
}

func (s *memGradeStore) GetByIDForUpdate(ctx context.Context, id string) (*models.Grade, error) {
	// The transaction mutex already serializes everything.
	return s.GetByID(ctx, id)
}

func (s *memGradeStore) GetAll(ctx context.Context) ([]*models.Grade, error) {
	defer (*memStores)(s).lock()()
	out := make([]*models.Grade, 0, len(s.d.grades))
	for _, g := range s.d.grades {
		c := *g
		out = append(out, &c)
	}
	return out, nil
}

func (s *memGradeStore) Update(ctx context.Context, grade *models.Grade) error {
	defer (*memStores)(s).lock()()
	if _, ok := s.d.grades[grade.ID]; !ok {
		return apperrors.ErrGradeNotFound
	}
	c := *grade
	s.d.grades[grade.ID] = &c
	return nil
}

func (s *memGradeStore) Delete(ctx context.Context, id string) error {
	defer (*memStores)(s).lock()()
	if _, ok := s.d.grades[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(s.d.grades, id)
	return nil
}

func (s *memGradeStore) CountEnrolled(ctx context.Context, gradeID string) (int, error) {
	defer (*memStores)(s).lock()()
	count := 0
	for _, e := range s.d.enrollments {
		if e.Status == models.StatusEnrolled && e.GradeID != nil && *e.GradeID == gradeID {
			count++
		}
	}
	return count, nil
}

type memGuardianStore memStores

func (s *memGuardianStore) GetByID(ctx context.Context, id string) (*models.Guardian, error) {
	defer (*memStores)(s).lock()()
	g, ok := s.d.guardians[id]
	if !ok {
		return nil, apperrors.ErrGuardianNotFound
	}
	c := *g
	return &c, nil
}

func (s *memGuardianStore) GetByNationalID(ctx context.Context, nationalID string) (*models.Guardian, error) {
	defer (*memStores)(s).lock()()
	for _, g := range s.d.guardians {
		if g.NationalID == nationalID {
			c := *g
			return &c, nil
		}
	}
	return nil, apperrors.ErrGuardianNotFound
}

func (s *memGuardianStore) CreateIfAbsent(ctx context.Context, guardian *models.Guardian) (string, bool, error) {
	defer (*memStores)(s).lock()()
	for _, g := range s.d.guardians {
		if g.NationalID == guardian.NationalID {
			return g.ID, false, nil
		}
	}
	if guardian.ID == "" {
		guardian.ID = s.d.nextID("guardian")
	}
	c := *guardian
	s.d.guardians[guardian.ID] = &c
	return guardian.ID, true, nil
}

type memStudentStore memStores

func (s *memStudentStore) Create(ctx context.Context, student *models.Student) error {
	defer (*memStores)(s).lock()()
	if student.ID == "" {
		student.ID = s.d.nextID("student")
	}
	c := *student
	c.Guardian = nil
	s.d.students[student.ID] = &c
	return nil
}

func (s *memStudentStore) GetByID(ctx context.Context, id string) (*models.Student, error) {
	defer (*memStores)(s).lock()()
	st, ok := s.d.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	c := *st
	return &c, nil
}

func (s *memStudentStore) GetAll(ctx context.Context) ([]*models.Student, error) {
	defer (*memStores)(s).lock()()
	out := make([]*models.Student, 0, len(s.d.students))
	for _, st := range s.d.students {
		c := *st
		out = append(out, &c)
	}
	return out, nil
}

func (s *memStudentStore) Update(ctx context.Context, student *models.Student) error {
	defer (*memStores)(s).lock()()
	if _, ok := s.d.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	c := *student
	c.Guardian = nil
	s.d.students[student.ID] = &c
	return nil
}

type memEnrollmentStore memStores

func (s *memEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	defer (*memStores)(s).lock()()
	for _, e := range s.d.enrollments {
		if e.StudentID == enrollment.StudentID && e.SchoolYear == enrollment.SchoolYear {
			return apperrors.ErrStudentEnrolled
		}
	}
	if enrollment.ID == "" {
		enrollment.ID = s.d.nextID("enrollment")
	}
	s.d.enrollments[enrollment.ID] = copyEnrollment(enrollment)
	return nil
}

func (s *memEnrollmentStore) GetActive(ctx context.Context, studentID, schoolYear string) (*models.Enrollment, error) {
	defer (*memStores)(s).lock()()
	for _, e := range s.d.enrollments {
		if e.StudentID == studentID && e.SchoolYear == schoolYear {
			return copyEnrollment(e), nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (s *memEnrollmentStore) Seat(ctx context.Context, enrollmentID, gradeID string, at time.Time) error {
	defer (*memStores)(s).lock()()
	e, ok := s.d.enrollments[enrollmentID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	gid := gradeID
	t := at
	e.GradeID = &gid
	e.Status = models.StatusEnrolled
	e.EnrolledAt = &t
	return nil
}

func (s *memEnrollmentStore) Unseat(ctx context.Context, enrollmentID string) error {
	defer (*memStores)(s).lock()()
	e, ok := s.d.enrollments[enrollmentID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.GradeID = nil
	e.Status = models.StatusPreEnrolled
	e.EnrolledAt = nil
	return nil
}

func (s *memEnrollmentStore) Graduate(ctx context.Context, enrollmentID string) error {
	defer (*memStores)(s).lock()()
	e, ok := s.d.enrollments[enrollmentID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.GradeID = nil
	e.Status = models.StatusGraduated
	return nil
}

// memTxManager implements TxManager over a memDB.
type memTxManager struct {
	d *memDB
}

func newMemTxManager() *memTxManager {
	return &memTxManager{d: newMemDB()}
}

func (m *memTxManager) Stores() Stores {
	return &memStores{d: m.d}
}

func (m *memTxManager) InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	snap := m.d.snapshot()
	if err := fn(ctx, &memStores{d: m.d, locked: true}); err != nil {
		m.d.restore(snap)
		return err
	}
	return nil
}

// --- fixtures ---

func seedGrade(m *memTxManager, name string, capacity int) *models.Grade {
	g := &models.Grade{
		Name:     name,
		Level:    "primary",
		Section:  "A",
		Shift:    models.ShiftMorning,
		Capacity: capacity,
	}
	if err := m.Stores().Grades().Create(context.Background(), g); err != nil {
		panic(err)
	}
	return g
}

// seedStudent inserts a student with a pre-enrolled unseated enrollment for
// the given school year, bypassing the registration service.
func seedStudent(m *memTxManager, name, schoolYear string) *models.Student {
	ctx := context.Background()
	guardian := &models.Guardian{
		FirstName:    "Guardian",
		LastName:     name,
		NationalID:   "GRD-" + name,
		Relationship: "parent",
	}
	gid, _, err := m.Stores().Guardians().CreateIfAbsent(ctx, guardian)
	if err != nil {
		panic(err)
	}
	student := &models.Student{
		FirstName:   name,
		LastName:    "Test",
		BirthDate:   time.Date(2018, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Nationality: "PE",
		GuardianID:  gid,
	}
	if err := m.Stores().Students().Create(ctx, student); err != nil {
		panic(err)
	}
	enrollment := &models.Enrollment{
		StudentID:  student.ID,
		SchoolYear: schoolYear,
		Status:     models.StatusPreEnrolled,
	}
	if err := m.Stores().Enrollments().Create(ctx, enrollment); err != nil {
		panic(err)
	}
	return student
}
