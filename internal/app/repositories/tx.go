package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sigesco/sigesco/internal/app/services"
	"github.com/sigesco/sigesco/internal/db"
)

// Compile-time contract assertions against the store interfaces the services
// consume.
var (
	_ services.TxManager       = (*TxRunner)(nil)
	_ services.Stores          = (*storeBundle)(nil)
	_ services.GradeStore      = (*GradeRepository)(nil)
	_ services.GuardianStore   = (*GuardianRepository)(nil)
	_ services.StudentStore    = (*StudentRepository)(nil)
	_ services.EnrollmentStore = (*EnrollmentRepository)(nil)
	_ services.UserStore       = (*UserRepository)(nil)
)

// TxRunner is the pgx-backed TxManager. Store bundles handed to an InTx
// callback share one transaction; bundles from Stores run each statement on
// the pool directly.
type TxRunner struct {
	db *db.PostgresDB
}

// NewTxRunner creates a new transaction runner
func NewTxRunner(database *db.PostgresDB) *TxRunner {
	return &TxRunner{db: database}
}

// Stores returns a pool-backed store bundle for non-transactional work.
func (r *TxRunner) Stores() services.Stores {
	return newStoreBundle(r.db.Pool)
}

// InTx runs fn against a transaction-scoped store bundle: commit on nil
// return, rollback on error. Lock conflicts surface as contention errors.
func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context, s services.Stores) error) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newStoreBundle(tx))
	})
}

// storeBundle binds every repository to one Querier (pool or transaction).
type storeBundle struct {
	grades      *GradeRepository
	guardians   *GuardianRepository
	students    *StudentRepository
	enrollments *EnrollmentRepository
}

func newStoreBundle(q Querier) *storeBundle {
	return &storeBundle{
		grades:      NewGradeRepository(q),
		guardians:   NewGuardianRepository(q),
		students:    NewStudentRepository(q),
		enrollments: NewEnrollmentRepository(q),
	}
}

func (b *storeBundle) Grades() services.GradeStore           { return b.grades }
func (b *storeBundle) Guardians() services.GuardianStore     { return b.guardians }
func (b *storeBundle) Students() services.StudentStore       { return b.students }
func (b *storeBundle) Enrollments() services.EnrollmentStore { return b.enrollments }
