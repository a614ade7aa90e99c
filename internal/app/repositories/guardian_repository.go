package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
)

// GuardianRepository handles database operations for guardians
type GuardianRepository struct {
	db Querier
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(db Querier) *GuardianRepository {
	return &GuardianRepository{db: db}
}

const guardianColumns = `id, first_name, last_name, national_id, phone, email, relationship`

// GetByID retrieves a guardian by ID
func (r *GuardianRepository) GetByID(ctx context.Context, id string) (*models.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE id = $1`
	return r.scanGuardian(r.db.QueryRow(ctx, query, id))
}

// GetByNationalID retrieves a guardian by national identifier
func (r *GuardianRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE national_id = $1`
	return r.scanGuardian(r.db.QueryRow(ctx, query, nationalID))
}

func (r *GuardianRepository) scanGuardian(row pgx.Row) (*models.Guardian, error) {
	var guardian models.Guardian
	err := row.Scan(
		&guardian.ID,
		&guardian.FirstName,
		&guardian.LastName,
		&guardian.NationalID,
		&guardian.Phone,
		&guardian.Email,
		&guardian.Relationship,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGuardianNotFound
		}
		return nil, fmt.Errorf("error retrieving guardian: %w", err)
	}
	return &guardian, nil
}

// CreateIfAbsent inserts the guardian unless one with the same national
// identifier already exists. ON CONFLICT DO NOTHING makes the uniqueness
// constraint the final arbiter: when a concurrent registration wins the
// insert, this call waits for it and then returns the surviving row's id.
func (r *GuardianRepository) CreateIfAbsent(ctx context.Context, guardian *models.Guardian) (string, bool, error) {
	newID := uuid.NewString()

	query := `
		INSERT INTO guardians (id, first_name, last_name, national_id, phone, email, relationship)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (national_id) DO NOTHING
		RETURNING id
	`

	var id string
	err := r.db.QueryRow(ctx, query,
		newID, guardian.FirstName, guardian.LastName, guardian.NationalID,
		guardian.Phone, guardian.Email, guardian.Relationship).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, fmt.Errorf("error creating guardian: %w", err)
	}

	// Conflict: the row already exists, read it back
	existing, err := r.GetByNationalID(ctx, guardian.NationalID)
	if err != nil {
		return "", false, err
	}
	return existing.ID, false, nil
}
