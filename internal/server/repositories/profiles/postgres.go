package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/dbx"
	"github.com/dmitrijs2005/jablog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) error {
	query :=
		`INSERT INTO profiles (user_id, display_name, medication, dose_day, created_at)
		 VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, p.UserID, p.DisplayName, p.Medication, p.DoseDay, p.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query :=
		`SELECT user_id, display_name, medication, dose_day, created_at FROM profiles
		 WHERE user_id = $1`

	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Medication, &p.DoseDay, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
