package profiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jablog/internal/common"
	"github.com/dmitrijs2005/jablog/internal/dbx"
	"github.com/dmitrijs2005/jablog/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, display_name, medication, dose_day, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.UserID, p.DisplayName, p.Medication, p.DoseDay, p.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		`SELECT user_id, display_name, medication, dose_day, created_at FROM profiles WHERE user_id = ?`, userID))
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM profiles WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
