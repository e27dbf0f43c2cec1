package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/droneflow/settlements/internal/model"
)

type ContributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) ListAll(ctx context.Context) ([]model.Contribution, error) {
	var contributions []model.Contribution
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			partner_name,
			amount,
			contribution_date AS date,
			notes,
			created_at
		FROM contributions
		ORDER BY contribution_date DESC, created_at DESC
	`).Scan(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}

func (r *ContributionRepository) Insert(ctx context.Context, contribution model.Contribution) (*model.Contribution, error) {
	var saved model.Contribution
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contributions (
			id,
			partner_name,
			amount,
			contribution_date,
			notes
		) VALUES (?, ?, ?, ?, ?)
		RETURNING
			id,
			partner_name,
			amount,
			contribution_date AS date,
			notes,
			created_at
	`,
		contribution.ID,
		contribution.PartnerName,
		contribution.Amount,
		contribution.Date,
		contribution.Notes,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ContributionRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM contributions WHERE id = ?`, id).Error
}
