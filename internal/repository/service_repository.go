package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/droneflow/settlements/internal/model"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) ListAll(ctx context.Context) ([]model.ServiceRecord, error) {
	var records []model.ServiceRecord
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			service_date AS date,
			client_id,
			client_name,
			area_id,
			area_name,
			hectares,
			application_type AS type,
			unit_price,
			total_value,
			created_at
		FROM services
		ORDER BY service_date ASC, created_at ASC
	`).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ServiceRepository) Insert(ctx context.Context, record model.ServiceRecord) (*model.ServiceRecord, error) {
	var saved model.ServiceRecord
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO services (
			id,
			service_date,
			client_id,
			client_name,
			area_id,
			area_name,
			hectares,
			application_type,
			unit_price,
			total_value
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING
			id,
			service_date AS date,
			client_id,
			client_name,
			area_id,
			area_name,
			hectares,
			application_type AS type,
			unit_price,
			total_value,
			created_at
	`,
		record.ID,
		record.Date,
		record.ClientID,
		record.ClientName,
		record.AreaID,
		record.AreaName,
		record.Hectares,
		record.Type,
		record.UnitPrice,
		record.TotalValue,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ServiceRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM services WHERE id = ?`, id).Error
}
