package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/droneflow/settlements/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			contact,
			is_partner,
			partner_name
		FROM clients
		ORDER BY name ASC
	`).Scan(&clients).Error
	if err != nil {
		return nil, err
	}

	var areas []model.Area
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			name,
			hectares
		FROM areas
		ORDER BY name ASC
	`).Scan(&areas).Error
	if err != nil {
		return nil, err
	}

	byClient := make(map[uuid.UUID][]model.Area, len(clients))
	for _, area := range areas {
		byClient[area.ClientID] = append(byClient[area.ClientID], area)
	}
	for i := range clients {
		clients[i].Areas = byClient[clients[i].ID]
		if clients[i].Areas == nil {
			clients[i].Areas = []model.Area{}
		}
	}
	return clients, nil
}

// Upsert replaces the stored state of each given client, including its area
// list: areas missing from the incoming client are deleted.
func (r *ClientRepository) Upsert(ctx context.Context, clients []model.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, client := range clients {
			err := tx.Exec(`
				INSERT INTO clients (id, name, contact, is_partner, partner_name)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name,
					contact = EXCLUDED.contact,
					is_partner = EXCLUDED.is_partner,
					partner_name = EXCLUDED.partner_name
			`, client.ID, client.Name, client.Contact, client.IsPartner, client.PartnerName).Error
			if err != nil {
				return err
			}

			keep := make([]uuid.UUID, 0, len(client.Areas))
			for _, area := range client.Areas {
				keep = append(keep, area.ID)
				err := tx.Exec(`
					INSERT INTO areas (id, client_id, name, hectares)
					VALUES (?, ?, ?, ?)
					ON CONFLICT (id) DO UPDATE SET
						name = EXCLUDED.name,
						hectares = EXCLUDED.hectares
				`, area.ID, client.ID, area.Name, area.Hectares).Error
				if err != nil {
					return err
				}
			}

			if len(keep) == 0 {
				if err := tx.Exec(`DELETE FROM areas WHERE client_id = ?`, client.ID).Error; err != nil {
					return err
				}
				continue
			}
			err = tx.Exec(`
				DELETE FROM areas WHERE client_id = ? AND NOT (id = ANY(?))
			`, client.ID, keep).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByID removes a client; its areas go with it via the FK cascade.
func (r *ClientRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM clients WHERE id = ?`, id).Error
}
