package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(160) NOT NULL,
		contact VARCHAR(64) NOT NULL DEFAULT '',
		is_partner BOOLEAN NOT NULL DEFAULT FALSE,
		partner_name VARCHAR(64),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS areas (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name VARCHAR(160) NOT NULL,
		hectares NUMERIC(12,2) NOT NULL CHECK (hectares >= 0)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_areas_client_id ON areas (client_id);`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		service_date DATE NOT NULL,
		client_id UUID NOT NULL,
		client_name VARCHAR(160) NOT NULL,
		area_id UUID NOT NULL,
		area_name VARCHAR(160) NOT NULL,
		hectares NUMERIC(12,2) NOT NULL CHECK (hectares > 0),
		application_type VARCHAR(32) NOT NULL,
		unit_price NUMERIC(12,2) NOT NULL,
		total_value NUMERIC(14,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_services_date ON services (service_date);`,
	`CREATE INDEX IF NOT EXISTS idx_services_client_id ON services (client_id);`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		description VARCHAR(240) NOT NULL,
		amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		category VARCHAR(64) NOT NULL DEFAULT '',
		expense_date DATE NOT NULL,
		paid_by VARCHAR(64) NOT NULL,
		closed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (expense_date);`,
	`CREATE TABLE IF NOT EXISTS contributions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		partner_name VARCHAR(64) NOT NULL,
		amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
		contribution_date DATE NOT NULL,
		notes VARCHAR(240) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contributions_partner ON contributions (partner_name);`,
	`CREATE TABLE IF NOT EXISTS closed_months (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		month_year VARCHAR(8) NOT NULL,
		label VARCHAR(64) NOT NULL,
		total_revenue NUMERIC(14,2) NOT NULL,
		total_expenses NUMERIC(14,2) NOT NULL,
		net_profit NUMERIC(14,2) NOT NULL,
		hectares NUMERIC(12,2) NOT NULL,
		services JSONB NOT NULL,
		expenses JSONB NOT NULL,
		partner_summaries JSONB NOT NULL,
		closed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_closed_months_month_year ON closed_months (month_year);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
