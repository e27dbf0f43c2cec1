package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/droneflow/settlements/internal/model"
)

// ClosedMonthRepository persists settlement snapshots. The record lists are
// frozen values, not relational data, so they are stored as JSONB documents.
type ClosedMonthRepository struct {
	db *gorm.DB
}

func NewClosedMonthRepository(db *gorm.DB) *ClosedMonthRepository {
	return &ClosedMonthRepository{db: db}
}

type closedMonthRow struct {
	ID               uuid.UUID
	MonthYear        string
	Label            string
	TotalRevenue     float64
	TotalExpenses    float64
	NetProfit        float64
	Hectares         float64
	Services         []byte
	Expenses         []byte
	PartnerSummaries []byte
	ClosedAt         time.Time
}

func (r *ClosedMonthRepository) ListAll(ctx context.Context) ([]model.ClosedMonth, error) {
	var rows []closedMonthRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			month_year,
			label,
			total_revenue,
			total_expenses,
			net_profit,
			hectares,
			services,
			expenses,
			partner_summaries,
			closed_at
		FROM closed_months
		ORDER BY closed_at ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	months := make([]model.ClosedMonth, 0, len(rows))
	for _, row := range rows {
		month, err := row.toModel()
		if err != nil {
			return nil, err
		}
		months = append(months, *month)
	}
	return months, nil
}

func (r *ClosedMonthRepository) GetByKey(ctx context.Context, monthYear string) (*model.ClosedMonth, error) {
	var row closedMonthRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			month_year,
			label,
			total_revenue,
			total_expenses,
			net_profit,
			hectares,
			services,
			expenses,
			partner_summaries,
			closed_at
		FROM closed_months
		WHERE month_year = ?
		LIMIT 1
	`, monthYear).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return row.toModel()
}

func (r *ClosedMonthRepository) Insert(ctx context.Context, closed model.ClosedMonth) (*model.ClosedMonth, error) {
	services, err := json.Marshal(closed.Services)
	if err != nil {
		return nil, fmt.Errorf("marshal services snapshot: %w", err)
	}
	expenses, err := json.Marshal(closed.Expenses)
	if err != nil {
		return nil, fmt.Errorf("marshal expenses snapshot: %w", err)
	}
	summaries, err := json.Marshal(closed.PartnerSummaries)
	if err != nil {
		return nil, fmt.Errorf("marshal partner summaries: %w", err)
	}

	err = r.db.WithContext(ctx).Exec(`
		INSERT INTO closed_months (
			id,
			month_year,
			label,
			total_revenue,
			total_expenses,
			net_profit,
			hectares,
			services,
			expenses,
			partner_summaries,
			closed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		closed.ID,
		closed.MonthYear,
		closed.Label,
		closed.TotalRevenue,
		closed.TotalExpenses,
		closed.NetProfit,
		closed.Hectares,
		services,
		expenses,
		summaries,
		closed.ClosedAt,
	).Error
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

func (r *ClosedMonthRepository) DeleteByKey(ctx context.Context, monthYear string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM closed_months WHERE month_year = ?`, monthYear).Error
}

func (row closedMonthRow) toModel() (*model.ClosedMonth, error) {
	month := model.ClosedMonth{
		ID:            row.ID,
		MonthYear:     row.MonthYear,
		Label:         row.Label,
		TotalRevenue:  row.TotalRevenue,
		TotalExpenses: row.TotalExpenses,
		NetProfit:     row.NetProfit,
		Hectares:      row.Hectares,
		ClosedAt:      row.ClosedAt,
	}
	if err := json.Unmarshal(row.Services, &month.Services); err != nil {
		return nil, fmt.Errorf("unmarshal services snapshot for %s: %w", row.MonthYear, err)
	}
	if err := json.Unmarshal(row.Expenses, &month.Expenses); err != nil {
		return nil, fmt.Errorf("unmarshal expenses snapshot for %s: %w", row.MonthYear, err)
	}
	if err := json.Unmarshal(row.PartnerSummaries, &month.PartnerSummaries); err != nil {
		return nil, fmt.Errorf("unmarshal partner summaries for %s: %w", row.MonthYear, err)
	}
	return &month, nil
}
