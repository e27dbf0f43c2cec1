package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/droneflow/settlements/internal/model"
	"github.com/droneflow/settlements/internal/money"
	"github.com/droneflow/settlements/internal/settlement"
)

type RecordServiceInput struct {
	Date      time.Time
	ClientID  uuid.UUID
	AreaID    uuid.UUID
	Hectares  float64
	Type      model.ApplicationType
	UnitPrice float64
}

// RecordService registers one application execution. Hectares and price go
// through the generous round before the total is computed, client and area
// names are denormalized into the record, and partner farms default to the
// internal per-hectare rate when no price is given.
func (s *SettlementService) RecordService(ctx context.Context, input RecordServiceInput) (*model.ServiceRecord, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if input.Type != model.ApplicationSpraying && input.Type != model.ApplicationDispersal {
		return nil, fmt.Errorf("%w: unknown application type %q", ErrInvalidInput, input.Type)
	}
	if input.Hectares <= 0 {
		return nil, fmt.Errorf("%w: hectares must be positive", ErrInvalidInput)
	}

	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list clients", err)
	}
	client, area, err := findClientArea(clients, input.ClientID, input.AreaID)
	if err != nil {
		return nil, err
	}

	price := input.UnitPrice
	if price == 0 && client.IsPartner {
		price = s.rules.PerHectareRate
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: unit price must be positive", ErrInvalidInput)
	}

	hectares := money.RoundGenerous(input.Hectares)
	price = money.RoundGenerous(price)

	saved, err := s.services.Insert(ctx, model.ServiceRecord{
		ID:         uuid.New(),
		Date:       input.Date,
		ClientID:   client.ID,
		ClientName: client.Name,
		AreaID:     area.ID,
		AreaName:   area.Name,
		Hectares:   hectares,
		Type:       input.Type,
		UnitPrice:  price,
		TotalValue: money.RoundGenerous(hectares * price),
	})
	if err != nil {
		return nil, storeErr("insert service", err)
	}
	return saved, nil
}

func (s *SettlementService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.services.DeleteByID(ctx, id); err != nil {
		return storeErr("delete service", err)
	}
	return nil
}

func (s *SettlementService) ListServices(ctx context.Context) ([]model.ServiceRecord, error) {
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list services", err)
	}
	return services, nil
}

type AddExpenseInput struct {
	Description string
	Amount      float64
	Category    string
	Date        time.Time
	PaidBy      string
}

// AddExpense registers an operating cost. The closed flag is derived from
// whether the expense's month is already settled, so late entries into a
// closed month arrive locked.
func (s *SettlementService) AddExpense(ctx context.Context, input AddExpenseInput) (*model.Expense, error) {
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	paidBy := input.PaidBy
	if paidBy == "" {
		paidBy = model.PaidByCompany
	}
	if paidBy != model.PaidByCompany {
		if _, ok := s.rules.Beneficiary(paidBy); !ok {
			return nil, fmt.Errorf("%w: unknown payer %q", ErrInvalidInput, paidBy)
		}
	}

	key, err := settlement.NewMonthKey(int(input.Date.Month()), input.Date.Year())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	existing, err := s.closedMonths.GetByKey(ctx, key.String())
	if err != nil {
		return nil, storeErr("get closed month", err)
	}

	saved, err := s.expenses.Insert(ctx, model.Expense{
		ID:          uuid.New(),
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		PaidBy:      paidBy,
		Closed:      existing != nil,
	})
	if err != nil {
		return nil, storeErr("insert expense", err)
	}
	return saved, nil
}

func (s *SettlementService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.expenses.DeleteByID(ctx, id); err != nil {
		return storeErr("delete expense", err)
	}
	return nil
}

func (s *SettlementService) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	expenses, err := s.expenses.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	return expenses, nil
}

// SaveClients upserts the full client list, generous-rounding area sizes.
func (s *SettlementService) SaveClients(ctx context.Context, clients []model.Client) error {
	for i := range clients {
		if clients[i].Name == "" {
			return fmt.Errorf("%w: client name is required", ErrInvalidInput)
		}
		if clients[i].ID == uuid.Nil {
			clients[i].ID = uuid.New()
		}
		for j := range clients[i].Areas {
			area := &clients[i].Areas[j]
			if area.Hectares < 0 {
				return fmt.Errorf("%w: area hectares must not be negative", ErrInvalidInput)
			}
			if area.ID == uuid.Nil {
				area.ID = uuid.New()
			}
			area.ClientID = clients[i].ID
			area.Hectares = money.RoundGenerous(area.Hectares)
		}
	}
	if err := s.clients.Upsert(ctx, clients); err != nil {
		return storeErr("upsert clients", err)
	}
	return nil
}

func (s *SettlementService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.DeleteByID(ctx, id); err != nil {
		return storeErr("delete client", err)
	}
	return nil
}

func (s *SettlementService) ListClients(ctx context.Context) ([]model.Client, error) {
	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list clients", err)
	}
	return clients, nil
}

func findClientArea(clients []model.Client, clientID, areaID uuid.UUID) (*model.Client, *model.Area, error) {
	for i := range clients {
		if clients[i].ID != clientID {
			continue
		}
		for j := range clients[i].Areas {
			if clients[i].Areas[j].ID == areaID {
				return &clients[i], &clients[i].Areas[j], nil
			}
		}
		return nil, nil, fmt.Errorf("%w: area %s does not belong to client %s", ErrInvalidInput, areaID, clientID)
	}
	return nil, nil, fmt.Errorf("%w: client %s", ErrNotFound, clientID)
}
