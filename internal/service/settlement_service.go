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

// SettlementService coordinates the pure settlement engine with the stores:
// month computation, the open/close lifecycle, and the contribution ledger.
type SettlementService struct {
	services      ServiceStore
	expenses      ExpenseStore
	contributions ContributionStore
	closedMonths  ClosedMonthStore
	clients       ClientStore
	rules         settlement.Rules
	now           func() time.Time
}

func NewSettlementService(
	services ServiceStore,
	expenses ExpenseStore,
	contributions ContributionStore,
	closedMonths ClosedMonthStore,
	clients ClientStore,
	rules settlement.Rules,
) *SettlementService {
	return &SettlementService{
		services:      services,
		expenses:      expenses,
		contributions: contributions,
		closedMonths:  closedMonths,
		clients:       clients,
		rules:         rules,
		now:           time.Now,
	}
}

// MonthComputation is one month's aggregate plus its distribution, computed
// from live records without side effects.
type MonthComputation struct {
	Aggregate settlement.PeriodAggregate
	Summaries []model.PartnerSummary
}

func (s *SettlementService) ComputeMonth(ctx context.Context, month, year int) (*MonthComputation, error) {
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list services", err)
	}
	expenses, err := s.expenses.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	clients, err := s.clients.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list clients", err)
	}

	agg, err := settlement.Aggregate(month, year, services, expenses, s.rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &MonthComputation{
		Aggregate: agg,
		Summaries: settlement.Distribute(agg, clients, s.rules),
	}, nil
}

// CloseMonth settles a month: it persists the frozen snapshot and then marks
// the snapshot's expenses as closed. When the snapshot is saved but the flag
// update fails, the caller receives the record together with a
// PartialSettlementError.
func (s *SettlementService) CloseMonth(ctx context.Context, month, year int) (*model.ClosedMonth, error) {
	key, err := settlement.NewMonthKey(month, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.closedMonths.GetByKey(ctx, key.String())
	if err != nil {
		return nil, storeErr("get closed month", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyClosed, key.String())
	}

	calc, err := s.ComputeMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}

	record := model.ClosedMonth{
		ID:               uuid.New(),
		MonthYear:        key.String(),
		Label:            calc.Aggregate.Label,
		TotalRevenue:     calc.Aggregate.TotalRevenue,
		TotalExpenses:    calc.Aggregate.TotalExpenses,
		NetProfit:        calc.Aggregate.TotalRevenue - calc.Aggregate.TotalExpenses,
		Hectares:         calc.Aggregate.Hectares,
		Services:         calc.Aggregate.Services,
		Expenses:         calc.Aggregate.Expenses,
		PartnerSummaries: calc.Summaries,
		ClosedAt:         s.now().UTC(),
	}

	saved, err := s.closedMonths.Insert(ctx, record)
	if err != nil {
		return nil, storeErr("insert closed month", err)
	}

	ids := make([]uuid.UUID, 0, len(calc.Aggregate.Expenses))
	for _, exp := range calc.Aggregate.Expenses {
		ids = append(ids, exp.ID)
	}
	if len(ids) > 0 {
		if err := s.expenses.SetClosedByIDs(ctx, ids, true); err != nil {
			return saved, &PartialSettlementError{MonthYear: key.String(), Err: err}
		}
	}

	return saved, nil
}

// ReopenMonth deletes a month's snapshot and unlocks its expenses. The date
// range is recomputed from the key rather than taken from the snapshot, so
// expenses recorded after closing are unlocked as well, even though they
// were never part of the frozen record.
func (s *SettlementService) ReopenMonth(ctx context.Context, monthYear string) error {
	key, err := settlement.ParseMonthKey(monthYear)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.closedMonths.GetByKey(ctx, key.String())
	if err != nil {
		return storeErr("get closed month", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: closed month %s", ErrNotFound, key.String())
	}

	if err := s.closedMonths.DeleteByKey(ctx, key.String()); err != nil {
		return storeErr("delete closed month", err)
	}

	from, to := key.Bounds()
	if err := s.expenses.SetClosedBetween(ctx, from, to, false); err != nil {
		return storeErr("unlock expenses", err)
	}
	return nil
}

func (s *SettlementService) ListClosedMonths(ctx context.Context) ([]model.ClosedMonth, error) {
	closed, err := s.closedMonths.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list closed months", err)
	}
	return closed, nil
}

func (s *SettlementService) GetClosedMonth(ctx context.Context, monthYear string) (*model.ClosedMonth, error) {
	key, err := settlement.ParseMonthKey(monthYear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	closed, err := s.closedMonths.GetByKey(ctx, key.String())
	if err != nil {
		return nil, storeErr("get closed month", err)
	}
	if closed == nil {
		return nil, fmt.Errorf("%w: closed month %s", ErrNotFound, key.String())
	}
	return closed, nil
}

type AddContributionInput struct {
	PartnerName string
	Amount      float64
	Date        time.Time
	Notes       string
}

func (s *SettlementService) AddContribution(ctx context.Context, input AddContributionInput) (*model.Contribution, error) {
	beneficiary, ok := s.rules.Beneficiary(input.PartnerName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown beneficiary %q", ErrInvalidInput, input.PartnerName)
	}
	if beneficiary.Role == model.RoleReserve {
		return nil, fmt.Errorf("%w: reserve fund does not contribute", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	saved, err := s.contributions.Insert(ctx, model.Contribution{
		ID:          uuid.New(),
		PartnerName: beneficiary.Name,
		Amount:      money.RoundStandard(input.Amount),
		Date:        input.Date,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, storeErr("insert contribution", err)
	}
	return saved, nil
}

func (s *SettlementService) RemoveContribution(ctx context.Context, id uuid.UUID) error {
	if err := s.contributions.DeleteByID(ctx, id); err != nil {
		return storeErr("delete contribution", err)
	}
	return nil
}

func (s *SettlementService) ListContributions(ctx context.Context) ([]model.Contribution, error) {
	contributions, err := s.contributions.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list contributions", err)
	}
	return contributions, nil
}

// PartnerBalance merges one beneficiary's current-period summary with the
// perpetual contribution ledger.
type PartnerBalance struct {
	Summary          model.PartnerSummary `json:"summary"`
	TotalContributed float64              `json:"totalContributed"`
	RunningBalance   float64              `json:"runningBalance"`
	Contributions    []model.Contribution `json:"contributions"`
}

func (s *SettlementService) PartnerBalances(ctx context.Context, month, year int) ([]PartnerBalance, error) {
	calc, err := s.ComputeMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	contributions, err := s.contributions.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list contributions", err)
	}

	balances := make([]PartnerBalance, 0, len(calc.Summaries))
	for _, summary := range calc.Summaries {
		own := make([]model.Contribution, 0)
		for _, c := range contributions {
			if c.PartnerName == summary.ShortName {
				own = append(own, c)
			}
		}
		balances = append(balances, PartnerBalance{
			Summary:          summary,
			TotalContributed: settlement.TotalContributed(summary.ShortName, contributions),
			RunningBalance:   settlement.RunningBalance(summary, contributions),
			Contributions:    own,
		})
	}
	return balances, nil
}

func (s *SettlementService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list services", err)
	}
	expenses, err := s.expenses.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list expenses", err)
	}
	closed, err := s.closedMonths.ListAll(ctx)
	if err != nil {
		return nil, storeErr("list closed months", err)
	}

	stats, err := settlement.YearStats(s.now().UTC(), services, expenses, closed, s.rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &stats, nil
}
