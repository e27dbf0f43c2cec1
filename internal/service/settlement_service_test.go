package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droneflow/settlements/internal/model"
	"github.com/droneflow/settlements/internal/settlement"
)

func testRules() settlement.Rules {
	return settlement.Rules{
		FixedSalary:    5000,
		PerHectareRate: 100,
		Beneficiaries: []model.Beneficiary{
			{Name: "Kaka", FullName: "Kaka (Sócio)", Role: model.RoleFieldPartner},
			{Name: "Patrick", FullName: "Patrick (Sócio)", Role: model.RoleFieldPartner},
			{Name: "Geraldo", FullName: "Geraldo Júnior", Role: model.RoleOperator},
			{Name: "Reserva", FullName: "Fundo de Reserva", Role: model.RoleReserve},
		},
	}
}

type harness struct {
	svc           *SettlementService
	services      *fakeServiceStore
	expenses      *fakeExpenseStore
	contributions *fakeContributionStore
	closed        *fakeClosedMonthStore
	clients       *fakeClientStore
}

func newHarness() *harness {
	h := &harness{
		services:      &fakeServiceStore{},
		expenses:      &fakeExpenseStore{},
		contributions: &fakeContributionStore{},
		closed:        &fakeClosedMonthStore{},
		clients:       &fakeClientStore{},
	}
	h.svc = NewSettlementService(h.services, h.expenses, h.contributions, h.closed, h.clients, testRules())
	return h
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (h *harness) seedMonth(t *testing.T) (serviceID, expenseID uuid.UUID) {
	t.Helper()
	serviceID = uuid.New()
	expenseID = uuid.New()
	h.services.records = []model.ServiceRecord{{
		ID:         serviceID,
		Date:       day(2026, time.May, 10),
		ClientID:   uuid.New(),
		Hectares:   100,
		UnitPrice:  100,
		TotalValue: 10000,
	}}
	h.expenses.records = []model.Expense{{
		ID:     expenseID,
		Date:   day(2026, time.May, 12),
		Amount: 2000,
		PaidBy: model.PaidByCompany,
	}}
	return serviceID, expenseID
}

func TestComputeMonth(t *testing.T) {
	h := newHarness()
	h.seedMonth(t)

	calc, err := h.svc.ComputeMonth(context.Background(), 5, 2026)
	require.NoError(t, err)

	assert.InDelta(t, 10000, calc.Aggregate.TotalRevenue, 1e-9)
	assert.InDelta(t, 7000, calc.Aggregate.TotalExpenses, 1e-9)
	require.Len(t, calc.Summaries, 4)
	assert.InDelta(t, 750, calc.Summaries[0].GrossProfit, 1e-9)
}

func TestComputeMonthRejectsBadMonth(t *testing.T) {
	h := newHarness()
	_, err := h.svc.ComputeMonth(context.Background(), 13, 2026)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCloseMonth(t *testing.T) {
	h := newHarness()
	_, expenseID := h.seedMonth(t)

	closed, err := h.svc.CloseMonth(context.Background(), 5, 2026)
	require.NoError(t, err)

	assert.Equal(t, "5/2026", closed.MonthYear)
	assert.Equal(t, "maio 2026", closed.Label)
	assert.InDelta(t, 3000, closed.NetProfit, 1e-9)
	assert.Len(t, closed.Services, 1)
	assert.Len(t, closed.Expenses, 1)
	assert.Len(t, closed.PartnerSummaries, 4)

	require.Len(t, h.closed.records, 1)
	assert.True(t, h.expenses.byID(expenseID).Closed)
}

func TestCloseMonthRejectsDuplicate(t *testing.T) {
	h := newHarness()
	h.seedMonth(t)

	_, err := h.svc.CloseMonth(context.Background(), 5, 2026)
	require.NoError(t, err)

	_, err = h.svc.CloseMonth(context.Background(), 5, 2026)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	assert.Len(t, h.closed.records, 1)
}

func TestCloseMonthInsertFailureLeavesExpensesOpen(t *testing.T) {
	h := newHarness()
	_, expenseID := h.seedMonth(t)
	h.closed.insertErr = errors.New("connection reset")

	_, err := h.svc.CloseMonth(context.Background(), 5, 2026)
	assert.ErrorIs(t, err, ErrStore)
	assert.False(t, h.expenses.byID(expenseID).Closed)
	assert.Empty(t, h.closed.records)
}

func TestCloseMonthFlagFailureIsPartial(t *testing.T) {
	h := newHarness()
	_, expenseID := h.seedMonth(t)
	h.expenses.flagErr = errors.New("connection reset")

	closed, err := h.svc.CloseMonth(context.Background(), 5, 2026)

	var partial *PartialSettlementError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "5/2026", partial.MonthYear)
	assert.NotErrorIs(t, err, ErrStore)

	// the snapshot exists even though the flags were not updated
	require.NotNil(t, closed)
	assert.Len(t, h.closed.records, 1)
	assert.False(t, h.expenses.byID(expenseID).Closed)
}

func TestReopenMonthRestoresFlags(t *testing.T) {
	h := newHarness()
	_, expenseID := h.seedMonth(t)

	_, err := h.svc.CloseMonth(context.Background(), 5, 2026)
	require.NoError(t, err)
	require.True(t, h.expenses.byID(expenseID).Closed)

	require.NoError(t, h.svc.ReopenMonth(context.Background(), "5/2026"))

	assert.Empty(t, h.closed.records)
	assert.False(t, h.expenses.byID(expenseID).Closed)

	months, err := h.svc.ListClosedMonths(context.Background())
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestReopenMonthUnlocksLateExpenses(t *testing.T) {
	h := newHarness()
	h.seedMonth(t)

	_, err := h.svc.CloseMonth(context.Background(), 5, 2026)
	require.NoError(t, err)

	// recorded after the close, inside the settled month, so it arrives locked
	late, err := h.svc.AddExpense(context.Background(), AddExpenseInput{
		Description: "Manutenção drone",
		Amount:      300,
		Date:        day(2026, time.May, 20),
	})
	require.NoError(t, err)
	require.True(t, late.Closed)

	// reopening recomputes bounds from the key, so the late expense unlocks
	// too despite never being part of the snapshot
	require.NoError(t, h.svc.ReopenMonth(context.Background(), "5/2026"))
	assert.False(t, h.expenses.byID(late.ID).Closed)
}

func TestReopenMonthNotFound(t *testing.T) {
	h := newHarness()
	err := h.svc.ReopenMonth(context.Background(), "9/2031")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenMonthMalformedKey(t *testing.T) {
	h := newHarness()
	err := h.svc.ReopenMonth(context.Background(), "not-a-key")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClosedMonthIsSnapshot(t *testing.T) {
	h := newHarness()
	serviceID, _ := h.seedMonth(t)

	closed, err := h.svc.CloseMonth(context.Background(), 5, 2026)
	require.NoError(t, err)

	// deleting the live record must not change the frozen copy
	require.NoError(t, h.svc.DeleteService(context.Background(), serviceID))

	stored, err := h.svc.GetClosedMonth(context.Background(), "5/2026")
	require.NoError(t, err)
	assert.Equal(t, closed.TotalRevenue, stored.TotalRevenue)
	require.Len(t, stored.Services, 1)
	assert.Equal(t, serviceID, stored.Services[0].ID)
}

func TestAddContribution(t *testing.T) {
	h := newHarness()

	saved, err := h.svc.AddContribution(context.Background(), AddContributionInput{
		PartnerName: "Kaka",
		Amount:      250.004,
		Date:        day(2026, time.June, 1),
		Notes:       "acerto de maio",
	})
	require.NoError(t, err)
	assert.InDelta(t, 250, saved.Amount, 1e-9)
	assert.Len(t, h.contributions.records, 1)
}

func TestAddContributionValidation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Ninguem", Amount: 10, Date: day(2026, 6, 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Reserva", Amount: 10, Date: day(2026, 6, 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Kaka", Amount: 0, Date: day(2026, 6, 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Kaka", Amount: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContributionsAdditiveAfterInterleavedOps(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	first, err := h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Patrick", Amount: 100, Date: day(2026, 6, 1)})
	require.NoError(t, err)
	_, err = h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Patrick", Amount: 40, Date: day(2026, 6, 2)})
	require.NoError(t, err)
	require.NoError(t, h.svc.RemoveContribution(ctx, first.ID))
	_, err = h.svc.AddContribution(ctx, AddContributionInput{PartnerName: "Patrick", Amount: 60, Date: day(2026, 6, 3)})
	require.NoError(t, err)

	contributions, err := h.svc.ListContributions(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 100, settlement.TotalContributed("Patrick", contributions), 1e-9)
}

func TestPartnerBalances(t *testing.T) {
	h := newHarness()
	partnerName := "Kaka"
	farm := model.Client{ID: uuid.New(), Name: "Fazenda Boa Vista", IsPartner: true, PartnerName: &partnerName}
	h.clients.records = []model.Client{farm}

	// 10 ha on the partner's own farm; revenue 10000, expenses 2000
	h.services.records = []model.ServiceRecord{
		{ID: uuid.New(), Date: day(2026, time.May, 3), ClientID: farm.ID, Hectares: 10, UnitPrice: 100, TotalValue: 1000},
		{ID: uuid.New(), Date: day(2026, time.May, 8), ClientID: uuid.New(), Hectares: 90, UnitPrice: 100, TotalValue: 9000},
	}
	h.expenses.records = []model.Expense{
		{ID: uuid.New(), Date: day(2026, time.May, 9), Amount: 2000, PaidBy: model.PaidByCompany},
	}

	balances, err := h.svc.PartnerBalances(context.Background(), 5, 2026)
	require.NoError(t, err)
	require.Len(t, balances, 4)

	kaka := balances[0]
	assert.InDelta(t, -250, kaka.Summary.NetProfit, 1e-9)
	assert.InDelta(t, -250, kaka.RunningBalance, 1e-9)
	assert.Empty(t, kaka.Contributions)

	_, err = h.svc.AddContribution(context.Background(), AddContributionInput{PartnerName: "Kaka", Amount: 250, Date: day(2026, 6, 1)})
	require.NoError(t, err)

	balances, err = h.svc.PartnerBalances(context.Background(), 5, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balances[0].RunningBalance)
	assert.InDelta(t, 250, balances[0].TotalContributed, 1e-9)
	assert.Len(t, balances[0].Contributions, 1)

	geraldo := balances[2]
	assert.InDelta(t, 5750, geraldo.RunningBalance, 1e-9)
}

func TestStoreFailureSurfaced(t *testing.T) {
	h := newHarness()
	h.services.listErr = errors.New("timeout")

	_, err := h.svc.ComputeMonth(context.Background(), 5, 2026)
	assert.ErrorIs(t, err, ErrStore)
}
