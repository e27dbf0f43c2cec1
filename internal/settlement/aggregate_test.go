package settlement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droneflow/settlements/internal/model"
)

func testRules() Rules {
	return Rules{
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

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func svcOn(date time.Time, clientID uuid.UUID, hectares, total float64) model.ServiceRecord {
	return model.ServiceRecord{
		ID:         uuid.New(),
		Date:       date,
		ClientID:   clientID,
		Hectares:   hectares,
		UnitPrice:  total / hectares,
		TotalValue: total,
	}
}

func expOn(date time.Time, amount float64, paidBy string) model.Expense {
	return model.Expense{
		ID:     uuid.New(),
		Date:   date,
		Amount: amount,
		PaidBy: paidBy,
	}
}

func TestAggregateFiltersByMonth(t *testing.T) {
	clientID := uuid.New()
	services := []model.ServiceRecord{
		svcOn(day(2026, time.March, 1), clientID, 10, 2000),
		svcOn(day(2026, time.March, 31), clientID, 5, 1000),
		svcOn(day(2026, time.April, 1), clientID, 99, 9900),
		svcOn(day(2026, time.February, 28), clientID, 7, 700),
	}
	expenses := []model.Expense{
		expOn(day(2026, time.March, 15), 300, model.PaidByCompany),
		expOn(day(2026, time.April, 2), 999, model.PaidByCompany),
	}

	agg, err := Aggregate(3, 2026, services, expenses, testRules())
	require.NoError(t, err)

	assert.Equal(t, "3/2026", agg.Key.String())
	assert.Equal(t, "março 2026", agg.Label)
	assert.Len(t, agg.Services, 2)
	assert.Len(t, agg.Expenses, 1)
	assert.InDelta(t, 3000, agg.TotalRevenue, 1e-9)
	assert.InDelta(t, 15, agg.Hectares, 1e-9)
	// fixed salary is a synthetic cost, added even with no payroll row
	assert.InDelta(t, 5300, agg.TotalExpenses, 1e-9)
}

func TestAggregateSalaryAddedToEmptyMonth(t *testing.T) {
	agg, err := Aggregate(7, 2030, nil, nil, testRules())
	require.NoError(t, err)
	assert.Zero(t, agg.TotalRevenue)
	assert.InDelta(t, 5000, agg.TotalExpenses, 1e-9)
	assert.Empty(t, agg.Services)
	assert.Empty(t, agg.Expenses)
}

func TestAggregateDeterministic(t *testing.T) {
	clientID := uuid.New()
	services := []model.ServiceRecord{
		svcOn(day(2026, time.January, 10), clientID, 12.5, 1250),
		svcOn(day(2026, time.January, 20), clientID, 30, 6000),
	}
	expenses := []model.Expense{
		expOn(day(2026, time.January, 5), 420.42, "Kaka"),
	}

	first, err := Aggregate(1, 2026, services, expenses, testRules())
	require.NoError(t, err)
	second, err := Aggregate(1, 2026, services, expenses, testRules())
	require.NoError(t, err)

	assert.Equal(t, first.TotalRevenue, second.TotalRevenue)
	assert.Equal(t, first.TotalExpenses, second.TotalExpenses)
	assert.Equal(t, first.Hectares, second.Hectares)
	assert.Equal(t, first.Services, second.Services)
	assert.Equal(t, first.Expenses, second.Expenses)
}

func TestAggregateRejectsBadMonth(t *testing.T) {
	_, err := Aggregate(0, 2026, nil, nil, testRules())
	assert.ErrorIs(t, err, ErrMalformedInput)
}
