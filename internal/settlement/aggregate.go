package settlement

import (
	"github.com/droneflow/settlements/internal/model"
)

// PeriodAggregate is one month's raw financial picture: the service and
// expense records that fall inside the month plus their sums. TotalExpenses
// always includes the fixed salary as a synthetic cost; it is never stored
// as an expense row, so adding a real payroll expense would double count.
type PeriodAggregate struct {
	Key           MonthKey
	Label         string
	TotalRevenue  float64
	TotalExpenses float64
	Hectares      float64
	Services      []model.ServiceRecord
	Expenses      []model.Expense
}

// Aggregate filters services and expenses into the given month and computes
// the period sums. It is a pure function and works for any historical or
// future month.
func Aggregate(month, year int, services []model.ServiceRecord, expenses []model.Expense, rules Rules) (PeriodAggregate, error) {
	key, err := NewMonthKey(month, year)
	if err != nil {
		return PeriodAggregate{}, err
	}

	agg := PeriodAggregate{
		Key:      key,
		Label:    key.Label(),
		Services: make([]model.ServiceRecord, 0),
		Expenses: make([]model.Expense, 0),
	}

	for _, svc := range services {
		if !key.Contains(svc.Date) {
			continue
		}
		agg.Services = append(agg.Services, svc)
		agg.TotalRevenue += svc.TotalValue
		agg.Hectares += svc.Hectares
	}

	for _, exp := range expenses {
		if !key.Contains(exp.Date) {
			continue
		}
		agg.Expenses = append(agg.Expenses, exp)
		agg.TotalExpenses += exp.Amount
	}
	agg.TotalExpenses += rules.FixedSalary

	return agg, nil
}
