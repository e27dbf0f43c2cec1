package settlement

import (
	"time"

	"github.com/droneflow/settlements/internal/model"
)

// YearStats computes the dashboard headline numbers as of now: hectares and
// balance for the running month and the running year, plus the reserve fund
// accumulated over every closed month. The year balance charges the fixed
// salary once for each month elapsed, including the current one.
func YearStats(now time.Time, services []model.ServiceRecord, expenses []model.Expense, closed []model.ClosedMonth, rules Rules) (model.DashboardStats, error) {
	agg, err := Aggregate(int(now.Month()), now.Year(), services, expenses, rules)
	if err != nil {
		return model.DashboardStats{}, err
	}

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	monthsElapsed := float64(int(now.Month()))

	var hectaresYear, revenueYear, expensesYear float64
	for _, svc := range services {
		if withinRange(svc.Date, yearStart, yearEnd) {
			hectaresYear += svc.Hectares
			revenueYear += svc.TotalValue
		}
	}
	for _, exp := range expenses {
		if withinRange(exp.Date, yearStart, yearEnd) {
			expensesYear += exp.Amount
		}
	}

	var bankBalance float64
	if reserve, ok := rules.Reserve(); ok {
		for _, cm := range closed {
			for _, summary := range cm.PartnerSummaries {
				if summary.ShortName == reserve.Name {
					bankBalance += summary.NetProfit
				}
			}
		}
	}

	return model.DashboardStats{
		HectaresMonth: agg.Hectares,
		HectaresYear:  hectaresYear,
		BalanceMonth:  agg.TotalRevenue - agg.TotalExpenses,
		BalanceYear:   revenueYear - (expensesYear + rules.FixedSalary*monthsElapsed),
		BankBalance:   bankBalance,
	}, nil
}

func withinRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
