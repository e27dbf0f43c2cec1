package settlement

import (
	"github.com/droneflow/settlements/internal/model"
	"github.com/droneflow/settlements/internal/money"
)

// TotalContributed sums a beneficiary's surviving contribution records.
// Always recomputed from the full list, never cached.
func TotalContributed(partnerName string, contributions []model.Contribution) float64 {
	var total float64
	for _, c := range contributions {
		if c.PartnerName == partnerName {
			total += c.Amount
		}
	}
	return money.RoundStandard(total)
}

// RunningBalance is what a beneficiary currently owes or is owed: the
// current period's net profit plus salary, offset by everything they have
// ever contributed. The ledger is perpetual and is not cleared when a month
// closes, so this figure mixes an all-time ledger with one month's
// distribution.
func RunningBalance(summary model.PartnerSummary, contributions []model.Contribution) float64 {
	current := summary.NetProfit
	if summary.Salary != nil {
		current += *summary.Salary
	}
	return money.RoundStandard(current + TotalContributed(summary.ShortName, contributions))
}
