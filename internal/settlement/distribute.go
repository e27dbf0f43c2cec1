package settlement

import (
	"github.com/droneflow/settlements/internal/model"
	"github.com/droneflow/settlements/internal/money"
)

// Distribute turns a period aggregate into one summary per beneficiary, in
// roster order. Each share is one quarter of revenue minus expenses, rounded
// independently per beneficiary; the four shares can therefore drift a cent
// from the pool total. That drift matches how the books have always been
// kept and must not be normalized away.
func Distribute(agg PeriodAggregate, clients []model.Client, rules Rules) []model.PartnerSummary {
	summaries := make([]model.PartnerSummary, 0, len(rules.Beneficiaries))

	for _, b := range rules.Beneficiaries {
		base := money.RoundStandard((agg.TotalRevenue - agg.TotalExpenses) / 4)

		var deductions, hectaresPartner float64
		if b.Role == model.RoleFieldPartner {
			if client, ok := partnerClient(clients, b.Name); ok {
				for _, svc := range agg.Services {
					if svc.ClientID == client.ID {
						hectaresPartner += svc.Hectares
					}
				}
				deductions = money.RoundStandard(hectaresPartner * rules.PerHectareRate)
			}
		}

		var reimbursements float64
		for _, exp := range agg.Expenses {
			if exp.PaidBy == b.Name {
				reimbursements += exp.Amount
			}
		}

		summary := model.PartnerSummary{
			Name:           b.FullName,
			ShortName:      b.Name,
			GrossProfit:    base,
			Deductions:     deductions,
			Reimbursements: reimbursements,
			NetProfit:      money.RoundStandard(base + reimbursements - deductions),
			Hectares:       hectaresPartner,
		}
		if b.Role == model.RoleOperator {
			salary := rules.FixedSalary
			summary.Salary = &salary
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

func partnerClient(clients []model.Client, partnerName string) (model.Client, bool) {
	for _, c := range clients {
		if c.PartnerName != nil && *c.PartnerName == partnerName {
			return c, true
		}
	}
	return model.Client{}, false
}
