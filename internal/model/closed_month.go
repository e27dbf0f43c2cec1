package model

import (
	"time"

	"github.com/google/uuid"
)

// PartnerSummary is one beneficiary's share of a period's result. Salary is
// carried separately from NetProfit; a beneficiary's grand total is
// NetProfit plus Salary when present.
type PartnerSummary struct {
	Name           string   `json:"name"`
	ShortName      string   `json:"shortName"`
	GrossProfit    float64  `json:"grossProfit"`
	Deductions     float64  `json:"deductions"`
	Reimbursements float64  `json:"reimbursements"`
	NetProfit      float64  `json:"netProfit"`
	Salary         *float64 `json:"salary,omitempty"`
	Hectares       float64  `json:"hectares"`
}

// ClosedMonth is the frozen settlement of one calendar month. The embedded
// service, expense and summary lists are snapshots taken at closing time;
// later edits to live records never change them.
type ClosedMonth struct {
	ID               uuid.UUID        `json:"id"`
	MonthYear        string           `json:"monthYear"`
	Label            string           `json:"label"`
	TotalRevenue     float64          `json:"totalRevenue"`
	TotalExpenses    float64          `json:"totalExpenses"`
	NetProfit        float64          `json:"netProfit"`
	Hectares         float64          `json:"hectares"`
	Services         []ServiceRecord  `json:"services"`
	Expenses         []Expense        `json:"expenses"`
	PartnerSummaries []PartnerSummary `json:"partnerSummaries"`
	ClosedAt         time.Time        `json:"closedAt"`
}
