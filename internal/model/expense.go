package model

import (
	"time"

	"github.com/google/uuid"
)

// PaidByCompany marks an expense paid from the company account rather than
// fronted personally by a beneficiary.
const PaidByCompany = "Empresa"

// Expense is an operating cost. Closed mirrors whether the expense's date
// falls in an already-settled month; it is the only field that changes after
// creation.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	PaidBy      string    `json:"paidBy"`
	Closed      bool      `json:"closed"`
	CreatedAt   time.Time `json:"createdAt"`
}
