package model

import (
	"time"

	"github.com/google/uuid"
)

// Contribution (aporte) is a beneficiary paying down a negative balance.
// Append-only and never tied to a settled month.
type Contribution struct {
	ID          uuid.UUID `json:"id"`
	PartnerName string    `json:"partnerName"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}
