package model

import "github.com/google/uuid"

type Area struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"clientId"`
	Name     string    `json:"name"`
	Hectares float64   `json:"hectares"`
}

// Client is a farm the company services. PartnerName links the record to a
// beneficiary when that beneficiary is themselves a farm owner billed at the
// internal per-hectare rate.
type Client struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	IsPartner   bool      `json:"isPartner"`
	PartnerName *string   `json:"partnerName,omitempty"`
	Areas       []Area    `json:"areas"`
}
