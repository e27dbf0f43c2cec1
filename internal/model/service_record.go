package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationType string

const (
	ApplicationSpraying  ApplicationType = "PULVERIZACAO"
	ApplicationDispersal ApplicationType = "DISPERSAO"
)

// ServiceRecord is one drone application execution. ClientName and AreaName
// are denormalized at creation time and do not track later renames.
// TotalValue is always the generous-rounded product of hectares and price.
type ServiceRecord struct {
	ID         uuid.UUID       `json:"id"`
	Date       time.Time       `json:"date"`
	ClientID   uuid.UUID       `json:"clientId"`
	ClientName string          `json:"clientName"`
	AreaID     uuid.UUID       `json:"areaId"`
	AreaName   string          `json:"areaName"`
	Hectares   float64         `json:"hectares"`
	Type       ApplicationType `json:"type"`
	UnitPrice  float64         `json:"unitPrice"`
	TotalValue float64         `json:"totalValue"`
	CreatedAt  time.Time       `json:"createdAt"`
}
