package model

// DashboardStats are the headline numbers for the operator's home screen.
// BankBalance accumulates the reserve fund share over all closed months.
type DashboardStats struct {
	HectaresMonth float64 `json:"hectaresMonth"`
	HectaresYear  float64 `json:"hectaresYear"`
	BalanceMonth  float64 `json:"balanceMonth"`
	BalanceYear   float64 `json:"balanceYear"`
	BankBalance   float64 `json:"bankBalance"`
}
