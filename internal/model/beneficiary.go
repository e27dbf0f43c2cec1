package model

type BeneficiaryRole string

const (
	RoleFieldPartner BeneficiaryRole = "FIELD_PARTNER"
	RoleOperator     BeneficiaryRole = "OPERATOR"
	RoleReserve      BeneficiaryRole = "RESERVE"
)

// Beneficiary is one of the four fixed profit-sharing parties. Name is the
// short key used on expenses (paid_by) and contributions; FullName is the
// display form.
type Beneficiary struct {
	Name     string          `json:"name"`
	FullName string          `json:"fullName"`
	Role     BeneficiaryRole `json:"role"`
}
