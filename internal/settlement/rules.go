// Package settlement is the monthly settlement engine: period aggregation,
// the four-way profit distribution, and the perpetual contribution ledger.
// Everything here is a pure function over plain slices; persistence and
// lifecycle coordination live in the service package.
package settlement

import (
	"errors"

	"github.com/droneflow/settlements/internal/model"
)

// ErrMalformedInput is returned when an engine function is handed input it
// cannot interpret, such as a month outside 1..12.
var ErrMalformedInput = errors.New("malformed input")

// Rules is the static business configuration: the fixed operator salary
// added to every month's costs, the per-hectare rate charged against a field
// partner's own-farm production, and the beneficiary roster in payout order.
type Rules struct {
	FixedSalary    float64
	PerHectareRate float64
	Beneficiaries  []model.Beneficiary
}

func (r Rules) Beneficiary(name string) (model.Beneficiary, bool) {
	for _, b := range r.Beneficiaries {
		if b.Name == name {
			return b, true
		}
	}
	return model.Beneficiary{}, false
}

func (r Rules) Reserve() (model.Beneficiary, bool) {
	for _, b := range r.Beneficiaries {
		if b.Role == model.RoleReserve {
			return b, true
		}
	}
	return model.Beneficiary{}, false
}
