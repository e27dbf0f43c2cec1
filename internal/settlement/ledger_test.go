package settlement

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/droneflow/settlements/internal/model"
)

func contribution(partner string, amount float64) model.Contribution {
	return model.Contribution{
		ID:          uuid.New(),
		PartnerName: partner,
		Amount:      amount,
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestTotalContributed(t *testing.T) {
	contributions := []model.Contribution{
		contribution("Kaka", 100.10),
		contribution("Kaka", 49.90),
		contribution("Patrick", 500),
	}

	assert.InDelta(t, 150, TotalContributed("Kaka", contributions), 1e-9)
	assert.InDelta(t, 500, TotalContributed("Patrick", contributions), 1e-9)
	assert.Zero(t, TotalContributed("Geraldo", contributions))
	assert.Zero(t, TotalContributed("Kaka", nil))
}

func TestTotalContributedOrderIndependent(t *testing.T) {
	a := []model.Contribution{
		contribution("Kaka", 10.01),
		contribution("Kaka", 20.02),
		contribution("Kaka", 30.03),
	}
	b := []model.Contribution{a[2], a[0], a[1]}

	assert.Equal(t, TotalContributed("Kaka", a), TotalContributed("Kaka", b))
}

func TestRunningBalanceOffsetsNegativeMonth(t *testing.T) {
	summary := model.PartnerSummary{ShortName: "Kaka", NetProfit: -250}

	balance := RunningBalance(summary, nil)
	assert.InDelta(t, -250, balance, 1e-9)

	balance = RunningBalance(summary, []model.Contribution{contribution("Kaka", 250)})
	assert.Equal(t, 0.0, balance)
	assert.False(t, math.Signbit(balance))
}

func TestRunningBalanceIncludesSalary(t *testing.T) {
	salary := 5000.0
	summary := model.PartnerSummary{ShortName: "Geraldo", NetProfit: 750, Salary: &salary}

	assert.InDelta(t, 5750, RunningBalance(summary, nil), 1e-9)
	assert.InDelta(t, 5850, RunningBalance(summary, []model.Contribution{contribution("Geraldo", 100)}), 1e-9)
}

func TestRunningBalanceIgnoresOtherPartners(t *testing.T) {
	summary := model.PartnerSummary{ShortName: "Patrick", NetProfit: 100}
	contributions := []model.Contribution{
		contribution("Kaka", 999),
		contribution("Patrick", 50),
	}

	assert.InDelta(t, 150, RunningBalance(summary, contributions), 1e-9)
}
