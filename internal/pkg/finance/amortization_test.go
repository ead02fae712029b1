package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyPayment_StandardMortgage(t *testing.T) {
	// 300,000 at 6% over 30 years is the textbook fixture: 1798.65/month.
	payment := MonthlyPayment(decimal.NewFromInt(300000), decimal.NewFromFloat(0.06), 30)
	assert.True(t, payment.Equal(decimal.NewFromFloat(1798.65)), "got %s", payment)
}

func TestMonthlyPayment_ZeroRateIsStraightLine(t *testing.T) {
	// No interest means the principal splits evenly across the term.
	payment := MonthlyPayment(decimal.NewFromInt(120000), decimal.Zero, 10)
	assert.True(t, payment.Equal(decimal.NewFromInt(1000)), "got %s", payment)
}

func TestMonthlyPayment_ZeroTermReturnsPrincipal(t *testing.T) {
	principal := decimal.NewFromFloat(5000.505)
	payment := MonthlyPayment(principal, decimal.NewFromFloat(0.05), 0)
	assert.True(t, payment.Equal(decimal.NewFromFloat(5000.51)), "got %s", payment)
}

func TestMonthlyPayment_TotalRepaidExceedsPrincipal(t *testing.T) {
	principal := decimal.NewFromInt(250000)
	payment := MonthlyPayment(principal, decimal.NewFromFloat(0.045), 15)

	total := payment.Mul(decimal.NewFromInt(15 * 12))
	assert.True(t, total.GreaterThan(principal), "interest must make total %s exceed principal %s", total, principal)

	// Sanity bound: total interest on 4.5%/15y stays well under the principal itself.
	assert.True(t, total.LessThan(principal.Mul(decimal.NewFromInt(2))))
}

func TestMonthlyPayment_ShorterTermCostsMorePerMonth(t *testing.T) {
	principal := decimal.NewFromInt(200000)
	rate := decimal.NewFromFloat(0.05)

	short := MonthlyPayment(principal, rate, 5)
	long := MonthlyPayment(principal, rate, 30)
	assert.True(t, short.GreaterThan(long))
}
