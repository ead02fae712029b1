package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyPayment computes the level monthly payment that fully repays
// principal plus interest over termYears at the given annual rate:
//
//	M = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with r the monthly rate and n the number of monthly payments. A zero
// rate degenerates to straight-line repayment P/n. This is the single
// home of the amortization formula; callers must not re-derive it.
func MonthlyPayment(principal decimal.Decimal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	months := int64(termYears) * 12
	if months <= 0 {
		return principal.Round(2)
	}
	if annualRate.IsZero() {
		return principal.DivRound(decimal.NewFromInt(months), 2)
	}

	// The compounding factor needs float exponentiation; the final
	// rounding back to cents keeps results stable for ledger use.
	p, _ := principal.Float64()
	r, _ := annualRate.Float64()
	monthlyRate := r / 12
	factor := math.Pow(1+monthlyRate, float64(months))
	payment := p * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}
