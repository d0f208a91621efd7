package calculations

import "github.com/shopspring/decimal"

// MinimumWaitMonths is the commitment period during which nobody can draw down financing.
const MinimumWaitMonths = 5

// maxInstallmentCount bounds the schedule length for callers that skip Validate.
const maxInstallmentCount = 100_000

var (
	MinFinancingAmount  = decimal.NewFromInt(50_000)
	MaxFinancingAmount  = decimal.NewFromInt(5_000_000)
	MaxDownPaymentRatio = decimal.RequireFromString("0.5")
	MinFeeRate          = decimal.NewFromInt(5)
	MaxFeeRate          = decimal.NewFromInt(10)
	MinMonthlyPayment   = decimal.NewFromInt(1_000)
)

// Validate checks the domain invariants and stops at the first violation.
func Validate(p CalculationParams) error {
	if p.FinancingAmount.LessThan(MinFinancingAmount) || p.FinancingAmount.GreaterThan(MaxFinancingAmount) {
		return invalid("financing_amount", "must be between %s and %s, got %s",
			MinFinancingAmount, MaxFinancingAmount, p.FinancingAmount)
	}
	if p.DownPayment.IsNegative() {
		return invalid("down_payment", "must not be negative, got %s", p.DownPayment)
	}
	if maxDown := p.FinancingAmount.Mul(MaxDownPaymentRatio); p.DownPayment.GreaterThan(maxDown) {
		return invalid("down_payment", "must not exceed %s (half of the financing amount), got %s",
			maxDown, p.DownPayment)
	}
	if p.OrganizationFeeRate.LessThan(MinFeeRate) || p.OrganizationFeeRate.GreaterThan(MaxFeeRate) {
		return invalid("organization_fee_rate", "must be between %s and %s, got %s",
			MinFeeRate, MaxFeeRate, p.OrganizationFeeRate)
	}
	if !p.MonthlyPayment.IsPositive() {
		return invalid("monthly_payment", "must be positive, got %s", p.MonthlyPayment)
	}
	if p.MonthlyPayment.LessThan(MinMonthlyPayment) {
		return invalid("monthly_payment", "must be at least %s, got %s", MinMonthlyPayment, p.MonthlyPayment)
	}
	if !p.FinancingType.Valid() {
		return invalid("financing_type", "unknown financing type %q", string(p.FinancingType))
	}
	return nil
}
