package calculations

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// share of the net financing that must be paid before access when there is a down payment
	requiredShareWithDownPayment = decimal.RequireFromString("0.25")
	// share of the financing amount that must be paid before access otherwise
	requiredShareWithoutDownPayment = decimal.RequireFromString("0.40")
)

// Derive computes the constants shared by ResolveAccessibleMonth and BuildSchedule.
func Derive(p CalculationParams) (DerivedConstants, error) {
	if !p.MonthlyPayment.IsPositive() {
		return DerivedConstants{}, degenerate("monthly_payment", "must be positive, got %s", p.MonthlyPayment)
	}

	netFinancing := p.FinancingAmount.Sub(p.DownPayment)
	amountToAmortize := p.FinancingAmount.Sub(p.DownPayment)

	var requiredPayment decimal.Decimal
	if p.DownPayment.IsPositive() {
		requiredPayment = netFinancing.Mul(requiredShareWithDownPayment)
	} else {
		requiredPayment = p.FinancingAmount.Mul(requiredShareWithoutDownPayment)
	}

	count, rem := amountToAmortize.QuoRem(p.MonthlyPayment, 0)
	if rem.IsPositive() {
		count = count.Add(decimal.NewFromInt(1))
	}
	if !count.IsPositive() {
		return DerivedConstants{}, degenerate("installment_count", "must be positive, got %s", count)
	}
	if count.GreaterThan(decimal.NewFromInt(maxInstallmentCount)) {
		return DerivedConstants{}, degenerate("installment_count", "exceeds %d, got %s", maxInstallmentCount, count)
	}

	return DerivedConstants{
		FinancingAmount:  p.FinancingAmount,
		OrganizationFee:  p.FinancingAmount.Mul(p.OrganizationFeeRate).Div(hundred),
		NetFinancing:     netFinancing,
		RequiredPayment:  requiredPayment,
		AmountToAmortize: amountToAmortize,
		InstallmentCount: int(count.IntPart()),
		DownPayment:      p.DownPayment,
		MonthlyPayment:   p.MonthlyPayment,
	}, nil
}

// installment is the amount due in month given the balance still open before it.
// The last month closes the balance exactly.
func (d DerivedConstants) installment(month int, remaining decimal.Decimal) decimal.Decimal {
	if month == d.InstallmentCount {
		return remaining
	}
	return d.MonthlyPayment
}

// TotalPayment is the financing amount plus the organization fee.
func (d DerivedConstants) TotalPayment() decimal.Decimal {
	return d.FinancingAmount.Add(d.OrganizationFee)
}
