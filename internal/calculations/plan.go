package calculations

import "time"

// CalculatePaymentPlan validates the request, derives the shared constants once
// and builds the schedule with its accessible month.
func CalculatePaymentPlan(p CalculationParams) (*CalculationResult, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	d, err := Derive(p)
	if err != nil {
		return nil, err
	}

	return planFromDerived(d, p.FinancingType, StartDate(p))
}

func planFromDerived(d DerivedConstants, financingType FinancingType, start time.Time) (*CalculationResult, error) {
	accessibleMonth := ResolveAccessibleMonth(d)

	schedule, err := BuildSchedule(d, financingType, accessibleMonth, start)
	if err != nil {
		return nil, err
	}

	return &CalculationResult{
		Schedule:         schedule,
		TotalPayment:     d.TotalPayment(),
		InstallmentCount: d.InstallmentCount,
		OrganizationFee:  d.OrganizationFee,
		NetFinancing:     d.NetFinancing,
		RequiredPayment:  d.RequiredPayment,
		AccessibleMonth:  accessibleMonth,
	}, nil
}

// StartDate returns p.StartDate, or today (UTC) when it is not set.
func StartDate(p CalculationParams) time.Time {
	if !p.StartDate.IsZero() {
		return p.StartDate
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}
