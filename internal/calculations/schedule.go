package calculations

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuildSchedule walks months 1..InstallmentCount and labels each one for the
// given financing type. accessibleMonth must come from ResolveAccessibleMonth
// on the same DerivedConstants.
func BuildSchedule(d DerivedConstants, financingType FinancingType, accessibleMonth *int, start time.Time) ([]PaymentScheduleItem, error) {
	if !d.MonthlyPayment.IsPositive() {
		return nil, degenerate("monthly_payment", "must be positive, got %s", d.MonthlyPayment)
	}
	if d.InstallmentCount <= 0 || d.InstallmentCount > maxInstallmentCount {
		return nil, degenerate("installment_count", "out of range, got %d", d.InstallmentCount)
	}
	if !financingType.Valid() {
		return nil, invalid("financing_type", "unknown financing type %q", string(financingType))
	}

	n := d.InstallmentCount
	schedule := make([]PaymentScheduleItem, 0, n)
	cumulative := d.DownPayment
	remaining := d.AmountToAmortize

	for m := 1; m <= n; m++ {
		payment := d.installment(m, remaining)
		cumulative = cumulative.Add(payment)
		remaining = remaining.Sub(payment)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		status, canAccess := monthStatus(financingType, m, accessibleMonth)

		schedule = append(schedule, PaymentScheduleItem{
			MonthNumber:        m,
			PaymentDate:        start.AddDate(0, m, 0),
			PaymentAmount:      payment,
			CumulativePayment:  cumulative,
			RemainingBalance:   remaining,
			CanAccessFinancing: canAccess,
			Status:             status,
		})
	}

	return schedule, nil
}

func monthStatus(financingType FinancingType, month int, accessibleMonth *int) (PaymentStatus, bool) {
	if accessibleMonth == nil {
		return StatusWaiting, false
	}
	access := *accessibleMonth

	if financingType == FinancingOpen {
		switch {
		case month < access:
			return StatusWaiting, false
		case month == access:
			return StatusAccessible, true
		default:
			return StatusFinancingObtained, false
		}
	}

	// ticketed: months 6..access are the draw window, access itself is the grant
	switch {
	case month <= MinimumWaitMonths:
		return StatusWaiting, false
	case month <= access:
		return StatusLucky, month == access
	default:
		return StatusUnlucky, false
	}
}
