package calculations

// ResolveAccessibleMonth returns the first month after the minimum wait in which
// the cumulative payments, down payment included, reach the required payment.
// It returns nil when no month of the schedule qualifies.
func ResolveAccessibleMonth(d DerivedConstants) *int {
	cumulative := d.DownPayment
	remaining := d.AmountToAmortize

	for m := 1; m <= d.InstallmentCount; m++ {
		payment := d.installment(m, remaining)
		cumulative = cumulative.Add(payment)
		remaining = remaining.Sub(payment)

		if m > MinimumWaitMonths && cumulative.GreaterThanOrEqual(d.RequiredPayment) {
			month := m
			return &month
		}
	}
	return nil
}
