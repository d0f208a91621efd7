package calculations

import "fmt"

// CompareFinancingTypes builds the open and ticketed plans for the same request
// from a single derivation.
func CompareFinancingTypes(p CalculationParams) (*ComparisonResult, error) {
	// the type is replaced below, only the amounts have to be valid
	probe := p
	probe.FinancingType = FinancingOpen
	if err := Validate(probe); err != nil {
		return nil, err
	}

	d, err := Derive(probe)
	if err != nil {
		return nil, err
	}
	start := StartDate(p)

	openResult, err := planFromDerived(d, FinancingOpen, start)
	if err != nil {
		return nil, err
	}
	ticketedResult, err := planFromDerived(d, FinancingTicketed, start)
	if err != nil {
		return nil, err
	}

	var recommendation string
	if openResult.AccessibleMonth == nil {
		// only happens when the plan ends inside the minimum wait
		recommendation = fmt.Sprintf(
			"The plan closes after %d installments, before the %d month minimum wait ends. "+
				"Lower the monthly payment to stretch the plan past month %d.",
			d.InstallmentCount, MinimumWaitMonths, MinimumWaitMonths)
	} else {
		month := *openResult.AccessibleMonth
		recommendation = fmt.Sprintf(
			"Open financing is granted in month %d. Ticketed financing keeps the customer in the draw "+
				"from month %d and grants access no later than month %d.",
			month, MinimumWaitMonths+1, month)
	}

	return &ComparisonResult{
		Derived:          d,
		Open:             *openResult,
		Ticketed:         *ticketedResult,
		AccessibleMonth:  openResult.AccessibleMonth,
		OpenStatuses:     countStatuses(openResult.Schedule),
		TicketedStatuses: countStatuses(ticketedResult.Schedule),
		Recommendation:   recommendation,
	}, nil
}

func countStatuses(schedule []PaymentScheduleItem) map[PaymentStatus]int {
	counts := make(map[PaymentStatus]int)
	for _, item := range schedule {
		counts[item.Status]++
	}
	return counts
}
