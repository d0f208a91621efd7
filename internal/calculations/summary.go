package calculations

// Summarize flattens a result into the row stored per calculation.
func Summarize(p CalculationParams, result *CalculationResult) PlanSummary {
	summary := PlanSummary{
		FinancingType:       p.FinancingType,
		FinancingAmount:     p.FinancingAmount,
		DownPayment:         p.DownPayment,
		OrganizationFeeRate: p.OrganizationFeeRate,
		OrganizationFee:     result.OrganizationFee,
		MonthlyPayment:      p.MonthlyPayment,
		TotalPayment:        result.TotalPayment,
		InstallmentCount:    result.InstallmentCount,
		AccessibleMonth:     result.AccessibleMonth,
	}

	if n := len(result.Schedule); n > 0 {
		last := result.Schedule[n-1]
		summary.LastPayment = last.PaymentAmount
		summary.LastPaymentDate = last.PaymentDate
	}

	for _, item := range result.Schedule {
		if item.CanAccessFinancing {
			date := item.PaymentDate
			summary.AccessDate = &date
			break
		}
	}

	return summary
}
