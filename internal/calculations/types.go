package calculations

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FinancingType decides how the customer gets access to the financed amount.
type FinancingType string

const (
	// FinancingTicketed - çekilişli: access is decided by a draw inside the eligibility window.
	FinancingTicketed FinancingType = "ticketed"
	// FinancingOpen - çekilişsiz: access is granted as soon as the customer is eligible.
	FinancingOpen FinancingType = "open"
)

// ParseFinancingType accepts "ticketed" or "open" in any case.
func ParseFinancingType(s string) (FinancingType, error) {
	switch FinancingType(strings.ToLower(strings.TrimSpace(s))) {
	case FinancingTicketed:
		return FinancingTicketed, nil
	case FinancingOpen:
		return FinancingOpen, nil
	}
	return "", &InputError{Field: "financing_type", Reason: fmt.Sprintf("unknown financing type %q", s)}
}

// Valid reports whether t is one of the known financing types.
func (t FinancingType) Valid() bool {
	return t == FinancingTicketed || t == FinancingOpen
}

// PaymentStatus is the per-month label of a schedule item.
type PaymentStatus string

const (
	StatusWaiting           PaymentStatus = "waiting"
	StatusAccessible        PaymentStatus = "accessible"
	StatusLucky             PaymentStatus = "lucky"
	StatusUnlucky           PaymentStatus = "unlucky"
	StatusFinancingObtained PaymentStatus = "financing_obtained"
)

// CalculationParams holds the inputs of a payment plan calculation.
type CalculationParams struct {
	FinancingAmount     decimal.Decimal `json:"financing_amount"`
	DownPayment         decimal.Decimal `json:"down_payment"`
	OrganizationFeeRate decimal.Decimal `json:"organization_fee_rate"`
	MonthlyPayment      decimal.Decimal `json:"monthly_payment"`
	FinancingType       FinancingType   `json:"financing_type"`
	// StartDate is the day the plan is calculated on. Zero means today (UTC).
	StartDate time.Time `json:"start_date,omitempty"`
}

// DerivedConstants are computed once per calculation and shared by the
// eligibility resolver and the schedule builder.
type DerivedConstants struct {
	FinancingAmount  decimal.Decimal `json:"financing_amount"`
	OrganizationFee  decimal.Decimal `json:"organization_fee"`
	NetFinancing     decimal.Decimal `json:"net_financing"`
	RequiredPayment  decimal.Decimal `json:"required_payment"`
	AmountToAmortize decimal.Decimal `json:"amount_to_amortize"`
	InstallmentCount int             `json:"installment_count"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
}

// PaymentScheduleItem is one month of the payment plan.
type PaymentScheduleItem struct {
	MonthNumber        int             `json:"month_number"`
	PaymentDate        time.Time       `json:"payment_date"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	CumulativePayment  decimal.Decimal `json:"cumulative_payment"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	CanAccessFinancing bool            `json:"can_access_financing"`
	Status             PaymentStatus   `json:"status"`
}

// CalculationResult is the outcome of CalculatePaymentPlan.
type CalculationResult struct {
	Schedule         []PaymentScheduleItem `json:"schedule"`
	TotalPayment     decimal.Decimal       `json:"total_payment"`
	InstallmentCount int                   `json:"installment_count"`
	OrganizationFee  decimal.Decimal       `json:"organization_fee"`
	NetFinancing     decimal.Decimal       `json:"net_financing"`
	RequiredPayment  decimal.Decimal       `json:"required_payment"`
	AccessibleMonth  *int                  `json:"accessible_month"`
}

// PlanSummary is the denormalized row a persistence layer stores per calculation.
type PlanSummary struct {
	FinancingType       FinancingType   `json:"financing_type"`
	FinancingAmount     decimal.Decimal `json:"financing_amount"`
	DownPayment         decimal.Decimal `json:"down_payment"`
	OrganizationFeeRate decimal.Decimal `json:"organization_fee_rate"`
	OrganizationFee     decimal.Decimal `json:"organization_fee"`
	MonthlyPayment      decimal.Decimal `json:"monthly_payment"`
	LastPayment         decimal.Decimal `json:"last_payment"`
	TotalPayment        decimal.Decimal `json:"total_payment"`
	InstallmentCount    int             `json:"installment_count"`
	AccessibleMonth     *int            `json:"accessible_month"`
	AccessDate          *time.Time      `json:"access_date,omitempty"`
	LastPaymentDate     time.Time       `json:"last_payment_date"`
}

// ComparisonResult puts the open and ticketed plans for the same request side by side.
type ComparisonResult struct {
	Derived          DerivedConstants      `json:"derived"`
	Open             CalculationResult     `json:"open"`
	Ticketed         CalculationResult     `json:"ticketed"`
	AccessibleMonth  *int                  `json:"accessible_month"`
	OpenStatuses     map[PaymentStatus]int `json:"open_statuses"`
	TicketedStatuses map[PaymentStatus]int `json:"ticketed_statuses"`
	Recommendation   string                `json:"recommendation"`
}
