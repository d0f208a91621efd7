package validators

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/katilimfinans/payment-plan-engine/internal/config"
	"github.com/katilimfinans/payment-plan-engine/pkg/utils"
	"github.com/shopspring/decimal"
)

// Request is a payment plan request as it arrives from a form or a tool call.
type Request struct {
	FinancingAmount     float64
	DownPayment         float64
	OrganizationFeeRate float64
	MonthlyPayment      float64
	FinancingType       string
	StartDate           time.Time
}

// ValidatePositiveNumber checks that value is finite and inside [min; max].
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return &calculations.InputError{Field: name, Reason: "value is not a finite number"}
	}
	if value < minInclusive {
		return &calculations.InputError{Field: name, Reason: fmt.Sprintf("value must be ≥ %g", minInclusive)}
	}
	if value > maxInclusive {
		return &calculations.InputError{Field: name, Reason: fmt.Sprintf("value must be ≤ %g", maxInclusive)}
	}
	return nil
}

// CheckFinancingAmount checks the requested financing amount.
func CheckFinancingAmount(cfg *config.Config, amount float64) error {
	return ValidatePositiveNumber("financing_amount", amount, cfg.MinFinancingAmount, cfg.MaxFinancingAmount)
}

// CheckDownPayment checks the down payment against the configured share of the amount.
func CheckDownPayment(cfg *config.Config, amount, downPayment float64) error {
	return ValidatePositiveNumber("down_payment", downPayment, 0, amount*cfg.MaxDownPaymentRatio)
}

// CheckFeeRate checks the organization fee percentage.
func CheckFeeRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("organization_fee_rate", rate, cfg.MinFeeRate, cfg.MaxFeeRate)
}

// CheckMonthlyPayment checks the monthly installment.
func CheckMonthlyPayment(cfg *config.Config, monthly float64) error {
	return ValidatePositiveNumber("monthly_payment", monthly, cfg.MinMonthlyPayment, math.MaxFloat64)
}

// CheckFinancingType parses the financing type.
func CheckFinancingType(value string) (calculations.FinancingType, error) {
	return calculations.ParseFinancingType(value)
}

// CheckRequest validates every field, reports all violations together and
// converts the request into engine parameters.
func CheckRequest(cfg *config.Config, req Request) (calculations.CalculationParams, error) {
	financingType, typeErr := CheckFinancingType(req.FinancingType)

	err := errors.Join(
		CheckFinancingAmount(cfg, req.FinancingAmount),
		CheckDownPayment(cfg, req.FinancingAmount, req.DownPayment),
		CheckFeeRate(cfg, req.OrganizationFeeRate),
		CheckMonthlyPayment(cfg, req.MonthlyPayment),
		typeErr,
	)
	if err != nil {
		return calculations.CalculationParams{}, err
	}

	return calculations.CalculationParams{
		FinancingAmount:     decimal.NewFromFloat(req.FinancingAmount),
		DownPayment:         decimal.NewFromFloat(req.DownPayment),
		OrganizationFeeRate: decimal.NewFromFloat(req.OrganizationFeeRate),
		MonthlyPayment:      decimal.NewFromFloat(req.MonthlyPayment),
		FinancingType:       financingType,
		StartDate:           req.StartDate,
	}, nil
}
