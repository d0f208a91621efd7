package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/katilimfinans/payment-plan-engine/internal/config"
	"github.com/katilimfinans/payment-plan-engine/internal/metrics"
	"github.com/katilimfinans/payment-plan-engine/internal/validators"
	"github.com/katilimfinans/payment-plan-engine/internal/worker"
	"github.com/katilimfinans/payment-plan-engine/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	PaymentPlanTool           = "payment_plan"
	AccessibleMonthTool       = "accessible_month"
	CompareFinancingTypesTool = "compare_financing_types"
)

// ToolHandler handles one tool call.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// PaymentPlanResponse is returned by the payment_plan tool.
type PaymentPlanResponse struct {
	CalculationID string                          `json:"calculation_id"`
	Result        *calculations.CalculationResult `json:"result"`
	Summary       calculations.PlanSummary        `json:"summary"`
	Display       map[string]string               `json:"display"`
}

// AccessibleMonthResponse is returned by the accessible_month tool.
type AccessibleMonthResponse struct {
	Derived         calculations.DerivedConstants `json:"derived"`
	AccessibleMonth *int                          `json:"accessible_month"`
	AccessDate      *time.Time                    `json:"access_date,omitempty"`
}

// Registry returns every tool keyed by name.
func Registry(cfg *config.Config, tracer trace.Tracer, runner *worker.Runner, log *zap.Logger) map[string]ToolHandler {
	return map[string]ToolHandler{
		PaymentPlanTool:           PaymentPlanHandler(cfg, tracer, runner, log),
		AccessibleMonthTool:       AccessibleMonthHandler(cfg, tracer, runner, log),
		CompareFinancingTypesTool: CompareFinancingTypesHandler(cfg, tracer, runner, log),
	}
}

// PaymentPlanHandler builds the full schedule for a request.
func PaymentPlanHandler(cfg *config.Config, tracer trace.Tracer, runner *worker.Runner, log *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := PaymentPlanTool

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		p, err := checkParams(cfg, span, params, true)
		if err != nil {
			return nil, fail(span, log, toolName, err)
		}

		value, err := runner.Do(ctx, func() (interface{}, error) {
			defer observe(p.FinancingType, time.Now())
			return calculations.CalculatePaymentPlan(p)
		})
		if err != nil {
			return nil, fail(span, log, toolName, err)
		}
		result := value.(*calculations.CalculationResult)

		id := uuid.New().String()
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("calculation_id", id),
			attribute.Int("installment_count", result.InstallmentCount),
		)
		if result.AccessibleMonth != nil {
			span.SetAttributes(attribute.Int("accessible_month", *result.AccessibleMonth))
			metrics.AccessibleMonth.WithLabelValues(string(p.FinancingType)).Observe(float64(*result.AccessibleMonth))
		}
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		log.Info("payment plan calculated",
			zap.String("calculation_id", id),
			zap.String("financing_type", string(p.FinancingType)),
			zap.Int("installment_count", result.InstallmentCount),
			zap.Intp("accessible_month", result.AccessibleMonth),
		)

		return &PaymentPlanResponse{
			CalculationID: id,
			Result:        result,
			Summary:       calculations.Summarize(p, result),
			Display: map[string]string{
				"total_payment":    utils.FormatLira(result.TotalPayment),
				"organization_fee": utils.FormatLira(result.OrganizationFee),
				"net_financing":    utils.FormatLira(result.NetFinancing),
				"required_payment": utils.FormatLira(result.RequiredPayment),
				"monthly_payment":  utils.FormatLira(p.MonthlyPayment),
			},
		}, nil
	}
}

// AccessibleMonthHandler resolves only the eligibility month, without the schedule.
func AccessibleMonthHandler(cfg *config.Config, tracer trace.Tracer, runner *worker.Runner, log *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := AccessibleMonthTool

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		p, err := checkParams(cfg, span, params, true)
		if err != nil {
			return nil, fail(span, log, toolName, err)
		}

		value, err := runner.Do(ctx, func() (interface{}, error) {
			if err := calculations.Validate(p); err != nil {
				return nil, err
			}
			derived, err := calculations.Derive(p)
			if err != nil {
				return nil, err
			}

			response := &AccessibleMonthResponse{
				Derived:         derived,
				AccessibleMonth: calculations.ResolveAccessibleMonth(derived),
			}
			if response.AccessibleMonth != nil {
				date := calculations.StartDate(p).AddDate(0, *response.AccessibleMonth, 0)
				response.AccessDate = &date
			}
			return response, nil
		})
		if err != nil {
			return nil, fail(span, log, toolName, err)
		}
		response := value.(*AccessibleMonthResponse)

		span.SetAttributes(attribute.Bool("success", true))
		if response.AccessibleMonth != nil {
			span.SetAttributes(attribute.Int("accessible_month", *response.AccessibleMonth))
		}
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return response, nil
	}
}

// CompareFinancingTypesHandler returns the open and ticketed plans side by side.
func CompareFinancingTypesHandler(cfg *config.Config, tracer trace.Tracer, runner *worker.Runner, log *zap.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := CompareFinancingTypesTool

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		p, err := checkParams(cfg, span, params, false)
		if err != nil {
			return nil, fail(span, log, toolName, err)
		}

		value, err := runner.Do(ctx, func() (interface{}, error) {
			return calculations.CompareFinancingTypes(p)
		})
		if err != nil {
			return nil, fail(span, log, toolName, err)
		}

		span.SetAttributes(attribute.Bool("success", true))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return value.(*calculations.ComparisonResult), nil
	}
}

// checkParams extracts the request from tool params and runs the form validation.
// When requireType is false a missing financing_type defaults to open.
func checkParams(cfg *config.Config, span trace.Span, params map[string]interface{}, requireType bool) (calculations.CalculationParams, error) {
	req, err := parseRequest(params, requireType)
	if err != nil {
		return calculations.CalculationParams{}, err
	}

	span.SetAttributes(
		attribute.Float64("financing_amount", req.FinancingAmount),
		attribute.Float64("down_payment", req.DownPayment),
		attribute.Float64("organization_fee_rate", req.OrganizationFeeRate),
		attribute.Float64("monthly_payment", req.MonthlyPayment),
		attribute.String("financing_type", req.FinancingType),
	)

	return validators.CheckRequest(cfg, req)
}

func parseRequest(params map[string]interface{}, requireType bool) (validators.Request, error) {
	var req validators.Request
	var err error

	if req.FinancingAmount, err = number(params, "financing_amount", true); err != nil {
		return req, err
	}
	if req.DownPayment, err = number(params, "down_payment", false); err != nil {
		return req, err
	}
	if req.OrganizationFeeRate, err = number(params, "organization_fee_rate", true); err != nil {
		return req, err
	}
	if req.MonthlyPayment, err = number(params, "monthly_payment", true); err != nil {
		return req, err
	}

	switch raw := params["financing_type"].(type) {
	case string:
		req.FinancingType = raw
	case nil:
		if requireType {
			return req, &calculations.InputError{Field: "financing_type", Reason: "missing parameter"}
		}
		req.FinancingType = string(calculations.FinancingOpen)
	default:
		return req, &calculations.InputError{Field: "financing_type", Reason: "must be a string"}
	}

	switch raw := params["start_date"].(type) {
	case string:
		start, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return req, &calculations.InputError{Field: "start_date", Reason: "must be formatted as YYYY-MM-DD"}
		}
		req.StartDate = start
	case nil:
	default:
		return req, &calculations.InputError{Field: "start_date", Reason: "must be a string"}
	}

	return req, nil
}

func number(params map[string]interface{}, key string, required bool) (float64, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		if required {
			return 0, &calculations.InputError{Field: key, Reason: "missing parameter"}
		}
		return 0, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return 0, &calculations.InputError{Field: key, Reason: "must be a number"}
	}
	return value, nil
}

func observe(financingType calculations.FinancingType, start time.Time) {
	metrics.CalculationDuration.WithLabelValues(string(financingType)).Observe(time.Since(start).Seconds())
}

// fail records a failed tool call on the span, in metrics and in the log.
func fail(span trace.Span, log *zap.Logger, toolName string, err error) error {
	kind := "calculation"
	switch {
	case errors.Is(err, calculations.ErrInvalidInput):
		kind = "validation"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = "timeout"
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	span.SetAttributes(attribute.String("error", kind+"_error"))
	metrics.ToolCalls.WithLabelValues(toolName, kind+"_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, kind).Inc()

	if kind == "validation" {
		log.Debug("rejected tool call", zap.String("tool", toolName), zap.Error(err))
		return fmt.Errorf("invalid parameters: %w", err)
	}
	log.Warn("tool call failed", zap.String("tool", toolName), zap.String("kind", kind), zap.Error(err))
	return fmt.Errorf("calculation failed: %w", err)
}
