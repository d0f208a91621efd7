package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/katilimfinans/payment-plan-engine/internal/config"
	"github.com/katilimfinans/payment-plan-engine/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func testRegistry(t *testing.T) map[string]ToolHandler {
	t.Helper()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	log := zap.NewNop()
	tracer := noop.NewTracerProvider().Tracer("test")
	return Registry(cfg, tracer, worker.NewRunner(2, log), log)
}

func baseParams() map[string]interface{} {
	return map[string]interface{}{
		"financing_amount":      500000.0,
		"down_payment":          100000.0,
		"organization_fee_rate": 7.0,
		"monthly_payment":       5000.0,
		"financing_type":        "open",
		"start_date":            "2026-01-15",
	}
}

func TestRegistry(t *testing.T) {
	registry := testRegistry(t)
	assert.Len(t, registry, 3)
	for _, name := range []string{PaymentPlanTool, AccessibleMonthTool, CompareFinancingTypesTool} {
		assert.Contains(t, registry, name)
	}
}

func TestPaymentPlanHandler(t *testing.T) {
	handler := testRegistry(t)[PaymentPlanTool]

	value, err := handler(context.Background(), baseParams())
	require.NoError(t, err)

	response, ok := value.(*PaymentPlanResponse)
	require.True(t, ok)
	assert.NotEmpty(t, response.CalculationID)
	assert.Equal(t, 80, response.Result.InstallmentCount)
	require.NotNil(t, response.Result.AccessibleMonth)
	assert.Equal(t, 6, *response.Result.AccessibleMonth)
	assert.Equal(t, time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC), response.Result.Schedule[0].PaymentDate)
	assert.Equal(t, "535.000,00 TL", response.Display["total_payment"])
	assert.Equal(t, 80, response.Summary.InstallmentCount)
}

func TestPaymentPlanHandler_DownPaymentOptional(t *testing.T) {
	handler := testRegistry(t)[PaymentPlanTool]

	params := baseParams()
	delete(params, "down_payment")

	value, err := handler(context.Background(), params)
	require.NoError(t, err)
	response := value.(*PaymentPlanResponse)
	assert.Equal(t, "200.000,00 TL", response.Display["required_payment"])
}

func TestPaymentPlanHandler_InvalidParams(t *testing.T) {
	handler := testRegistry(t)[PaymentPlanTool]

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		field  string
	}{
		{"missing amount", func(p map[string]interface{}) { delete(p, "financing_amount") }, "financing_amount"},
		{"amount as string", func(p map[string]interface{}) { p["financing_amount"] = "500000" }, "financing_amount"},
		{"missing financing type", func(p map[string]interface{}) { delete(p, "financing_type") }, "financing_type"},
		{"unknown financing type", func(p map[string]interface{}) { p["financing_type"] = "weekly" }, "financing_type"},
		{"bad start date", func(p map[string]interface{}) { p["start_date"] = "15.01.2026" }, "start_date"},
		{"monthly payment too small", func(p map[string]interface{}) { p["monthly_payment"] = 500.0 }, "monthly_payment"},
		{"down payment too large", func(p map[string]interface{}) { p["down_payment"] = 300000.0 }, "down_payment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := baseParams()
			tt.mutate(params)

			value, err := handler(context.Background(), params)
			assert.Nil(t, value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, calculations.ErrInvalidInput))

			var inputErr *calculations.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestPaymentPlanHandler_CancelledContext(t *testing.T) {
	handler := testRegistry(t)[PaymentPlanTool]

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler(ctx, baseParams())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAccessibleMonthHandler(t *testing.T) {
	handler := testRegistry(t)[AccessibleMonthTool]

	params := baseParams()
	params["down_payment"] = 0.0

	value, err := handler(context.Background(), params)
	require.NoError(t, err)

	response := value.(*AccessibleMonthResponse)
	require.NotNil(t, response.AccessibleMonth)
	assert.Equal(t, 40, *response.AccessibleMonth)
	assert.Equal(t, 100, response.Derived.InstallmentCount)
	require.NotNil(t, response.AccessDate)
	assert.Equal(t, time.Date(2029, time.May, 15, 0, 0, 0, 0, time.UTC), *response.AccessDate)
}

func TestCompareFinancingTypesHandler(t *testing.T) {
	handler := testRegistry(t)[CompareFinancingTypesTool]

	params := baseParams()
	delete(params, "financing_type")

	value, err := handler(context.Background(), params)
	require.NoError(t, err)

	comparison := value.(*calculations.ComparisonResult)
	require.NotNil(t, comparison.AccessibleMonth)
	assert.Equal(t, 6, *comparison.AccessibleMonth)
	assert.Equal(t, 1, comparison.OpenStatuses[calculations.StatusAccessible])
	assert.Equal(t, 1, comparison.TicketedStatuses[calculations.StatusLucky])
	assert.Equal(t, 74, comparison.TicketedStatuses[calculations.StatusUnlucky])
}
