package validators

import (
	"errors"
	"math"
	"testing"

	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/katilimfinans/payment-plan-engine/internal/config"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid financing amount",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFinancingAmount(cfg, v.(float64)) },
			value:     500000.0,
			wantError: false,
		},
		{
			name:      "financing amount at minimum",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFinancingAmount(cfg, v.(float64)) },
			value:     50000.0,
			wantError: false,
		},
		{
			name:      "financing amount below minimum",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFinancingAmount(cfg, v.(float64)) },
			value:     49999.0,
			wantError: true,
		},
		{
			name:      "financing amount above maximum",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFinancingAmount(cfg, v.(float64)) },
			value:     5000001.0,
			wantError: true,
		},
		{
			name:      "financing amount NaN",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFinancingAmount(cfg, v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "down payment at half",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDownPayment(cfg, 500000, v.(float64)) },
			value:     250000.0,
			wantError: false,
		},
		{
			name:      "down payment above half",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDownPayment(cfg, 500000, v.(float64)) },
			value:     250001.0,
			wantError: true,
		},
		{
			name:      "negative down payment",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDownPayment(cfg, 500000, v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "valid fee rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFeeRate(cfg, v.(float64)) },
			value:     7.0,
			wantError: false,
		},
		{
			name:      "fee rate above range",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFeeRate(cfg, v.(float64)) },
			value:     11.0,
			wantError: true,
		},
		{
			name:      "valid monthly payment",
			validator: func(cfg *config.Config, v interface{}) error { return CheckMonthlyPayment(cfg, v.(float64)) },
			value:     5000.0,
			wantError: false,
		},
		{
			name:      "monthly payment zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckMonthlyPayment(cfg, v.(float64)) },
			value:     0.0,
			wantError: true,
		},
		{
			name:      "monthly payment infinite",
			validator: func(cfg *config.Config, v interface{}) error { return CheckMonthlyPayment(cfg, v.(float64)) },
			value:     math.Inf(1),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, calculations.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCheckRequest(t *testing.T) {
	cfg, _ := config.LoadConfig()

	params, err := CheckRequest(cfg, Request{
		FinancingAmount:     500000,
		DownPayment:         100000,
		OrganizationFeeRate: 7,
		MonthlyPayment:      5000,
		FinancingType:       "open",
	})
	if err != nil {
		t.Fatalf("CheckRequest() error = %v", err)
	}
	if params.FinancingType != calculations.FinancingOpen {
		t.Errorf("expected open, got %s", params.FinancingType)
	}
	if params.MonthlyPayment.IntPart() != 5000 {
		t.Errorf("expected monthly payment 5000, got %s", params.MonthlyPayment)
	}
}

func TestCheckRequest_ReportsEveryField(t *testing.T) {
	cfg, _ := config.LoadConfig()

	_, err := CheckRequest(cfg, Request{
		FinancingAmount:     10,
		DownPayment:         -5,
		OrganizationFeeRate: 50,
		MonthlyPayment:      0,
		FinancingType:       "weekly",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, calculations.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined error, got %T", err)
	}
	fields := map[string]bool{}
	for _, e := range joined.Unwrap() {
		var inputErr *calculations.InputError
		if errors.As(e, &inputErr) {
			fields[inputErr.Field] = true
		}
	}
	for _, field := range []string{"financing_amount", "down_payment", "organization_fee_rate", "monthly_payment", "financing_type"} {
		if !fields[field] {
			t.Errorf("expected a violation for %s", field)
		}
	}
}
