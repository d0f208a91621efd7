package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validParams() calculations.CalculationParams {
	return calculations.CalculationParams{
		FinancingAmount:     decimal.NewFromInt(500000),
		DownPayment:         decimal.NewFromInt(100000),
		OrganizationFeeRate: decimal.NewFromInt(7),
		MonthlyPayment:      decimal.NewFromInt(5000),
		FinancingType:       calculations.FinancingOpen,
		StartDate:           time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunner_Calculate(t *testing.T) {
	runner := NewRunner(2, zap.NewNop())

	result, err := runner.Calculate(context.Background(), validParams())
	require.NoError(t, err)
	assert.Equal(t, 80, result.InstallmentCount)
	require.NotNil(t, result.AccessibleMonth)
	assert.Equal(t, 6, *result.AccessibleMonth)
}

func TestRunner_CalculateInvalidInput(t *testing.T) {
	runner := NewRunner(2, zap.NewNop())

	p := validParams()
	p.MonthlyPayment = decimal.Zero

	result, err := runner.Calculate(context.Background(), p)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, calculations.ErrInvalidInput))
}

func TestRunner_SubmitDeliversOnce(t *testing.T) {
	runner := NewRunner(1, zap.NewNop())

	out := runner.Submit(context.Background(), func() (interface{}, error) {
		return 42, nil
	})

	outcome := <-out
	require.NoError(t, outcome.Err)
	assert.Equal(t, 42, outcome.Value)

	select {
	case <-out:
		t.Fatal("outcome delivered twice")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRunner_CallerStopsWaiting(t *testing.T) {
	runner := NewRunner(1, zap.NewNop())

	started := make(chan struct{})
	release := make(chan struct{})
	busy := runner.Submit(context.Background(), func() (interface{}, error) {
		close(started)
		<-release
		return "slow", nil
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := runner.Do(ctx, func() (interface{}, error) {
		return "never", nil
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
	outcome := <-busy
	require.NoError(t, outcome.Err)
	assert.Equal(t, "slow", outcome.Value)

	// the slot is free again
	value, err := runner.Do(context.Background(), func() (interface{}, error) {
		return "next", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "next", value)
}

func TestRunner_RecoversPanic(t *testing.T) {
	runner := NewRunner(1, zap.NewNop())

	_, err := runner.Do(context.Background(), func() (interface{}, error) {
		panic("boom")
	})
	assert.True(t, errors.Is(err, ErrJobPanicked))
}
