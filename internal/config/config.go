package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	Port                      int
	MinFinancingAmount        float64
	MaxFinancingAmount        float64
	MaxDownPaymentRatio       float64
	MinFeeRate                float64
	MaxFeeRate                float64
	MinMonthlyPayment         float64
	MaxConcurrentCalculations int
	CalculationTimeout        time.Duration
	OTELEndpoint              string
	OTELServiceName           string
	LogLevel                  string
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:                      getEnvInt("PORT", 8000),
		MinFinancingAmount:        getEnvFloat("MIN_FINANCING_AMOUNT", 50_000),
		MaxFinancingAmount:        getEnvFloat("MAX_FINANCING_AMOUNT", 5_000_000),
		MaxDownPaymentRatio:       getEnvFloat("MAX_DOWN_PAYMENT_RATIO", 0.5),
		MinFeeRate:                getEnvFloat("MIN_FEE_RATE", 5),
		MaxFeeRate:                getEnvFloat("MAX_FEE_RATE", 10),
		MinMonthlyPayment:         getEnvFloat("MIN_MONTHLY_PAYMENT", 1_000),
		MaxConcurrentCalculations: getEnvInt("MAX_CONCURRENT_CALCULATIONS", 8),
		CalculationTimeout:        getEnvDuration("CALCULATION_TIMEOUT", 2*time.Second),
		OTELEndpoint:              getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:           getEnvString("OTEL_SERVICE_NAME", "payment-plan-engine"),
		LogLevel:                  getEnvString("LOG_LEVEL", "info"),
	}

	if cfg.MaxConcurrentCalculations < 1 {
		cfg.MaxConcurrentCalculations = 1
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
