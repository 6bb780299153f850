package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	SavingsAnnualRate    float64 `env:"SAVINGS_ANNUAL_RATE" envDefault:"0.12"`
	CheckingInterestRate float64 `env:"CHECKING_INTEREST_RATE" envDefault:"0.001"`

	// Zero disables the corresponding withdrawal cap.
	WithdrawalDailyLimit   float64 `env:"WITHDRAWAL_DAILY_LIMIT" envDefault:"0"`
	WithdrawalMonthlyLimit float64 `env:"WITHDRAWAL_MONTHLY_LIMIT" envDefault:"0"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
