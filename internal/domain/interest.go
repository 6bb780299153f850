package domain

import "github.com/shopspring/decimal"

// InterestStrategy computes a new balance from the current one. Strategies
// are stateless policy objects; accounts may share them.
type InterestStrategy interface {
	Apply(balance decimal.Decimal) decimal.Decimal
}

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// SavingsInterestStrategy compounds an annual rate monthly:
// balance * (1 + annualRate/12)^months.
type SavingsInterestStrategy struct {
	annualRate decimal.Decimal
	months     int64
}

func NewSavingsInterestStrategy(annualRate decimal.Decimal, months int64) *SavingsInterestStrategy {
	if months <= 0 {
		months = 1
	}
	return &SavingsInterestStrategy{annualRate: annualRate, months: months}
}

func (s *SavingsInterestStrategy) Apply(balance decimal.Decimal) decimal.Decimal {
	monthlyRate := s.annualRate.Div(twelve)
	factor := one.Add(monthlyRate).Pow(decimal.NewFromInt(s.months))
	return balance.Mul(factor)
}

// DefaultCheckingRate is the flat single-period checking rate (0.1%).
var DefaultCheckingRate = decimal.NewFromFloat(0.001)

// CheckingInterestStrategy applies a flat single-period rate.
type CheckingInterestStrategy struct {
	rate decimal.Decimal
}

func NewCheckingInterestStrategy(rate decimal.Decimal) *CheckingInterestStrategy {
	if rate.IsZero() {
		rate = DefaultCheckingRate
	}
	return &CheckingInterestStrategy{rate: rate}
}

func (c *CheckingInterestStrategy) Apply(balance decimal.Decimal) decimal.Decimal {
	return balance.Add(balance.Mul(c.rate))
}
