package domain

import (
	"github.com/shopspring/decimal"

	"ledger-core/internal/errors"
)

// withdrawalRule is one link in the ordered withdrawal pipeline. Rules only
// inspect; the first failure wins and nothing mutates.
type withdrawalRule func(a *Account, amount decimal.Decimal) error

var withdrawalRules = []withdrawalRule{
	ruleAccountOpen,
	ruleAmountPositive,
	ruleSufficientFunds,
	ruleWithinLimits,
	ruleTypeGuard,
}

func (a *Account) validateWithdrawal(amount decimal.Decimal) error {
	for _, rule := range withdrawalRules {
		if err := rule(a, amount); err != nil {
			return err
		}
	}
	return nil
}

func ruleAccountOpen(a *Account, _ decimal.Decimal) error {
	if !a.IsActive() {
		return errors.ErrAccountClosed
	}
	return nil
}

func ruleAmountPositive(_ *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	return nil
}

func ruleSufficientFunds(a *Account, amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return errors.ErrInsufficientFunds
	}
	return nil
}

func ruleWithinLimits(a *Account, amount decimal.Decimal) error {
	if a.Limits == nil {
		return nil
	}
	return a.Limits.Validate(amount)
}

// withdrawalGuards holds the per-type hook. Checking has no floor beyond
// zero; savings may not dip under its minimum balance.
var withdrawalGuards = map[AccountType]withdrawalRule{
	AccountTypeChecking: func(_ *Account, _ decimal.Decimal) error { return nil },
	AccountTypeSavings: func(a *Account, amount decimal.Decimal) error {
		if a.Balance.Sub(amount).LessThan(SavingsMinimumBalance) {
			return errors.ErrMinimumBalance
		}
		return nil
	},
}

func ruleTypeGuard(a *Account, amount decimal.Decimal) error {
	if guard, ok := withdrawalGuards[a.Type]; ok {
		return guard(a, amount)
	}
	return nil
}
