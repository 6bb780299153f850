package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-core/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newChecking(t *testing.T, balance string) *Account {
	t.Helper()
	a, err := NewAccount(AccountTypeChecking, dec(balance))
	require.NoError(t, err)
	return a
}

func newSavings(t *testing.T, balance string) *Account {
	t.Helper()
	a, err := NewAccount(AccountTypeSavings, dec(balance))
	require.NoError(t, err)
	return a
}

func TestNewAccount(t *testing.T) {
	a := newChecking(t, "50")
	assert.NotEqual(t, "", a.ID.String())
	assert.Equal(t, AccountStatusActive, a.Status)
	assert.False(t, a.CreatedAt.IsZero())

	_, err := NewAccount(AccountTypeChecking, dec("-1"))
	assert.True(t, errors.Is(err, errors.InvalidAmount))

	_, err = NewAccount(AccountType("FIXED_DEPOSIT"), dec("10"))
	assert.True(t, errors.Is(err, errors.UnsupportedAccountType))
}

func TestDeposit(t *testing.T) {
	a := newChecking(t, "100")

	tx, err := a.Deposit(dec("25.50"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(dec("125.50")))
	assert.True(t, tx.IsDeposit())
	assert.Equal(t, a.ID, tx.AccountID)
	assert.Nil(t, tx.DestinationAccountID)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	a := newChecking(t, "100")

	for _, amount := range []string{"0", "-5"} {
		_, err := a.Deposit(dec(amount))
		assert.True(t, errors.Is(err, errors.InvalidAmount), "amount %s", amount)
		assert.True(t, a.Balance.Equal(dec("100")))
	}
}

func TestDepositClosedAccount(t *testing.T) {
	a := newChecking(t, "100")
	a.Close()

	_, err := a.Deposit(dec("10"))
	assert.True(t, errors.Is(err, errors.AccountClosed))
	assert.True(t, a.Balance.Equal(dec("100")))
}

func TestWithdraw(t *testing.T) {
	a := newChecking(t, "100")

	tx, err := a.Withdraw(dec("30"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(dec("70")))
	assert.True(t, tx.IsWithdrawal())
}

func TestWithdrawDepositRoundTrip(t *testing.T) {
	a := newChecking(t, "250")

	_, err := a.Withdraw(dec("99.99"))
	require.NoError(t, err)
	_, err = a.Deposit(dec("99.99"))
	require.NoError(t, err)

	assert.True(t, a.Balance.Equal(dec("250")))
}

func TestWithdrawFailuresLeaveBalanceUnchanged(t *testing.T) {
	cases := []struct {
		name    string
		account func(t *testing.T) *Account
		amount  string
		code    errors.ErrorCode
	}{
		{"non-positive amount", func(t *testing.T) *Account { return newChecking(t, "100") }, "0", errors.InvalidAmount},
		{"negative amount", func(t *testing.T) *Account { return newChecking(t, "100") }, "-1", errors.InvalidAmount},
		{"insufficient funds", func(t *testing.T) *Account { return newChecking(t, "100") }, "100.01", errors.InsufficientFunds},
		{"closed account", func(t *testing.T) *Account {
			a := newChecking(t, "100")
			a.Close()
			return a
		}, "10", errors.AccountClosed},
		{"savings floor", func(t *testing.T) *Account { return newSavings(t, "100") }, "1", errors.MinimumBalanceViolation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.account(t)
			before := a.Balance

			_, err := a.Withdraw(dec(tc.amount))
			assert.True(t, errors.Is(err, tc.code), "got %v", err)
			assert.True(t, a.Balance.Equal(before))
		})
	}
}

func TestSavingsWithdrawToExactMinimumSucceeds(t *testing.T) {
	a := newSavings(t, "150")

	_, err := a.Withdraw(dec("50"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(SavingsMinimumBalance))
}

func TestWithdrawRespectsDailyLimit(t *testing.T) {
	daily := dec("1000")
	clock := newFakeClock("2025-03-10T09:00:00Z")
	a := newChecking(t, "5000")
	a.Limits = NewLimitConstraint(&daily, nil, clock.Now)

	_, err := a.Withdraw(dec("600"))
	require.NoError(t, err)

	_, err = a.Withdraw(dec("500"))
	assert.True(t, errors.Is(err, errors.DailyLimitExceeded))
	assert.True(t, a.Balance.Equal(dec("4400")))
	assert.True(t, a.Limits.DailyTotal().Equal(dec("600")))
}

func TestTransfer(t *testing.T) {
	source := newChecking(t, "800")
	dest := newChecking(t, "200")

	tx, err := source.TransferTo(dest, dec("300"))
	require.NoError(t, err)

	assert.True(t, source.Balance.Equal(dec("500")))
	assert.True(t, dest.Balance.Equal(dec("500")))
	assert.True(t, tx.IsTransfer())
	assert.Equal(t, source.ID, tx.AccountID)
	require.NotNil(t, tx.DestinationAccountID)
	assert.Equal(t, dest.ID, *tx.DestinationAccountID)
}

func TestTransferToSameAccount(t *testing.T) {
	a := newChecking(t, "100")

	_, err := a.TransferTo(a, dec("10"))
	assert.True(t, errors.Is(err, errors.SameAccountTransfer))
	assert.True(t, a.Balance.Equal(dec("100")))
}

// A destination that cannot accept the deposit must be caught before the
// source withdrawal happens, so neither balance moves.
func TestTransferClosedDestinationLeavesBalances(t *testing.T) {
	source := newChecking(t, "800")
	dest := newChecking(t, "200")
	dest.Close()

	_, err := source.TransferTo(dest, dec("300"))
	assert.True(t, errors.Is(err, errors.AccountClosed))
	assert.True(t, source.Balance.Equal(dec("800")))
	assert.True(t, dest.Balance.Equal(dec("200")))
}

func TestTransferInsufficientFunds(t *testing.T) {
	source := newChecking(t, "100")
	dest := newChecking(t, "200")

	_, err := source.TransferTo(dest, dec("100.01"))
	assert.True(t, errors.Is(err, errors.InsufficientFunds))
	assert.True(t, source.Balance.Equal(dec("100")))
	assert.True(t, dest.Balance.Equal(dec("200")))
}

func TestCloseIsIdempotentAndFreezesBalance(t *testing.T) {
	a := newChecking(t, "100")

	a.Close()
	a.Close()
	assert.Equal(t, AccountStatusClosed, a.Status)

	_, err := a.Withdraw(dec("10"))
	assert.True(t, errors.Is(err, errors.AccountClosed))
	err = a.ApplyInterest()
	assert.True(t, errors.Is(err, errors.AccountClosed))
	assert.True(t, a.Balance.Equal(dec("100")))
}

func TestApplyInterestWithoutStrategy(t *testing.T) {
	a := newChecking(t, "100")

	err := a.ApplyInterest()
	assert.True(t, errors.Is(err, errors.InterestNotConfigured))
}

func TestCloneIsolation(t *testing.T) {
	daily := dec("100")
	a := newChecking(t, "100")
	a.Limits = NewLimitConstraint(&daily, nil, nil)

	cp := a.Clone()
	_, err := cp.Withdraw(dec("50"))
	require.NoError(t, err)

	assert.True(t, a.Balance.Equal(dec("100")))
	assert.True(t, a.Limits.DailyTotal().Equal(decimal.Zero))
}
