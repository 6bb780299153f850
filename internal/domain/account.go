package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-core/internal/errors"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// SavingsMinimumBalance is the floor a savings withdrawal may not break.
var SavingsMinimumBalance = decimal.NewFromInt(100)

// Account is a closed tagged variant over {CHECKING, SAVINGS}. Type-specific
// withdrawal validation dispatches through withdrawalGuards; everything else
// is shared. Balance never goes negative and freezes once Status is CLOSED.
type Account struct {
	ID        uuid.UUID
	Type      AccountType
	Balance   decimal.Decimal
	Status    AccountStatus
	CreatedAt time.Time

	// Optional, owned by the account.
	Limits   *LimitConstraint
	Interest InterestStrategy
}

func NewAccount(accountType AccountType, initialBalance decimal.Decimal) (*Account, error) {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings:
	default:
		return nil, errors.NewAppErrorf(errors.UnsupportedAccountType, "unsupported account type %q", accountType)
	}
	if initialBalance.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidAmount, "initial balance cannot be negative")
	}
	return &Account{
		ID:        uuid.New(),
		Type:      accountType,
		Balance:   initialBalance,
		Status:    AccountStatusActive,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// Deposit credits the account and returns the DEPOSIT record. Closed
// accounts reject deposits, same as every other mutating operation.
func (a *Account) Deposit(amount decimal.Decimal) (*Transaction, error) {
	if err := a.canAcceptDeposit(amount); err != nil {
		return nil, err
	}
	a.Balance = a.Balance.Add(amount)
	return NewTransaction(TransactionTypeDeposit, amount, a.ID, nil)
}

func (a *Account) canAcceptDeposit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return errors.ErrAccountClosed
	}
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	return nil
}

// Withdraw debits the account after the full rule pipeline has passed.
// On success the attached limit constraint's running totals are recorded
// exactly once; on failure the balance and totals are untouched.
func (a *Account) Withdraw(amount decimal.Decimal) (*Transaction, error) {
	if err := a.validateWithdrawal(amount); err != nil {
		return nil, err
	}
	a.Balance = a.Balance.Sub(amount)
	if a.Limits != nil {
		a.Limits.Record(amount)
	}
	return NewTransaction(TransactionTypeWithdraw, amount, a.ID, nil)
}

// TransferTo moves amount to dest and returns a single TRANSFER record
// referencing both accounts. Both legs are validated before either balance
// moves, so a rejected destination never strands a completed withdrawal.
func (a *Account) TransferTo(dest *Account, amount decimal.Decimal) (*Transaction, error) {
	if dest == nil || a.ID == dest.ID {
		return nil, errors.ErrSameAccountTransfer
	}
	if err := a.validateWithdrawal(amount); err != nil {
		return nil, err
	}
	if err := dest.canAcceptDeposit(amount); err != nil {
		return nil, err
	}

	a.Balance = a.Balance.Sub(amount)
	if a.Limits != nil {
		a.Limits.Record(amount)
	}
	dest.Balance = dest.Balance.Add(amount)

	destID := dest.ID
	return NewTransaction(TransactionTypeTransfer, amount, a.ID, &destID)
}

// ApplyInterest replaces the balance with the attached strategy's result.
func (a *Account) ApplyInterest() error {
	if !a.IsActive() {
		return errors.ErrAccountClosed
	}
	if a.Interest == nil {
		return errors.ErrInterestNotConfigured
	}
	a.Balance = a.Interest.Apply(a.Balance)
	return nil
}

// Close moves the account to its terminal state. Idempotent. The account
// is retained for history; only further balance mutation is refused.
func (a *Account) Close() {
	a.Status = AccountStatusClosed
}

// Clone returns a deep copy safe to hand across the repository boundary.
// Interest strategies are stateless and shared as-is.
func (a *Account) Clone() *Account {
	cp := *a
	if a.Limits != nil {
		cp.Limits = a.Limits.Clone()
	}
	return &cp
}

// AccountRepository stores account aggregates. GetAccount hands out clones;
// UpdateAccountsAtomically is the transfer commit path: both snapshots are
// written inside one critical section or neither is observed.
type AccountRepository interface {
	CreateAccount(account *Account) error
	GetAccount(id uuid.UUID) (*Account, error)
	UpdateAccount(account *Account) error
	UpdateAccountsAtomically(source, destination *Account) error

	// Per-account serialization for the read-modify-write span of a single
	// mutation. WithAccountsLock acquires both locks in a stable order.
	WithAccountLock(id uuid.UUID, fn func() error) error
	WithAccountsLock(a, b uuid.UUID, fn func() error) error
}
