package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-core/internal/domain"
	"ledger-core/internal/errors"
	"ledger-core/internal/repository"
)

// AccountDefaults carries the construction-time policy for new accounts:
// which interest strategy each type gets and the optional withdrawal caps.
type AccountDefaults struct {
	SavingsAnnualRate decimal.Decimal
	CheckingRate      decimal.Decimal
	DailyLimit        *decimal.Decimal
	MonthlyLimit      *decimal.Decimal
}

type AccountService struct {
	store    *repository.Store
	defaults AccountDefaults
	logger   *slog.Logger
}

func NewAccountService(store *repository.Store, defaults AccountDefaults, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:    store,
		defaults: defaults,
		logger:   logger,
	}
}

// CreateAccount enforces the type-specific opening rules, builds the
// account variant with its strategies attached, and persists it.
func (s *AccountService) CreateAccount(accountType domain.AccountType, initialDeposit decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("creating account", "account_type", accountType, "initial_deposit", initialDeposit)

	if initialDeposit.IsNegative() {
		return nil, errors.NewAppError(errors.InvalidOpeningDeposit, "opening deposit cannot be negative")
	}

	switch accountType {
	case domain.AccountTypeSavings:
		if initialDeposit.LessThan(domain.SavingsMinimumBalance) {
			return nil, errors.NewAppErrorf(errors.InvalidOpeningDeposit,
				"savings accounts require a minimum opening deposit of %s", domain.SavingsMinimumBalance)
		}
	case domain.AccountTypeChecking:
	default:
		return nil, errors.NewAppErrorf(errors.UnsupportedAccountType, "unsupported account type %q", accountType)
	}

	account, err := domain.NewAccount(accountType, initialDeposit)
	if err != nil {
		return nil, err
	}

	switch accountType {
	case domain.AccountTypeSavings:
		account.Interest = domain.NewSavingsInterestStrategy(s.defaults.SavingsAnnualRate, 1)
	case domain.AccountTypeChecking:
		account.Interest = domain.NewCheckingInterestStrategy(s.defaults.CheckingRate)
	}
	if s.defaults.DailyLimit != nil || s.defaults.MonthlyLimit != nil {
		account.Limits = domain.NewLimitConstraint(s.defaults.DailyLimit, s.defaults.MonthlyLimit, nil)
	}

	if err := s.store.Accounts().CreateAccount(account); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "account_id", account.ID)
	return account, nil
}

func (s *AccountService) GetAccount(id uuid.UUID) (*domain.Account, error) {
	return s.store.Accounts().GetAccount(id)
}

// CloseAccount moves the account to CLOSED and persists it. Idempotent; the
// account is kept for history.
func (s *AccountService) CloseAccount(id uuid.UUID) (*domain.Account, error) {
	var account *domain.Account
	err := s.store.Accounts().WithAccountLock(id, func() error {
		var err error
		account, err = s.store.Accounts().GetAccount(id)
		if err != nil {
			return err
		}
		account.Close()
		return s.store.Accounts().UpdateAccount(account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account closed", "account_id", id)
	return account, nil
}
