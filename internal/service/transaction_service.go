package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-core/internal/domain"
	"ledger-core/internal/repository"
)

type TransactionService struct {
	store    *repository.Store
	notifier Notifier
	audit    AuditLogger
	logger   *slog.Logger
}

func NewTransactionService(store *repository.Store, notifier Notifier, audit AuditLogger, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:    store,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

// Deposit credits the account. The whole load-mutate-persist span runs
// under the account's lock so concurrent writers cannot lose updates.
func (s *TransactionService) Deposit(accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	s.logger.Info("processing deposit", "account_id", accountID, "amount", amount)

	var tx *domain.Transaction
	err := s.store.Accounts().WithAccountLock(accountID, func() error {
		account, err := s.store.Accounts().GetAccount(accountID)
		if err != nil {
			return err
		}
		tx, err = account.Deposit(amount)
		if err != nil {
			return err
		}
		if err := s.store.Accounts().UpdateAccount(account); err != nil {
			return err
		}
		return s.store.Transactions().SaveTransaction(tx)
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(tx)
	return tx, nil
}

// Withdraw debits the account under the same per-account serialization.
func (s *TransactionService) Withdraw(accountID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	s.logger.Info("processing withdrawal", "account_id", accountID, "amount", amount)

	var tx *domain.Transaction
	err := s.store.Accounts().WithAccountLock(accountID, func() error {
		account, err := s.store.Accounts().GetAccount(accountID)
		if err != nil {
			return err
		}
		tx, err = account.Withdraw(amount)
		if err != nil {
			return err
		}
		if err := s.store.Accounts().UpdateAccount(account); err != nil {
			return err
		}
		return s.store.Transactions().SaveTransaction(tx)
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(tx)
	return tx, nil
}

// History returns the account's transactions ordered by timestamp.
func (s *TransactionService) History(accountID uuid.UUID) ([]*domain.Transaction, error) {
	if _, err := s.store.Accounts().GetAccount(accountID); err != nil {
		return nil, err
	}
	return s.store.Transactions().GetTransactionsByAccountID(accountID)
}

func (s *TransactionService) dispatch(tx *domain.Transaction) {
	if s.notifier != nil {
		s.notifier.Notify(tx)
	}
	if s.audit != nil {
		s.audit.LogTransaction(tx)
	}
}
