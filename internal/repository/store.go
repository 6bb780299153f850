package repository

import (
	"log/slog"

	"ledger-core/internal/domain"
)

// Store bundles the in-memory repositories behind one handle that is passed
// to every service. No ambient singletons; two Stores share nothing.
type Store struct {
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
	logger       *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		accounts:     NewAccountRepository(logger),
		transactions: NewTransactionRepository(logger),
		logger:       logger,
	}
}

func (s *Store) Accounts() domain.AccountRepository {
	return s.accounts
}

func (s *Store) Transactions() domain.TransactionRepository {
	return s.transactions
}
