package service

import (
	"log/slog"

	"github.com/google/uuid"

	"ledger-core/internal/domain"
	"ledger-core/internal/repository"
)

type InterestService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewInterestService(store *repository.Store, logger *slog.Logger) *InterestService {
	return &InterestService{
		store:  store,
		logger: logger,
	}
}

// ApplyInterestToAccount runs the account's interest strategy and persists
// the new balance.
func (s *InterestService) ApplyInterestToAccount(id uuid.UUID) (*domain.Account, error) {
	var account *domain.Account
	err := s.store.Accounts().WithAccountLock(id, func() error {
		var err error
		account, err = s.store.Accounts().GetAccount(id)
		if err != nil {
			return err
		}
		if err := account.ApplyInterest(); err != nil {
			return err
		}
		return s.store.Accounts().UpdateAccount(account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("interest applied", "account_id", id, "new_balance", account.Balance)
	return account, nil
}

// ApplyInterestBatch applies interest account by account. A failing account
// is recorded and skipped; the batch never aborts. The returned map holds
// only the failures.
func (s *InterestService) ApplyInterestBatch(ids []uuid.UUID) map[uuid.UUID]error {
	failures := make(map[uuid.UUID]error)
	for _, id := range ids {
		if _, err := s.ApplyInterestToAccount(id); err != nil {
			s.logger.Warn("interest application failed", "account_id", id, "error", err)
			failures[id] = err
		}
	}
	return failures
}
