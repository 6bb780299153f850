package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-core/internal/domain"
	"ledger-core/internal/errors"
	"ledger-core/internal/repository"
)

type FundTransferService struct {
	store    *repository.Store
	notifier Notifier
	audit    AuditLogger
	logger   *slog.Logger
}

func NewFundTransferService(store *repository.Store, notifier Notifier, audit AuditLogger, logger *slog.Logger) *FundTransferService {
	return &FundTransferService{
		store:    store,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

// TransferFunds moves amount between two accounts. Both account locks are
// held (in id order) for the whole span, the domain transfer validates both
// legs before mutating either, and the commit goes through the repository's
// atomic dual-account path. One TRANSFER record lands in both histories.
func (s *FundTransferService) TransferFunds(sourceID, destinationID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error) {
	s.logger.Info("processing transfer",
		"source_account_id", sourceID,
		"destination_account_id", destinationID,
		"amount", amount)

	if sourceID == destinationID {
		return nil, errors.ErrSameAccountTransfer
	}

	var tx *domain.Transaction
	err := s.store.Accounts().WithAccountsLock(sourceID, destinationID, func() error {
		source, err := s.store.Accounts().GetAccount(sourceID)
		if err != nil {
			return err
		}
		destination, err := s.store.Accounts().GetAccount(destinationID)
		if err != nil {
			return err
		}

		tx, err = source.TransferTo(destination, amount)
		if err != nil {
			return err
		}

		if err := s.store.Accounts().UpdateAccountsAtomically(source, destination); err != nil {
			return err
		}
		return s.store.Transactions().SaveTransaction(tx)
	})
	if err != nil {
		s.logger.Error("transfer failed",
			"source_account_id", sourceID,
			"destination_account_id", destinationID,
			"error", err)
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(tx)
	}
	if s.audit != nil {
		s.audit.LogTransaction(tx)
	}

	s.logger.Info("transfer completed", "transaction_id", tx.ID)
	return tx, nil
}
