package repository

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"ledger-core/internal/domain"
	"ledger-core/internal/errors"
)

type transactionRepository struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
	byAccount    map[uuid.UUID][]*domain.Transaction
	logger       *slog.Logger
}

func NewTransactionRepository(logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		transactions: make(map[uuid.UUID]*domain.Transaction),
		byAccount:    make(map[uuid.UUID][]*domain.Transaction),
		logger:       logger,
	}
}

// SaveTransaction stores the record and indexes it under its account. A
// transfer is indexed under both legs so each party sees it in history.
func (r *transactionRepository) SaveTransaction(tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *tx
	r.transactions[cp.ID] = &cp
	r.byAccount[cp.AccountID] = append(r.byAccount[cp.AccountID], &cp)
	if cp.IsTransfer() && cp.DestinationAccountID != nil {
		r.byAccount[*cp.DestinationAccountID] = append(r.byAccount[*cp.DestinationAccountID], &cp)
	}

	r.logger.Info("transaction saved",
		"transaction_id", cp.ID,
		"type", cp.Type,
		"account_id", cp.AccountID)
	return nil
}

func (r *transactionRepository) GetTransactionByID(id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return nil, errors.ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (r *transactionRepository) GetTransactionsByAccountID(accountID uuid.UUID) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indexed := r.byAccount[accountID]
	out := make([]*domain.Transaction, 0, len(indexed))
	for _, tx := range indexed {
		cp := *tx
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
