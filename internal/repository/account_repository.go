package repository

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"ledger-core/internal/domain"
	"ledger-core/internal/errors"
)

// accountRepository is the in-memory account store. Three locks with
// distinct jobs:
//   - mu guards the map itself,
//   - transferMu is the single critical section for the dual-account commit,
//   - locks holds one mutex per account id so callers can serialize a full
//     read-modify-write span (deposit/withdraw would otherwise lose updates
//     under concurrent writers).
//
// Accounts go in and out as clones; callers never see internal pointers.
type accountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account

	lockMu sync.Mutex
	locks  map[uuid.UUID]*sync.Mutex

	transferMu sync.Mutex
	logger     *slog.Logger
}

func NewAccountRepository(logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		accounts: make(map[uuid.UUID]*domain.Account),
		locks:    make(map[uuid.UUID]*sync.Mutex),
		logger:   logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		r.logger.Warn("duplicate account creation attempt", "account_id", account.ID)
		return errors.ErrDuplicateAccount
	}
	r.accounts[account.ID] = account.Clone()

	r.logger.Info("account created", "account_id", account.ID, "account_type", account.Type)
	return nil
}

func (r *accountRepository) GetAccount(id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return account.Clone(), nil
}

func (r *accountRepository) UpdateAccount(account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		r.logger.Warn("no account found to update", "account_id", account.ID)
		return errors.ErrAccountNotFound
	}
	r.accounts[account.ID] = account.Clone()
	return nil
}

// UpdateAccountsAtomically commits both legs of a transfer in one critical
// section: any reader on the locked path observes either both new snapshots
// or neither.
func (r *accountRepository) UpdateAccountsAtomically(source, destination *domain.Account) error {
	r.transferMu.Lock()
	defer r.transferMu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, srcOK := r.accounts[source.ID]
	_, dstOK := r.accounts[destination.ID]
	if !srcOK || !dstOK {
		r.logger.Error("atomic update failed, account missing",
			"source_account_id", source.ID,
			"destination_account_id", destination.ID)
		return errors.ErrAtomicUpdateFailed
	}

	r.accounts[source.ID] = source.Clone()
	r.accounts[destination.ID] = destination.Clone()
	return nil
}

// accountLock returns the mutex dedicated to one account id, creating it on
// first use. Lock entries are never removed; closed accounts are retained.
func (r *accountRepository) accountLock(id uuid.UUID) *sync.Mutex {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	m, ok := r.locks[id]
	if !ok {
		m = &sync.Mutex{}
		r.locks[id] = m
	}
	return m
}

func (r *accountRepository) WithAccountLock(id uuid.UUID, fn func() error) error {
	m := r.accountLock(id)
	m.Lock()
	defer m.Unlock()
	return fn()
}

// WithAccountsLock takes both account locks in id order so two opposing
// transfers cannot deadlock each other.
func (r *accountRepository) WithAccountsLock(a, b uuid.UUID, fn func() error) error {
	if a == b {
		return r.WithAccountLock(a, fn)
	}
	first, second := a, b
	if bytes.Compare(first[:], second[:]) > 0 {
		first, second = second, first
	}

	fm := r.accountLock(first)
	sm := r.accountLock(second)
	fm.Lock()
	defer fm.Unlock()
	sm.Lock()
	defer sm.Unlock()
	return fn()
}
