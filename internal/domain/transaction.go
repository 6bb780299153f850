package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-core/internal/errors"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is the immutable record an account operation produces.
// DestinationAccountID is set only for transfers.
type Transaction struct {
	ID                   uuid.UUID
	Type                 TransactionType
	Amount               decimal.Decimal
	Timestamp            time.Time
	AccountID            uuid.UUID
	DestinationAccountID *uuid.UUID
}

func NewTransaction(txType TransactionType, amount decimal.Decimal, accountID uuid.UUID, destinationID *uuid.UUID) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, errors.ErrInvalidAmount
	}
	return &Transaction{
		ID:                   uuid.New(),
		Type:                 txType,
		Amount:               amount,
		Timestamp:            time.Now().UTC(),
		AccountID:            accountID,
		DestinationAccountID: destinationID,
	}, nil
}

func (t *Transaction) IsDeposit() bool {
	return t.Type == TransactionTypeDeposit
}

func (t *Transaction) IsWithdrawal() bool {
	return t.Type == TransactionTypeWithdraw
}

func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// TransactionRepository stores transaction records. A TRANSFER is indexed
// under both the source and destination account so both histories show it.
type TransactionRepository interface {
	SaveTransaction(tx *Transaction) error
	GetTransactionByID(id uuid.UUID) (*Transaction, error)
	// GetTransactionsByAccountID returns the account's history ordered by
	// timestamp ascending.
	GetTransactionsByAccountID(accountID uuid.UUID) ([]*Transaction, error)
}
