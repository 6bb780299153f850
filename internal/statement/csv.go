// Package statement renders account statements from the repositories'
// public read methods. It never mutates.
package statement

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/google/uuid"

	"ledger-core/internal/domain"
)

type Generator struct {
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
}

func NewGenerator(accounts domain.AccountRepository, transactions domain.TransactionRepository) *Generator {
	return &Generator{
		accounts:     accounts,
		transactions: transactions,
	}
}

// WriteCSV writes an account summary block followed by the full transaction
// history, oldest first.
func (g *Generator) WriteCSV(w io.Writer, accountID uuid.UUID) error {
	account, err := g.accounts.GetAccount(accountID)
	if err != nil {
		return err
	}
	history, err := g.transactions.GetTransactionsByAccountID(accountID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	summary := [][]string{
		{"account_id", account.ID.String()},
		{"account_type", string(account.Type)},
		{"status", string(account.Status)},
		{"balance", account.Balance.String()},
		{},
		{"transaction_id", "type", "amount", "timestamp", "destination_account_id"},
	}
	if err := cw.WriteAll(summary); err != nil {
		return err
	}

	for _, tx := range history {
		destination := ""
		if tx.DestinationAccountID != nil {
			destination = tx.DestinationAccountID.String()
		}
		record := []string{
			tx.ID.String(),
			string(tx.Type),
			tx.Amount.String(),
			tx.Timestamp.Format(time.RFC3339),
			destination,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
