// Package notification holds the transaction-event collaborators. Delivery
// channels (email, SMS) live outside this system; these implementations
// emit structured log events and never fail the triggering operation.
package notification

import (
	"log/slog"

	"ledger-core/internal/domain"
	"ledger-core/internal/service"
)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(tx *domain.Transaction) {
	attrs := []any{
		"transaction_id", tx.ID,
		"type", tx.Type,
		"amount", tx.Amount,
		"account_id", tx.AccountID,
	}
	if tx.DestinationAccountID != nil {
		attrs = append(attrs, "destination_account_id", *tx.DestinationAccountID)
	}
	n.logger.Info("transaction notification sent", attrs...)
}

type AuditLog struct {
	logger *slog.Logger
}

func NewAuditLog(logger *slog.Logger) *AuditLog {
	return &AuditLog{logger: logger}
}

func (a *AuditLog) LogTransaction(tx *domain.Transaction) {
	a.logger.Info("transaction audit",
		"transaction_id", tx.ID,
		"type", tx.Type,
		"amount", tx.Amount,
		"timestamp", tx.Timestamp,
		"account_id", tx.AccountID)
}

var (
	_ service.Notifier    = (*LogNotifier)(nil)
	_ service.AuditLogger = (*AuditLog)(nil)
)
