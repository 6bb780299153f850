package service

import "ledger-core/internal/domain"

// Notifier receives every completed transaction. Fire-and-forget: the
// triggering operation has already committed and does not depend on it.
type Notifier interface {
	Notify(tx *domain.Transaction)
}

// AuditLogger receives the same transactions for the audit trail, under the
// same fire-and-forget contract.
type AuditLogger interface {
	LogTransaction(tx *domain.Transaction)
}
