package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InvalidInput            ErrorCode = "invalid_input"
	InvalidAmount           ErrorCode = "invalid_amount"
	AccountClosed           ErrorCode = "account_closed"
	InsufficientFunds       ErrorCode = "insufficient_funds"
	MinimumBalanceViolation ErrorCode = "minimum_balance_violation"
	DailyLimitExceeded      ErrorCode = "daily_limit_exceeded"
	MonthlyLimitExceeded    ErrorCode = "monthly_limit_exceeded"
	AccountNotFound         ErrorCode = "account_not_found"
	TransactionNotFound     ErrorCode = "transaction_not_found"
	UnsupportedAccountType  ErrorCode = "unsupported_account_type"
	InvalidOpeningDeposit   ErrorCode = "invalid_opening_deposit"
	SameAccountTransfer     ErrorCode = "same_account_transfer"
	DuplicateAccount        ErrorCode = "duplicate_account"
	AtomicUpdateFailed      ErrorCode = "atomic_update_failed"
	InterestNotConfigured   ErrorCode = "interest_not_configured"
	InternalError           ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy so the predefined errors stay untouched.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps an error code to the status the presentation layer
// answers with. Domain-rule violations are 422: the request was
// well-formed but the business rules rejected it.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case InvalidInput, InvalidAmount, SameAccountTransfer,
		UnsupportedAccountType, InvalidOpeningDeposit:
		return http.StatusBadRequest
	case AccountNotFound, TransactionNotFound:
		return http.StatusNotFound
	case DuplicateAccount, AtomicUpdateFailed:
		return http.StatusConflict
	case AccountClosed, InsufficientFunds, MinimumBalanceViolation,
		DailyLimitExceeded, MonthlyLimitExceeded, InterestNotConfigured:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Predefined errors for common cases
var (
	ErrInvalidAmount         = NewAppError(InvalidAmount, "amount must be positive")
	ErrAccountClosed         = NewAppError(AccountClosed, "account is closed")
	ErrInsufficientFunds     = NewAppError(InsufficientFunds, "insufficient funds")
	ErrMinimumBalance        = NewAppError(MinimumBalanceViolation, "minimum balance requirement not met")
	ErrDailyLimitExceeded    = NewAppError(DailyLimitExceeded, "daily transaction limit exceeded")
	ErrMonthlyLimitExceeded  = NewAppError(MonthlyLimitExceeded, "monthly transaction limit exceeded")
	ErrAccountNotFound       = NewAppError(AccountNotFound, "account not found")
	ErrTransactionNotFound   = NewAppError(TransactionNotFound, "transaction not found")
	ErrSameAccountTransfer   = NewAppError(SameAccountTransfer, "source and destination accounts are the same")
	ErrDuplicateAccount      = NewAppError(DuplicateAccount, "account already exists")
	ErrAtomicUpdateFailed    = NewAppError(AtomicUpdateFailed, "accounts changed between load and commit")
	ErrInterestNotConfigured = NewAppError(InterestNotConfigured, "no interest strategy attached to account")
)
