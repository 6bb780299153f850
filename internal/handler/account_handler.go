package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"ledger-core/internal/domain"
	"ledger-core/internal/errors"
	"ledger-core/internal/service"
	"ledger-core/internal/statement"
)

type AccountHandler struct {
	accountService *service.AccountService
	statements     *statement.Generator
}

func NewAccountHandler(accountService *service.AccountService, statements *statement.Generator) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		statements:     statements,
	}
}

type CreateAccountRequest struct {
	AccountType    string `json:"account_type"`
	InitialDeposit string `json:"initial_deposit"`
}

type AccountResponse struct {
	AccountID   string    `json:"account_id"`
	AccountType string    `json:"account_type"`
	Balance     string    `json:"balance"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   account.ID.String(),
		AccountType: string(account.Type),
		Balance:     account.Balance.String(),
		Status:      string(account.Status),
		CreatedAt:   account.CreatedAt,
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return
	}

	initialDeposit, err := decimal.NewFromString(req.InitialDeposit)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid initial_deposit format"))
		return
	}

	account, err := h.accountService.CreateAccount(domain.AccountType(req.AccountType), initialDeposit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(account))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.GetAccount(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.accountService.CloseAccount(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

// Statement streams the account's CSV statement.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	// Existence check first so a missing account still gets a JSON error
	// instead of a half-written CSV body.
	if _, err := h.accountService.GetAccount(id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="statement.csv"`)
	if err := h.statements.WriteCSV(w, id); err != nil {
		handleServiceError(w, err)
	}
}
