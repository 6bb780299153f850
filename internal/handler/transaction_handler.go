package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-core/internal/domain"
	"ledger-core/internal/errors"
	"ledger-core/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	transferService    *service.FundTransferService
}

func NewTransactionHandler(transactionService *service.TransactionService, transferService *service.FundTransferService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		transferService:    transferService,
	}
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type TransferRequest struct {
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               string `json:"amount"`
}

type TransactionResponse struct {
	TransactionID        string    `json:"transaction_id"`
	Type                 string    `json:"type"`
	Amount               string    `json:"amount"`
	Timestamp            time.Time `json:"timestamp"`
	AccountID            string    `json:"account_id"`
	DestinationAccountID *string   `json:"destination_account_id,omitempty"`
}

func newTransactionResponse(tx *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: tx.ID.String(),
		Type:          string(tx.Type),
		Amount:        tx.Amount.String(),
		Timestamp:     tx.Timestamp,
		AccountID:     tx.AccountID.String(),
	}
	if tx.DestinationAccountID != nil {
		dest := tx.DestinationAccountID.String()
		resp.DestinationAccountID = &dest
	}
	return resp
}

func parseAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format"))
		return decimal.Zero, false
	}
	return amount, true
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	amount, ok := parseAmount(w, r)
	if !ok {
		return
	}

	tx, err := h.transactionService.Deposit(id, amount)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTransactionResponse(tx))
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	amount, ok := parseAmount(w, r)
	if !ok {
		return
	}

	tx, err := h.transactionService.Withdraw(id, amount)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTransactionResponse(tx))
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	history, err := h.transactionService.History(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(history))
	for _, tx := range history {
		responses = append(responses, newTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return
	}

	sourceID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid source_account_id format"))
		return
	}
	destinationID, err := uuid.Parse(req.DestinationAccountID)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid destination_account_id format"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format"))
		return
	}

	tx, err := h.transferService.TransferFunds(sourceID, destinationID, amount)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTransactionResponse(tx))
}
