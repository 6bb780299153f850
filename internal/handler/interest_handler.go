package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"ledger-core/internal/errors"
	"ledger-core/internal/service"
)

type InterestHandler struct {
	interestService *service.InterestService
}

func NewInterestHandler(interestService *service.InterestService) *InterestHandler {
	return &InterestHandler{interestService: interestService}
}

type InterestAppliedResponse struct {
	AccountID  string `json:"account_id"`
	NewBalance string `json:"new_balance"`
}

func (h *InterestHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathAccountID(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	account, err := h.interestService.ApplyInterestToAccount(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, InterestAppliedResponse{
		AccountID:  account.ID.String(),
		NewBalance: account.Balance.String(),
	})
}

type InterestBatchRequest struct {
	AccountIDs []string `json:"account_ids"`
}

type InterestBatchResponse struct {
	Applied  int               `json:"applied"`
	Failures map[string]string `json:"failures,omitempty"`
}

// ApplyBatch applies interest to every listed account; per-account failures
// are reported, not fatal.
func (h *InterestHandler) ApplyBatch(w http.ResponseWriter, r *http.Request) {
	var req InterestBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body"))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.AccountIDs))
	for _, raw := range req.AccountIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, errors.NewAppErrorf(errors.InvalidInput, "invalid account id %q", raw))
			return
		}
		ids = append(ids, id)
	}

	failures := h.interestService.ApplyInterestBatch(ids)

	resp := InterestBatchResponse{Applied: len(ids) - len(failures)}
	if len(failures) > 0 {
		resp.Failures = make(map[string]string, len(failures))
		for id, err := range failures {
			resp.Failures[id.String()] = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
