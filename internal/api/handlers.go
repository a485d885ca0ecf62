package api

import (
	"encoding/json"
	"errors"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakeworks/stake-ledger/internal/types"
)

type transferRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

type slashRequest struct {
	Account string `json:"account"`
	Rate    string `json:"rate"`
}

type amountResponse struct {
	Amount string `json:"amount"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func handleStake(ledger Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, amount, ok := decodeTransfer(w, r)
		if !ok {
			return
		}
		if err := ledger.Stake(r.Context(), account, amount); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleWithdraw(ledger Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, amount, ok := decodeTransfer(w, r)
		if !ok {
			return
		}
		if err := ledger.Withdraw(r.Context(), account, amount); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSlash(ledger Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req slashRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "malformed request body"})
			return
		}
		if req.Account == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing account"})
			return
		}
		rate, ok := sdkmath.NewIntFromString(req.Rate)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "malformed rate"})
			return
		}
		if err := ledger.Slash(r.Context(), req.Account, rate); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleStakeOf(ledger Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := chi.URLParam(r, "account")
		stake, err := ledger.StakeOf(r.Context(), account)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, amountResponse{Amount: stake.String()})
	}
}

func handleTotalStake(ledger Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := ledger.TotalStake(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, amountResponse{Amount: total.String()})
	}
}

func decodeTransfer(w http.ResponseWriter, r *http.Request) (string, sdkmath.Int, bool) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "malformed request body"})
		return "", sdkmath.Int{}, false
	}
	if req.Account == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing account"})
		return "", sdkmath.Int{}, false
	}
	amount, ok := sdkmath.NewIntFromString(req.Amount)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "malformed amount"})
		return "", sdkmath.Int{}, false
	}
	return req.Account, amount, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrInsufficientBalance), errors.Is(err, types.ErrInsufficientStake):
		status = http.StatusConflict
	case errors.Is(err, types.ErrLockNotExpired):
		status = http.StatusForbidden
	case errors.Is(err, types.ErrArithmeticOverflow):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		// internal detail stays out of the response
		writeJSON(w, status, errorResponse{Message: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}
