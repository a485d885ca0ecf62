package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeworks/stake-ledger/internal/config"
	"github.com/stakeworks/stake-ledger/internal/types"
)

type stubLedger struct {
	stakeErr    error
	withdrawErr error
	slashErr    error

	stakeOf    sdkmath.Int
	totalStake sdkmath.Int

	lastAccount string
	lastAmount  sdkmath.Int
}

func (s *stubLedger) Stake(ctx context.Context, account string, amount sdkmath.Int) error {
	s.lastAccount, s.lastAmount = account, amount
	return s.stakeErr
}

func (s *stubLedger) Withdraw(ctx context.Context, account string, amount sdkmath.Int) error {
	s.lastAccount, s.lastAmount = account, amount
	return s.withdrawErr
}

func (s *stubLedger) Slash(ctx context.Context, account string, rate sdkmath.Int) error {
	s.lastAccount, s.lastAmount = account, rate
	return s.slashErr
}

func (s *stubLedger) StakeOf(ctx context.Context, account string) (sdkmath.Int, error) {
	s.lastAccount = account
	return s.stakeOf, nil
}

func (s *stubLedger) TotalStake(ctx context.Context) (sdkmath.Int, error) {
	return s.totalStake, nil
}

func serveRequest(ledger Ledger, method, path, body string) *httptest.ResponseRecorder {
	server := New(&config.APIConfig{Host: "127.0.0.1", Port: 8080}, ledger)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestStakeEndpoint(t *testing.T) {
	ledger := &stubLedger{}
	rec := serveRequest(ledger, http.MethodPost, "/v1/stake", `{"account":"alice","amount":"1000"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "alice", ledger.lastAccount)
	assert.Equal(t, sdkmath.NewInt(1000), ledger.lastAmount)
}

func TestStakeEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "missing account", body: `{"amount":"1000"}`},
		{name: "malformed amount", body: `{"account":"alice","amount":"ten"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveRequest(&stubLedger{}, http.MethodPost, "/v1/stake", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "invalid amount", err: types.ErrInvalidAmount, expected: http.StatusBadRequest},
		{name: "insufficient balance", err: types.ErrInsufficientBalance, expected: http.StatusConflict},
		{name: "lock not expired", err: types.ErrLockNotExpired, expected: http.StatusForbidden},
		{name: "overflow", err: types.ErrArithmeticOverflow, expected: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &stubLedger{stakeErr: tt.err}
			rec := serveRequest(ledger, http.MethodPost, "/v1/stake", `{"account":"alice","amount":"1"}`)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestWithdrawEndpoint(t *testing.T) {
	t.Run("insufficient stake maps to conflict", func(t *testing.T) {
		ledger := &stubLedger{withdrawErr: types.ErrInsufficientStake}
		rec := serveRequest(ledger, http.MethodPost, "/v1/withdraw", `{"account":"alice","amount":"1"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		ledger := &stubLedger{}
		rec := serveRequest(ledger, http.MethodPost, "/v1/withdraw", `{"account":"bob","amount":"42"}`)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "bob", ledger.lastAccount)
		assert.Equal(t, sdkmath.NewInt(42), ledger.lastAmount)
	})
}

func TestSlashEndpoint(t *testing.T) {
	ledger := &stubLedger{}
	rec := serveRequest(ledger, http.MethodPost, "/v1/slash", `{"account":"alice","rate":"250000000000000000"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "alice", ledger.lastAccount)
	assert.Equal(t, sdkmath.NewInt(250_000_000_000_000_000), ledger.lastAmount)
}

func TestStakeOfEndpoint(t *testing.T) {
	ledger := &stubLedger{stakeOf: sdkmath.NewInt(777)}
	rec := serveRequest(ledger, http.MethodGet, "/v1/stake/alice", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp amountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "777", resp.Amount)
	assert.Equal(t, "alice", ledger.lastAccount)
}

func TestTotalStakeEndpoint(t *testing.T) {
	ledger := &stubLedger{totalStake: sdkmath.NewInt(123456)}
	rec := serveRequest(ledger, http.MethodGet, "/v1/total-stake", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp amountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "123456", resp.Amount)
}

func TestHealthcheck(t *testing.T) {
	rec := serveRequest(&stubLedger{}, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
