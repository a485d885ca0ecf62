package bankclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/stakeworks/stake-ledger/internal/config"
	"github.com/stakeworks/stake-ledger/internal/types"
)

type BankClient struct {
	httpClient *http.Client
	cfg        *config.BankConfig
}

func NewBankClient(cfg *config.BankConfig) (*BankClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bank config is nil")
	}

	return &BankClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}, nil
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type transferRequest struct {
	Amount string `json:"amount"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *BankClient) BalanceOf(ctx context.Context, account string) (sdkmath.Int, error) {
	callForBalance := func() (*balanceResponse, error) {
		var resp balanceResponse
		err := c.sendRequest(ctx, http.MethodGet, c.accountPath(account), nil, &resp)
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}

	resp, err := clientCallWithRetry(callForBalance, c.cfg)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("failed to get balance of %s: %w", account, err)
	}

	balance, ok := sdkmath.NewIntFromString(resp.Balance)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("malformed balance %q for account %s", resp.Balance, account)
	}
	return balance, nil
}

func (c *BankClient) Debit(ctx context.Context, account string, amount sdkmath.Int) error {
	callForDebit := func() (*struct{}, error) {
		err := c.sendRequest(ctx, http.MethodPost, c.accountPath(account)+"/debit", &transferRequest{Amount: amount.String()}, nil)
		if err != nil {
			return nil, err
		}
		return &struct{}{}, nil
	}

	_, err := clientCallWithRetry(callForDebit, c.cfg)
	if err != nil {
		return fmt.Errorf("failed to debit account %s: %w", account, err)
	}
	return nil
}

func (c *BankClient) Credit(ctx context.Context, account string, amount sdkmath.Int) error {
	callForCredit := func() (*struct{}, error) {
		err := c.sendRequest(ctx, http.MethodPost, c.accountPath(account)+"/credit", &transferRequest{Amount: amount.String()}, nil)
		if err != nil {
			return nil, err
		}
		return &struct{}{}, nil
	}

	_, err := clientCallWithRetry(callForCredit, c.cfg)
	if err != nil {
		return fmt.Errorf("failed to credit account %s: %w", account, err)
	}
	return nil
}

func (c *BankClient) accountPath(account string) string {
	return "/v1/balances/" + url.PathEscape(account)
}

func (c *BankClient) sendRequest(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp errorResponse
		//nolint:errcheck
		json.NewDecoder(resp.Body).Decode(&errResp)

		// Conflict marks a balance shortfall. Any other 4xx is a caller
		// bug and must not be retried either.
		if resp.StatusCode == http.StatusConflict {
			return fmt.Errorf("%w: %s", types.ErrInsufficientBalance, errResp.Message)
		}
		if resp.StatusCode < http.StatusInternalServerError {
			return retry.Unrecoverable(fmt.Errorf("bank request %s %s failed with status %d: %s", method, path, resp.StatusCode, errResp.Message))
		}
		return fmt.Errorf("bank request %s %s failed with status %d: %s", method, path, resp.StatusCode, errResp.Message)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func clientCallWithRetry[T any](
	call retry.RetryableFuncWithData[*T], cfg *config.BankConfig,
) (*T, error) {
	result, err := retry.DoWithData(call, retry.Attempts(cfg.MaxRetryTimes), retry.Delay(cfg.RetryInterval), retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, types.ErrInsufficientBalance)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the bank service")
		}))

	if err != nil {
		return nil, err
	}
	return result, nil
}
