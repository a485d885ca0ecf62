package bankclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakeworks/stake-ledger/internal/observability/metrics"
)

type bankClientWithMetrics struct {
	bank BankInterface
}

func NewBankClientWithMetrics(bank BankInterface) *bankClientWithMetrics {
	return &bankClientWithMetrics{bank: bank}
}

func (b *bankClientWithMetrics) BalanceOf(ctx context.Context, account string) (sdkmath.Int, error) {
	return runBankClientMethodWithMetrics("BalanceOf", func() (sdkmath.Int, error) {
		return b.bank.BalanceOf(ctx, account)
	})
}

func (b *bankClientWithMetrics) Debit(ctx context.Context, account string, amount sdkmath.Int) error {
	_, err := runBankClientMethodWithMetrics("Debit", func() (struct{}, error) {
		return struct{}{}, b.bank.Debit(ctx, account, amount)
	})
	return err
}

func (b *bankClientWithMetrics) Credit(ctx context.Context, account string, amount sdkmath.Int) error {
	_, err := runBankClientMethodWithMetrics("Credit", func() (struct{}, error) {
		return struct{}{}, b.bank.Credit(ctx, account, amount)
	})
	return err
}

func runBankClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordBankClientLatency(duration, method, err != nil)
	return v, err
}
