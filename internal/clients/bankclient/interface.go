package bankclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

type BankInterface interface {
	// BalanceOf returns the free (unstaked) token balance of the account.
	BalanceOf(ctx context.Context, account string) (sdkmath.Int, error)
	// Debit removes amount from the account's free balance.
	Debit(ctx context.Context, account string, amount sdkmath.Int) error
	// Credit adds amount to the account's free balance.
	Credit(ctx context.Context, account string, amount sdkmath.Int) error
}
