package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

const AccountStakeCollection = "account_stakes"

// AccountStakeDocument is the persisted per-account stake record. Amount is
// stored as a base-10 string because staked amounts are arbitrary-precision
// integers (up to 256 bits), which neither int64 nor Decimal128 can hold.
type AccountStakeDocument struct {
	Account    string `bson:"_id"`
	Amount     string `bson:"amount"`
	LastUpdate int64  `bson:"last_update"`
}

// NewAccountStakeDocument builds a document from a settled amount and
// settlement time in unix seconds.
func NewAccountStakeDocument(account string, amount sdkmath.Int, lastUpdate int64) *AccountStakeDocument {
	return &AccountStakeDocument{
		Account:    account,
		Amount:     amount.String(),
		LastUpdate: lastUpdate,
	}
}

// ZeroAccountStake is the implicit default record for accounts that never
// staked.
func ZeroAccountStake(account string) *AccountStakeDocument {
	return &AccountStakeDocument{
		Account:    account,
		Amount:     "0",
		LastUpdate: 0,
	}
}

// AmountInt parses the stored amount.
func (d *AccountStakeDocument) AmountInt() (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(d.Amount)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("corrupt stake amount %q for account %s", d.Amount, d.Account)
	}
	return amount, nil
}
