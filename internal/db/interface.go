package db

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/stakeworks/stake-ledger/internal/db/model"
)

// DbInterface is the account stake store. It is pure storage: it carries no
// validation logic, returns the zero-default record for unknown accounts and
// overwrites on save.
type DbInterface interface {
	Ping(ctx context.Context) error
	GetAccountStake(ctx context.Context, account string) (*model.AccountStakeDocument, error)
	SaveAccountStake(ctx context.Context, doc *model.AccountStakeDocument) error
	// TotalStakedAmount sums the stored amounts over all accounts. Used to
	// rebuild the in-memory aggregate at startup.
	TotalStakedAmount(ctx context.Context) (sdkmath.Int, error)
}
