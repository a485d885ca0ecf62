package db

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/stakeworks/stake-ledger/internal/db/model"
	"github.com/stakeworks/stake-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetAccountStake(ctx context.Context, account string) (result *model.AccountStakeDocument, err error) {
	//nolint:errcheck
	d.run("GetAccountStake", func() error {
		result, err = d.db.GetAccountStake(ctx, account)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveAccountStake(ctx context.Context, doc *model.AccountStakeDocument) error {
	return d.run("SaveAccountStake", func() error {
		return d.db.SaveAccountStake(ctx, doc)
	})
}

func (d *DbWithMetrics) TotalStakedAmount(ctx context.Context) (result sdkmath.Int, err error) {
	//nolint:errcheck
	d.run("TotalStakedAmount", func() error {
		result, err = d.db.TotalStakedAmount(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
