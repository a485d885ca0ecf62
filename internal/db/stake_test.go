//go:build integration

package db_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeworks/stake-ledger/internal/db/model"
	"github.com/stakeworks/stake-ledger/testutil"
)

func TestAccountStake(t *testing.T) {
	ctx := t.Context()

	t.Run("get returns zero default for unknown account", func(t *testing.T) {
		account := testutil.RandomAccount()
		doc, err := testDB.GetAccountStake(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, model.ZeroAccountStake(account), doc)
	})

	t.Run("save and get roundtrip", func(t *testing.T) {
		account := testutil.RandomAccount()
		doc := model.NewAccountStakeDocument(account, sdkmath.NewInt(123_456), 1700000000)

		err := testDB.SaveAccountStake(ctx, doc)
		require.NoError(t, err)

		got, err := testDB.GetAccountStake(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		account := testutil.RandomAccount()
		err := testDB.SaveAccountStake(ctx, model.NewAccountStakeDocument(account, sdkmath.NewInt(10), 1))
		require.NoError(t, err)
		err = testDB.SaveAccountStake(ctx, model.NewAccountStakeDocument(account, sdkmath.NewInt(7), 2))
		require.NoError(t, err)

		got, err := testDB.GetAccountStake(ctx, account)
		require.NoError(t, err)
		amount, err := got.AmountInt()
		require.NoError(t, err)
		assert.Equal(t, sdkmath.NewInt(7), amount)
		assert.Equal(t, int64(2), got.LastUpdate)
	})

	t.Run("amounts beyond int64 survive", func(t *testing.T) {
		account := testutil.RandomAccount()
		big, ok := sdkmath.NewIntFromString("340282366920938463463374607431768211456") // 2^128
		require.True(t, ok)

		err := testDB.SaveAccountStake(ctx, model.NewAccountStakeDocument(account, big, 42))
		require.NoError(t, err)

		got, err := testDB.GetAccountStake(ctx, account)
		require.NoError(t, err)
		amount, err := got.AmountInt()
		require.NoError(t, err)
		assert.Equal(t, big, amount)
	})

	t.Run("total staked amount sums all records", func(t *testing.T) {
		before, err := testDB.TotalStakedAmount(ctx)
		require.NoError(t, err)

		added := sdkmath.ZeroInt()
		for i := int64(1); i <= 5; i++ {
			amount := sdkmath.NewInt(i * 1000)
			err := testDB.SaveAccountStake(ctx, model.NewAccountStakeDocument(testutil.RandomAccount(), amount, i))
			require.NoError(t, err)
			added = added.Add(amount)
		}

		after, err := testDB.TotalStakedAmount(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.Add(added), after)
	})
}
