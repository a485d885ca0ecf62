package db

import (
	"context"
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeworks/stake-ledger/internal/db/model"
)

func (db *Database) GetAccountStake(
	ctx context.Context, account string,
) (*model.AccountStakeDocument, error) {
	var doc model.AccountStakeDocument
	err := db.collection(model.AccountStakeCollection).
		FindOne(ctx, bson.M{"_id": account}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Records exist implicitly for every account.
		return model.ZeroAccountStake(account), nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) SaveAccountStake(
	ctx context.Context, doc *model.AccountStakeDocument,
) error {
	if doc == nil {
		return fmt.Errorf("nil account stake document")
	}
	update := bson.M{"$set": bson.M{
		"amount":      doc.Amount,
		"last_update": doc.LastUpdate,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := db.collection(model.AccountStakeCollection).
		UpdateOne(ctx, bson.M{"_id": doc.Account}, update, opts)
	return err
}

// TotalStakedAmount walks all stake records and sums their amounts in Go.
// A $sum aggregation cannot be used here: amounts are decimal strings
// because they exceed both int64 and Decimal128 precision.
func (db *Database) TotalStakedAmount(ctx context.Context) (sdkmath.Int, error) {
	cursor, err := db.collection(model.AccountStakeCollection).Find(ctx, bson.M{})
	if err != nil {
		return sdkmath.Int{}, err
	}
	defer cursor.Close(ctx)

	total := sdkmath.ZeroInt()
	for cursor.Next(ctx) {
		var doc model.AccountStakeDocument
		if err := cursor.Decode(&doc); err != nil {
			return sdkmath.Int{}, err
		}
		amount, err := doc.AmountInt()
		if err != nil {
			return sdkmath.Int{}, err
		}
		total = total.Add(amount)
	}
	if err := cursor.Err(); err != nil {
		return sdkmath.Int{}, err
	}
	return total, nil
}
