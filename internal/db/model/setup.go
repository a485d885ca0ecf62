package model

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakeworks/stake-ledger/internal/config"
)

const setupTimeout = 30 * time.Second

// Setup creates the stake collection and its indexes. Idempotent, run once
// at startup before the db client is handed to the ledger.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	database := client.Database(cfg.DbName)
	collection := database.Collection(AccountStakeCollection)

	// last_update supports operational queries for stale or recently touched
	// records; the primary key index on _id comes for free.
	index := mongo.IndexModel{
		Keys: bson.D{{Key: "last_update", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", AccountStakeCollection, err)
	}

	return nil
}
