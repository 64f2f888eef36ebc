package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ceylonsure/motor-risk/internal/core"
)

// BlacklistRepoMongo answers membership checks against the blacklist
// collection. The pipeline treats the list as read-only; Upsert exists
// for the seeding tool only.
type BlacklistRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewBlacklistRepo(db *mongodrv.Database, opTimeout time.Duration) *BlacklistRepoMongo {
	return &BlacklistRepoMongo{
		coll:      db.Collection(ColBlacklist),
		opTimeout: opTimeout,
	}
}

func (repo *BlacklistRepoMongo) Contains(ctx context.Context, customerID string) (bool, error) {
	norm := core.NormalizeCustomerID(customerID)
	if norm == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	err := repo.coll.FindOne(ctx, bson.M{"_id": norm}).Err()
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("blacklist.findOne: %w", err)
	}
	return true, nil
}

// Upsert adds or refreshes one blacklist entry (seeding/admin path).
func (repo *BlacklistRepoMongo) Upsert(ctx context.Context, customerID, reason string, addedAt time.Time) error {
	norm := core.NormalizeCustomerID(customerID)
	if norm == "" {
		return fmt.Errorf("%w: empty customer id", core.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	doc := BlacklistDoc{ID: norm, Reason: reason, AddedAt: addedAt}
	_, err := repo.coll.ReplaceOne(ctx,
		bson.M{"_id": norm},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("blacklist.upsert: %w", err)
	}
	return nil
}
