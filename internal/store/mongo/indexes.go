package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensureAssessmentIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure assessment indexes: %w", err)
	}
	// Blacklist needs no extra indexes: membership is a point read on _id.
	return nil
}

func ensureAssessmentIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColAssessments)
	models := []mongo.IndexModel{
		newIndex("customer_id", 1, "assessments_customer_id", false),
		newIndex("created_at", 1, "assessments_created_at", false),
		newIndex("risk_label", 1, "assessments_risk_label", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func newIndex(field string, order int, name string, unique bool) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: order}},
		Options: options.Index().SetName(name).SetUnique(unique),
	}
}
