package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/ceylonsure/motor-risk/internal/core"
)

type AssessmentRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewAssessmentRepo(db *mongodrv.Database, opTimeout time.Duration) *AssessmentRepoMongo {
	return &AssessmentRepoMongo{
		coll:      db.Collection(ColAssessments),
		opTimeout: opTimeout,
	}
}

func (repo *AssessmentRepoMongo) Create(ctx context.Context, a core.RiskAssessment) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	doc := toAssessmentDoc(a)
	_, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		// map dup key -> core.ErrConflict
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrConflict
				}
			}
		}
		return fmt.Errorf("assessments.insert: %w", err)
	}
	return nil
}

func (repo *AssessmentRepoMongo) Get(ctx context.Context, id string) (core.RiskAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc AssessmentDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.RiskAssessment{}, core.ErrNotFound
		}
		return core.RiskAssessment{}, fmt.Errorf("assessments.findOne: %w", err)
	}
	return fromAssessmentDoc(doc), nil
}
