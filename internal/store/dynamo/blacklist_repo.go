package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ceylonsure/motor-risk/internal/core"
)

type BlacklistItem struct {
	CustomerID string `dynamodbav:"customer_id"`
	Reason     string `dynamodbav:"reason,omitempty"`
	AddedAt    string `dynamodbav:"added_at,omitempty"`
}

// BlacklistRepo answers membership checks against the blacklist table.
// Read path only, plus Upsert for the seeding tool.
type BlacklistRepo struct {
	client *dynamodb.Client
}

func NewBlacklistRepo(client *dynamodb.Client) *BlacklistRepo {
	return &BlacklistRepo{client: client}
}

func (r *BlacklistRepo) Contains(ctx context.Context, customerID string) (bool, error) {
	norm := core.NormalizeCustomerID(customerID)
	if norm == "" {
		return false, nil
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableBlacklist),
		Key: map[string]types.AttributeValue{
			"customer_id": &types.AttributeValueMemberS{Value: norm},
		},
	})
	if err != nil {
		return false, fmt.Errorf("blacklist.getItem: %w", err)
	}

	return out.Item != nil, nil
}

// Upsert adds or refreshes one blacklist entry (seeding/admin path).
func (r *BlacklistRepo) Upsert(ctx context.Context, customerID, reason string, addedAt time.Time) error {
	norm := core.NormalizeCustomerID(customerID)
	if norm == "" {
		return fmt.Errorf("%w: empty customer id", core.ErrValidation)
	}

	item := BlacklistItem{
		CustomerID: norm,
		Reason:     reason,
		AddedAt:    addedAt.Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("blacklist.marshal: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(TableBlacklist),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("blacklist.putItem: %w", err)
	}
	return nil
}
