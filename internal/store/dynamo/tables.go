package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Table names
const (
	TableAssessments = "motor_risk_assessments"
	TableBlacklist   = "motor_risk_blacklist"
)

// GSI names
const (
	GSIAssessmentsCustomer = "customer_id-index"
)

// EnsureTables creates all required tables if they don't exist.
func EnsureTables(ctx context.Context, client *dynamodb.Client, log *slog.Logger) error {
	tables := []struct {
		name   string
		create func(context.Context, *dynamodb.Client) error
	}{
		{TableAssessments, createAssessmentsTable},
		{TableBlacklist, createBlacklistTable},
	}

	for _, t := range tables {
		exists, err := tableExists(ctx, client, t.name)
		if err != nil {
			return fmt.Errorf("check table %s: %w", t.name, err)
		}
		if exists {
			log.Info("table exists", "table", t.name)
			continue
		}

		log.Info("creating table", "table", t.name)
		if err := t.create(ctx, client); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		log.Info("table created", "table", t.name)
	}

	return nil
}

func tableExists(ctx context.Context, client *dynamodb.Client, name string) (bool, error) {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func createAssessmentsTable(ctx context.Context, client *dynamodb.Client) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(TableAssessments),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("customer_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(GSIAssessmentsCustomer),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("customer_id"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	return err
}

func createBlacklistTable(ctx context.Context, client *dynamodb.Client) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(TableBlacklist),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("customer_id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("customer_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	return err
}
