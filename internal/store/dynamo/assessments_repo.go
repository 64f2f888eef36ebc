package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ceylonsure/motor-risk/internal/core"
)

type AssessmentItem struct {
	ID         string `dynamodbav:"id"`
	CustomerID string `dynamodbav:"customer_id,omitempty"`

	RiskProbability    float64  `dynamodbav:"risk_probability"`
	RiskLabel          string   `dynamodbav:"risk_label"`
	EBMProbability     float64  `dynamodbav:"ebm_probability"`
	NGBoostProbability *float64 `dynamodbav:"ngboost_probability,omitempty"`
	NGBoostUncertainty *float64 `dynamodbav:"ngboost_uncertainty,omitempty"`
	EscalateToNGBoost  bool     `dynamodbav:"escalate_to_ngboost"`

	DriverAgeBand  string `dynamodbav:"driver_age_band"`
	VehicleAgeBand string `dynamodbav:"vehicle_age_band"`

	CreatedAt string `dynamodbav:"created_at"`
}

func (i AssessmentItem) ToCore() core.RiskAssessment {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	return core.RiskAssessment{
		ID:                 i.ID,
		CustomerID:         i.CustomerID,
		RiskProbability:    i.RiskProbability,
		RiskLabel:          core.RiskLabel(i.RiskLabel),
		EBMProbability:     i.EBMProbability,
		NGBoostProbability: i.NGBoostProbability,
		NGBoostUncertainty: i.NGBoostUncertainty,
		EscalateToNGBoost:  i.EscalateToNGBoost,
		DriverAgeBand:      i.DriverAgeBand,
		VehicleAgeBand:     i.VehicleAgeBand,
		CreatedAt:          createdAt,
	}
}

func assessmentItemFromCore(a core.RiskAssessment) AssessmentItem {
	return AssessmentItem{
		ID:                 a.ID,
		CustomerID:         a.CustomerID,
		RiskProbability:    a.RiskProbability,
		RiskLabel:          string(a.RiskLabel),
		EBMProbability:     a.EBMProbability,
		NGBoostProbability: a.NGBoostProbability,
		NGBoostUncertainty: a.NGBoostUncertainty,
		EscalateToNGBoost:  a.EscalateToNGBoost,
		DriverAgeBand:      a.DriverAgeBand,
		VehicleAgeBand:     a.VehicleAgeBand,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
	}
}

type AssessmentRepo struct {
	client *dynamodb.Client
}

func NewAssessmentRepo(client *dynamodb.Client) *AssessmentRepo {
	return &AssessmentRepo{client: client}
}

func (r *AssessmentRepo) Create(ctx context.Context, a core.RiskAssessment) error {
	item := assessmentItemFromCore(a)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("assessments.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("assessments.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableAssessments),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrConflict
		}
		return fmt.Errorf("assessments.putItem: %w", err)
	}

	return nil
}

func (r *AssessmentRepo) Get(ctx context.Context, id string) (core.RiskAssessment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableAssessments),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.RiskAssessment{}, fmt.Errorf("assessments.getItem: %w", err)
	}

	if out.Item == nil {
		return core.RiskAssessment{}, core.ErrNotFound
	}

	var item AssessmentItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.RiskAssessment{}, fmt.Errorf("assessments.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}
