package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/ceylonsure/motor-risk/internal/platform/config"
)

const (
	connectAttempts = 5
	connectBackoff  = 1 * time.Second
	backoffCeiling  = 30 * time.Second
)

// Client owns the DynamoDB connection behind the assessment and
// blacklist repos.
type Client struct {
	DB  *dynamodb.Client
	log *slog.Logger
}

// NewClient builds the DynamoDB client from service configuration and
// verifies connectivity before handing it out. A non-empty
// DYNAMODB_ENDPOINT selects the local-development path: a pinned
// endpoint plus static credentials, so the SDK never consults the AWS
// credential chain.
func NewClient(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.DynamoDBEndpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...any) (aws.Endpoint, error) {
				if service == dynamodb.ServiceID {
					return aws.Endpoint{
						URL:           cfg.DynamoDBEndpoint,
						SigningRegion: cfg.AWSRegion,
					}, nil
				}
				return aws.Endpoint{}, &aws.EndpointNotFoundError{}
			})
		opts = append(opts,
			awsconfig.WithEndpointResolverWithOptions(resolver),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				orLocal(cfg.AWSAccessKeyID), orLocal(cfg.AWSSecretAccessKey), "")),
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	c := &Client{DB: dynamodb.NewFromConfig(awsCfg), log: log}
	if err := c.waitReady(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// orLocal substitutes a placeholder credential for DynamoDB Local,
// which requires credentials to be present but does not check them.
func orLocal(v string) string {
	if v == "" {
		return "local"
	}
	return v
}

// waitReady pings with exponential backoff, so the service survives
// being started before a local DynamoDB container accepts connections.
func (c *Client) waitReady(ctx context.Context) error {
	backoff := connectBackoff
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := c.Ping(pingCtx)
		cancel()

		if err == nil {
			return nil
		}
		if attempt == connectAttempts {
			return fmt.Errorf("dynamodb unreachable after %d attempts: %w", connectAttempts, err)
		}

		c.log.Warn("dynamodb ping failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"err", err)
		time.Sleep(backoff)
		backoff = min(backoff*2, backoffCeiling)
	}
}

// Ping checks connectivity with the cheapest call available. Used by
// /readyz.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.DB.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	return err
}
