package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ceylonsure/motor-risk/internal/platform/config"
)

const (
	connectAttempts = 5
	connectBackoff  = 1 * time.Second
	backoffCeiling  = 30 * time.Second
)

// MongoClient owns the connection behind the mongo-backed repos.
type MongoClient struct {
	Client *mongodrv.Client
	DB     *mongodrv.Database
}

// NewClient connects and verifies the connection, retrying with
// exponential backoff so the service survives being started before the
// database accepts connections.
func NewClient(ctx context.Context, cfg *config.Config, log *slog.Logger) (*MongoClient, error) {
	connectTimeout := time.Duration(cfg.MongoConnectTimeoutSec) * time.Second
	clientOpts := options.Client().ApplyURI(cfg.MongoURI)

	// One attempt: connect and ping under a single timeout, cleaning up
	// the half-open client if the ping fails.
	connect := func() (*mongodrv.Client, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		client, err := mongodrv.Connect(attemptCtx, clientOpts)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		if err := client.Ping(attemptCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ping: %w", err)
		}
		return client, nil
	}

	backoff := connectBackoff
	for attempt := 1; ; attempt++ {
		client, err := connect()
		if err == nil {
			return &MongoClient{Client: client, DB: client.Database(cfg.MongoDB)}, nil
		}
		if attempt == connectAttempts {
			return nil, fmt.Errorf("mongo unreachable after %d attempts: %w", connectAttempts, err)
		}

		log.Warn("mongo connect failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"err", err)
		time.Sleep(backoff)
		backoff = min(backoff*2, backoffCeiling)
	}
}

// Ping verifies connectivity (used by /readyz).
func (c *MongoClient) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, nil)
}

// Close gracefully disconnects.
func (c *MongoClient) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
