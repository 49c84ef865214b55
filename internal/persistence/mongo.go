package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/spec-kit/daily-pulse/internal/config"
)

// Mongo wraps the process-wide MongoDB client. It is created once at
// startup and shared read-only by every request.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects when a connection URI can be derived from configuration.
// Without one it returns a disabled handle and the caller falls back to the
// in-memory store.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	uri := cfg.ConnectionURI()
	if uri == "" {
		logger.Warn("DB_USER/DB_PASS or MONGO_URI not provided; skipping database connection")
		return &Mongo{}, nil
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(cfg.ConnectTimeout())

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Enabled reports whether a live connection exists.
func (m *Mongo) Enabled() bool {
	return m != nil && m.Client != nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m.Enabled() {
		_ = m.Client.Disconnect(ctx)
	}
}

// Ping verifies MongoDB connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if !m.Enabled() {
		return errors.New("mongodb not configured")
	}
	return m.Client.Ping(ctx, readpref.Primary())
}
