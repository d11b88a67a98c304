package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	appName     = "homeshare"
	dialTimeout = 10 * time.Second
)

type Client struct {
	DB *mongo.Database
}

// New dials the cluster and returns a handle on the service database.
// Majority read and write concerns are set here so the unit-of-work
// transactions started from this handle inherit them.
func New(ctx context.Context, uri, database string) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetRetryWrites(true)
	m, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, err
	}
	dbOpts := options.Database().
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority())
	return &Client{DB: m.Database(database, dbOpts)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.DB.Client().Disconnect(ctx)
}
