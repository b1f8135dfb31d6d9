package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"airnav/internal/domain"
)

// mongoDestination writes the snapshot into one collection per entity
// kind, replacing each collection wholesale.
type mongoDestination struct {
	client *mongo.Client
	dbName string
}

func newMongoDestination(cfg Config, password string) (*mongoDestination, error) {
	var uri string
	// A full connection string (Atlas mongodb+srv:// or standard
	// mongodb://) is used as-is; otherwise the URI is built from
	// host:port.
	if strings.HasPrefix(cfg.Host, "mongodb+srv://") || strings.HasPrefix(cfg.Host, "mongodb://") {
		uri = cfg.Host
		if password != "" {
			uri = strings.ReplaceAll(uri, "<password>", password)
		}
	} else {
		port := cfg.Port
		if port == 0 {
			port = 27017
		}
		if cfg.Username != "" {
			uri = fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Username, password, cfg.Host, port)
		} else {
			uri = fmt.Sprintf("mongodb://%s:%d", cfg.Host, port)
		}
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = "airnav"
	}
	return &mongoDestination{client: client, dbName: dbName}, nil
}

func (d *mongoDestination) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return d.client.Ping(ctx, nil)
}

func (d *mongoDestination) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// replaceCollection drops coll and inserts docs in one batch.
func (d *mongoDestination) replaceCollection(ctx context.Context, coll string, docs []any) error {
	c := d.client.Database(d.dbName).Collection(coll)
	if err := c.Drop(ctx); err != nil {
		return fmt.Errorf("drop %s: %w", coll, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := c.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", coll, err)
	}
	return nil
}

func (d *mongoDestination) StoreAirports(ctx context.Context, airports []*domain.Airport) error {
	docs := make([]any, len(airports))
	for i, a := range airports {
		docs[i] = a
	}
	return d.replaceCollection(ctx, "airports", docs)
}

func (d *mongoDestination) StoreNavaids(ctx context.Context, navaids []*domain.Navaid) error {
	docs := make([]any, len(navaids))
	for i, n := range navaids {
		docs[i] = n
	}
	return d.replaceCollection(ctx, "navaids", docs)
}

func (d *mongoDestination) StoreAirways(ctx context.Context, airways []*domain.Airway) error {
	docs := make([]any, len(airways))
	for i, a := range airways {
		docs[i] = a
	}
	return d.replaceCollection(ctx, "airways", docs)
}

func (d *mongoDestination) StoreILS(ctx context.Context, systems []*domain.ILS) error {
	docs := make([]any, len(systems))
	for i, s := range systems {
		docs[i] = s
	}
	return d.replaceCollection(ctx, "ils_systems", docs)
}
