package output

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restodata/restogen/internal/models"
)

// MongoOutput replaces each named collection in the target database
// with the freshly generated records: drop, then bulk insert.
type MongoOutput struct {
	client   *mongo.Client
	database string
}

func NewMongoOutput(ctx context.Context, cfg models.MongoConfig) (*MongoOutput, error) {
	if cfg.URI == "" {
		return nil, &SinkError{Sink: "mongo", Err: fmt.Errorf("set MONGODB_URI (or MONGO_URI) before using --insert")}
	}
	if cfg.Database == "" {
		return nil, &SinkError{Sink: "mongo", Err: fmt.Errorf("database name is required")}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, &SinkError{Sink: "mongo", Err: fmt.Errorf("connecting: %w", err)}
	}
	return &MongoOutput{client: client, database: cfg.Database}, nil
}

func (m *MongoOutput) WriteDataset(ctx context.Context, dataset *models.Dataset) error {
	db := m.client.Database(m.database)

	for _, collection := range dataset.Collections() {
		coll := db.Collection(collection.Name)
		if err := coll.Drop(ctx); err != nil {
			return &SinkError{Sink: "mongo", Err: fmt.Errorf("dropping %s: %w", collection.Name, err)}
		}
		if len(collection.Docs) == 0 {
			continue
		}
		if _, err := coll.InsertMany(ctx, collection.Docs); err != nil {
			return &SinkError{Sink: "mongo", Err: fmt.Errorf("inserting into %s: %w", collection.Name, err)}
		}

		log.WithFields(logrus.Fields{
			"collection": collection.Name,
			"records":    len(collection.Docs),
			"database":   m.database,
		}).Info("inserted collection")
	}
	return nil
}

func (m *MongoOutput) Close() error {
	return m.client.Disconnect(context.Background())
}
