package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/localauth/config"
	"github.com/haguru/localauth/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	KEYFIELD    = "key"
	VALUEFIELD  = "value"
)

// kvDocument is the stored shape of one key.
type kvDocument struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

// MongoDBClient stores each key as one {key, value} document in a collection.
type MongoDBClient struct {
	ServerOpts     *options.ServerAPIOptions
	client         *mongo.Client
	collection     *mongo.Collection
	collectionName string
	timeout        time.Duration
}

// NewMongoDB returns an unconnected client; call Connect before use.
func NewMongoDB(dbConfig *config.MongoDBConfig) *MongoDBClient {
	return &MongoDBClient{
		timeout:        dbConfig.Timeout,
		ServerOpts:     config.BuildServerAPIOptions(dbConfig.Options),
		collectionName: dbConfig.Collection,
	}
}

var _ interfaces.KVStore = (*MongoDBClient)(nil)

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>"; the database
// name is taken from its path. A unique index on the key field is created on success.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}
	if m.collectionName == "" {
		return fmt.Errorf("MongoDBClient: collection name cannot be empty")
	}

	databaseName, err := getDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
	}

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)

	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}

	m.collection = m.client.Database(databaseName).Collection(m.collectionName)
	return m.EnsureSchema(ctx)
}

// EnsureSchema creates the unique index on the key field.
// If the collection does not exist, it will be created automatically.
func (m *MongoDBClient) EnsureSchema(ctx context.Context) error {
	if m.collection == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: KEYFIELD, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := m.collection.Indexes().CreateOne(ctx, model)
	return err
}

func (m *MongoDBClient) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{KEYFIELD: key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("MongoDBClient: Failed to find %s in %s: %w", key, m.collectionName, err)
	}
	return doc.Value, true, nil
}

func (m *MongoDBClient) Set(ctx context.Context, key, value string) error {
	_, err := m.collection.UpdateOne(ctx,
		bson.M{KEYFIELD: key},
		bson.M{"$set": bson.M{VALUEFIELD: value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to upsert %s in %s: %w", key, m.collectionName, err)
	}
	return nil
}

func (m *MongoDBClient) Remove(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{KEYFIELD: key}); err != nil {
		return fmt.Errorf("MongoDBClient: Failed deleting %s from %s: %w", key, m.collectionName, err)
	}
	return nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client if it was connected.
func (m *MongoDBClient) Close(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path: %s", dsn)
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}
