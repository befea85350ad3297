package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
)

// MongoStorage is the document-store backend. IDs are ObjectID hex
// strings assigned on insert.
type MongoStorage struct {
	client    *mongo.Client
	users     *mongo.Collection
	exercises *mongo.Collection
	logger    internal.Logger
}

func NewMongoStorage(ctx context.Context, uri, dbName string, logger internal.Logger) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("failed to connect to mongo: %v", err)
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("failed to ping mongo: %v", err)
		_ = client.Disconnect(ctx)
		return nil, err
	}
	db := client.Database(dbName)
	return &MongoStorage{
		client:    client,
		users:     db.Collection("users"),
		exercises: db.Collection("exercises"),
		logger:    logger,
	}, nil
}

func (m *MongoStorage) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// --- UserRepository ---

func (m *MongoStorage) CreateUser(ctx context.Context, user *internal.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		m.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (m *MongoStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	var u internal.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		m.logger.Errorf("failed to find user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (m *MongoStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	cur, err := m.users.Find(ctx, bson.M{})
	if err != nil {
		m.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	var users []internal.User
	if err := cur.All(ctx, &users); err != nil {
		m.logger.Errorf("failed to decode users: %v", err)
		return nil, err
	}
	return users, nil
}

func (m *MongoStorage) DeleteAllUsers(ctx context.Context) error {
	if _, err := m.users.DeleteMany(ctx, bson.M{}); err != nil {
		m.logger.Errorf("failed to delete users: %v", err)
		return err
	}
	return nil
}

// --- ExerciseRepository ---

func (m *MongoStorage) CreateExercise(ctx context.Context, exercise *internal.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.exercises.InsertOne(ctx, exercise); err != nil {
		m.logger.Errorf("failed to insert exercise: %v", err)
		return err
	}
	return nil
}

func (m *MongoStorage) ListExercises(ctx context.Context) ([]internal.Exercise, error) {
	cur, err := m.exercises.Find(ctx, bson.M{})
	if err != nil {
		m.logger.Errorf("failed to query exercises: %v", err)
		return nil, err
	}
	var exercises []internal.Exercise
	if err := cur.All(ctx, &exercises); err != nil {
		m.logger.Errorf("failed to decode exercises: %v", err)
		return nil, err
	}
	return exercises, nil
}

func (m *MongoStorage) ListUserExercises(ctx context.Context, userID string, limit int64) ([]internal.Exercise, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := m.exercises.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		m.logger.Errorf("failed to query exercises for user %s: %v", userID, err)
		return nil, err
	}
	var exercises []internal.Exercise
	if err := cur.All(ctx, &exercises); err != nil {
		m.logger.Errorf("failed to decode exercises for user %s: %v", userID, err)
		return nil, err
	}
	return exercises, nil
}

func (m *MongoStorage) DeleteAllExercises(ctx context.Context) error {
	if _, err := m.exercises.DeleteMany(ctx, bson.M{}); err != nil {
		m.logger.Errorf("failed to delete exercises: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*MongoStorage)(nil)
var _ ExerciseRepository = (*MongoStorage)(nil)
