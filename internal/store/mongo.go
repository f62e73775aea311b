package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tarefista/tarefista-backend/internal/database"
	"github.com/tarefista/tarefista-backend/internal/models"
)

// MongoUserStore persists users in the users collection. The unique email
// index is the authority on duplicates.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(database.UsersCollection)}
}

func (s *MongoUserStore) Insert(ctx context.Context, user models.User) (string, error) {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("store: unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MongoTaskStore persists tasks. It keeps a handle on the database so batch
// inserts can run inside a session transaction.
type MongoTaskStore struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewMongoTaskStore(db *mongo.Database) *MongoTaskStore {
	return &MongoTaskStore{db: db, col: db.Collection(database.TasksCollection)}
}

func (s *MongoTaskStore) Insert(ctx context.Context, task models.Task) (string, error) {
	return insertDoc(ctx, s.col, task)
}

func (s *MongoTaskStore) ListByOwner(ctx context.Context, filter bson.M) ([]bson.M, error) {
	return listDocs(ctx, s.col, filter)
}

func (s *MongoTaskStore) Get(ctx context.Context, id string) (bson.M, error) {
	return getDoc(ctx, s.col, id)
}

func (s *MongoTaskStore) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoTaskStore) Delete(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.col, id)
}

// InsertBatch inserts every task inside one session transaction so that a
// failure partway through aborts the whole batch.
func (s *MongoTaskStore) InsertBatch(ctx context.Context, tasks []models.Task) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, task := range tasks {
			if _, err := s.col.InsertOne(sc, task); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// MongoGoalStore persists goals in the goals collection.
type MongoGoalStore struct {
	col *mongo.Collection
}

func NewMongoGoalStore(db *mongo.Database) *MongoGoalStore {
	return &MongoGoalStore{col: db.Collection(database.GoalsCollection)}
}

func (s *MongoGoalStore) Insert(ctx context.Context, goal models.Goal) (string, error) {
	return insertDoc(ctx, s.col, goal)
}

func (s *MongoGoalStore) ListByOwner(ctx context.Context, filter bson.M) ([]bson.M, error) {
	return listDocs(ctx, s.col, filter)
}

func (s *MongoGoalStore) Get(ctx context.Context, id string) (bson.M, error) {
	return getDoc(ctx, s.col, id)
}

func (s *MongoGoalStore) Delete(ctx context.Context, id string) error {
	return deleteDoc(ctx, s.col, id)
}

func insertDoc(ctx context.Context, col *mongo.Collection, doc interface{}) (string, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("store: unexpected inserted id type")
	}
	return oid.Hex(), nil
}

func listDocs(ctx context.Context, col *mongo.Collection, filter bson.M) ([]bson.M, error) {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func getDoc(ctx context.Context, col *mongo.Collection, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc bson.M
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func deleteDoc(ctx context.Context, col *mongo.Collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
