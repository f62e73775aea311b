// Package store is the persistence seam over the document store. Handlers
// depend on these interfaces; the Mongo implementations live alongside them.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tarefista/tarefista-backend/internal/models"
)

var (
	// ErrNotFound means no document matched the given id or filter.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail means a user with that email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists registered accounts. Users are inserted once and read by
// email at login; they are never updated or deleted.
type UserStore interface {
	Insert(ctx context.Context, user models.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskStore persists to-do items. Reads return raw documents so response
// shaping can tolerate legacy field representations.
type TaskStore interface {
	Insert(ctx context.Context, task models.Task) (string, error)
	ListByOwner(ctx context.Context, filter bson.M) ([]bson.M, error)
	Get(ctx context.Context, id string) (bson.M, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	// InsertBatch commits every task or none: a mid-batch failure must leave
	// nothing persisted.
	InsertBatch(ctx context.Context, tasks []models.Task) error
}

// GoalStore persists goals. Goals have no update operation.
type GoalStore interface {
	Insert(ctx context.Context, goal models.Goal) (string, error)
	ListByOwner(ctx context.Context, filter bson.M) ([]bson.M, error)
	Get(ctx context.Context, id string) (bson.M, error)
	Delete(ctx context.Context, id string) error
}
