package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account in the "users" collection. Users are created at
// registration and never updated or deleted by this API.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	Password    string             `bson:"password" json:"-"` // argon2id hash, never serialized
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
