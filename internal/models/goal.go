package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is a periodic objective in the "goals" collection. Same ownership
// invariant as Task; goals are created and deleted but never updated.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text        string             `bson:"text" json:"text"`
	Periodicity string             `bson:"periodicity" json:"periodicity"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`

	UserID     *string `bson:"userId" json:"userId"`
	TempUserID *string `bson:"tempUserId" json:"tempUserId"`
}
