package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a to-do item in the "tasks" collection. Exactly one of UserID and
// TempUserID is non-nil: a task belongs either to a registered user or to an
// anonymous temp-user session, never both.
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	UserID     *string `bson:"userId" json:"userId"`
	TempUserID *string `bson:"tempUserId" json:"tempUserId"`

	// Recurrence fields are meaningful only when IsRecurring is true.
	IsRecurring       bool       `bson:"isRecurring" json:"isRecurring"`
	RecurrencePattern *string    `bson:"recurrencePattern" json:"recurrencePattern"`
	StartDate         *time.Time `bson:"startDate" json:"startDate"`
	EndDate           *time.Time `bson:"endDate" json:"endDate"`
}
