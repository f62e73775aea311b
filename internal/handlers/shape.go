package handlers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskResponse is the flattened wire shape of a stored task. Date fields are
// null when absent or unparseable; recurrence fields are null unless
// isRecurring is set.
type TaskResponse struct {
	ID                string     `json:"id"`
	Text              string     `json:"text"`
	Completed         bool       `json:"completed"`
	CreatedAt         *time.Time `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt"`
	UserID            *string    `json:"userId"`
	TempUserID        *string    `json:"tempUserId"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern *string    `json:"recurrencePattern"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
}

// GoalResponse is the flattened wire shape of a stored goal.
type GoalResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Periodicity string     `json:"periodicity"`
	CreatedAt   *time.Time `json:"createdAt"`
	UserID      *string    `json:"userId"`
	TempUserID  *string    `json:"tempUserId"`
}

const defaultPeriodicity = "diaria"

// shapeTask flattens a raw task document, applying the normalized field
// defaults clients rely on. Old documents written by earlier versions of the
// product may miss fields or store dates as strings.
func shapeTask(doc bson.M) TaskResponse {
	isRecurring := storedBool(doc["isRecurring"])

	resp := TaskResponse{
		ID:          storedID(doc["_id"]),
		Text:        storedString(doc["text"]),
		Completed:   storedBool(doc["completed"]),
		CreatedAt:   storedTime(doc["createdAt"]),
		UpdatedAt:   storedTime(doc["updatedAt"]),
		UserID:      storedStringPtr(doc["userId"]),
		TempUserID:  storedStringPtr(doc["tempUserId"]),
		IsRecurring: isRecurring,
	}

	if isRecurring {
		pattern := storedString(doc["recurrencePattern"])
		resp.RecurrencePattern = &pattern
		resp.StartDate = storedTime(doc["startDate"])
		resp.EndDate = storedTime(doc["endDate"])
	}

	return resp
}

// shapeGoal flattens a raw goal document with the same defaulting rules.
func shapeGoal(doc bson.M) GoalResponse {
	periodicity := storedString(doc["periodicity"])
	if periodicity == "" {
		periodicity = defaultPeriodicity
	}

	return GoalResponse{
		ID:          storedID(doc["_id"]),
		Text:        storedString(doc["text"]),
		Periodicity: periodicity,
		CreatedAt:   storedTime(doc["createdAt"]),
		UserID:      storedStringPtr(doc["userId"]),
		TempUserID:  storedStringPtr(doc["tempUserId"]),
	}
}

func storedID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}

func storedString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func storedStringPtr(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func storedBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

// storedTime tolerates the timestamp representations found in the store:
// native BSON datetimes, decoded time.Time values, and ISO-8601 strings.
// Everything is normalized to UTC; anything else comes back nil.
func storedTime(v any) *time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		utc := t.Time().UTC()
		return &utc
	case time.Time:
		utc := t.UTC()
		return &utc
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				utc := parsed.UTC()
				return &utc
			}
		}
		return nil
	default:
		return nil
	}
}
