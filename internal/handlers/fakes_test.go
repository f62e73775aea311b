package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tarefista/tarefista-backend/internal/models"
	"github.com/tarefista/tarefista-backend/internal/store"
)

// In-memory store implementations for handler tests. They hold documents the
// same shape the real store returns so response shaping runs unchanged.

type fakeUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func (s *fakeUserStore) Insert(_ context.Context, user models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return "", store.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, user)
	return user.ID.Hex(), nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeTaskStore struct {
	mu     sync.Mutex
	docs   map[string]bson.M
	nextID int

	// batchFailAt makes InsertBatch fail before inserting the task at this
	// index; -1 disables the failure.
	batchFailAt int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{docs: make(map[string]bson.M), batchFailAt: -1}
}

func taskDoc(id string, t models.Task) bson.M {
	doc := bson.M{
		"_id":         id,
		"text":        t.Text,
		"completed":   t.Completed,
		"createdAt":   t.CreatedAt,
		"updatedAt":   t.UpdatedAt,
		"isRecurring": t.IsRecurring,
	}
	if t.UserID != nil {
		doc["userId"] = *t.UserID
	}
	if t.TempUserID != nil {
		doc["tempUserId"] = *t.TempUserID
	}
	if t.RecurrencePattern != nil {
		doc["recurrencePattern"] = *t.RecurrencePattern
	}
	if t.StartDate != nil {
		doc["startDate"] = *t.StartDate
	}
	if t.EndDate != nil {
		doc["endDate"] = *t.EndDate
	}
	return doc
}

func (s *fakeTaskStore) put(t models.Task) string {
	s.nextID++
	id := fmt.Sprintf("task-%d", s.nextID)
	s.docs[id] = taskDoc(id, t)
	return id
}

func (s *fakeTaskStore) Insert(_ context.Context, task models.Task) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(task), nil
}

func (s *fakeTaskStore) ListByOwner(_ context.Context, filter bson.M) ([]bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return matchDocs(s.docs, filter), nil
}

func (s *fakeTaskStore) Get(_ context.Context, id string) (bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (s *fakeTaskStore) Update(_ context.Context, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *fakeTaskStore) InsertBatch(_ context.Context, tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range tasks {
		if s.batchFailAt == i {
			return errors.New("write conflict")
		}
	}
	for _, t := range tasks {
		s.put(t)
	}
	return nil
}

func (s *fakeTaskStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

type fakeGoalStore struct {
	mu     sync.Mutex
	docs   map[string]bson.M
	nextID int
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{docs: make(map[string]bson.M)}
}

func goalDoc(id string, g models.Goal) bson.M {
	doc := bson.M{
		"_id":         id,
		"text":        g.Text,
		"periodicity": g.Periodicity,
		"createdAt":   g.CreatedAt,
	}
	if g.UserID != nil {
		doc["userId"] = *g.UserID
	}
	if g.TempUserID != nil {
		doc["tempUserId"] = *g.TempUserID
	}
	return doc
}

func (s *fakeGoalStore) Insert(_ context.Context, goal models.Goal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("goal-%d", s.nextID)
	s.docs[id] = goalDoc(id, goal)
	return id, nil
}

func (s *fakeGoalStore) ListByOwner(_ context.Context, filter bson.M) ([]bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return matchDocs(s.docs, filter), nil
}

func (s *fakeGoalStore) Get(_ context.Context, id string) (bson.M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (s *fakeGoalStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func matchDocs(docs map[string]bson.M, filter bson.M) []bson.M {
	matched := make([]bson.M, 0)
	for _, doc := range docs {
		ok := true
		for k, want := range filter {
			if doc[k] != want {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, doc)
		}
	}
	return matched
}

// withURLParam attaches a chi route parameter to a request built outside a
// router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
