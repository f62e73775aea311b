package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tarefista/tarefista-backend/internal/models"
	"github.com/tarefista/tarefista-backend/internal/store"
)

// TasksHandler serves the to-do CRUD plus the batch sync endpoint.
type TasksHandler struct {
	tasks store.TaskStore
}

func NewTasksHandler(tasks store.TaskStore) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

type taskRequest struct {
	Text              string     `json:"text"`
	Completed         bool       `json:"completed"`
	UserID            string     `json:"userId"`
	TempUserID        string     `json:"tempUserId"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern *string    `json:"recurrencePattern"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	CreatedAt         *time.Time `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt"`
}

type syncTasksRequest struct {
	UserID string `json:"userId"`
	Tasks  []struct {
		Text      string     `json:"text"`
		Completed bool       `json:"completed"`
		CreatedAt *time.Time `json:"createdAt"`
	} `json:"tasks"`
}

// Create inserts a new task owned by exactly one of userId/tempUserId.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner, err := resolveOwner(req.UserID, req.TempUserID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "userId OR tempUserId is required")
		return
	}

	now := time.Now().UTC()
	createdAt := now
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}
	updatedAt := now
	if req.UpdatedAt != nil {
		updatedAt = req.UpdatedAt.UTC()
	}

	task := models.Task{
		Text:        req.Text,
		Completed:   req.Completed,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		UserID:      owner.UserID,
		TempUserID:  owner.TempUserID,
		IsRecurring: req.IsRecurring,
	}
	if req.IsRecurring {
		pattern := ""
		if req.RecurrencePattern != nil {
			pattern = *req.RecurrencePattern
		}
		task.RecurrencePattern = &pattern
		if req.StartDate != nil {
			start := req.StartDate.UTC()
			task.StartDate = &start
		}
		if req.EndDate != nil {
			end := req.EndDate.UTC()
			task.EndDate = &end
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := h.tasks.Insert(ctx, task)
	if err != nil {
		slog.Error("tasks: insert failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, TaskResponse{
		ID:                id,
		Text:              task.Text,
		Completed:         task.Completed,
		CreatedAt:         &task.CreatedAt,
		UpdatedAt:         &task.UpdatedAt,
		UserID:            task.UserID,
		TempUserID:        task.TempUserID,
		IsRecurring:       task.IsRecurring,
		RecurrencePattern: task.RecurrencePattern,
		StartDate:         task.StartDate,
		EndDate:           task.EndDate,
	})
}

// List returns all tasks for the single resolved owner key.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ownerFilter(r.URL.Query().Get("userId"), r.URL.Query().Get("tempUserId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "User ID or Temp User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := h.tasks.ListByOwner(ctx, filter)
	if err != nil {
		slog.Error("tasks: list query failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}

	tasks := make([]TaskResponse, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, shapeTask(doc))
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Update rewrites a task's mutable fields. No ownership check is enforced
// here; see DESIGN.md for why that matches the original product behavior.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := h.tasks.Update(ctx, chi.URLParam(r, "id"), bson.M{
		"text":              req.Text,
		"completed":         req.Completed,
		"updatedAt":         time.Now().UTC(),
		"isRecurring":       req.IsRecurring,
		"recurrencePattern": req.RecurrencePattern,
	})
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		slog.Error("tasks: update failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	writeMessage(w, http.StatusOK, "Task updated")
}

// Delete removes a task after verifying the caller owns it.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")

	doc, err := h.tasks.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		slog.Error("tasks: delete lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	authorized := authorizedOwner(
		storedString(doc["userId"]),
		storedString(doc["tempUserId"]),
		r.URL.Query().Get("userId"),
		r.URL.Query().Get("tempUserId"),
	)
	if !authorized {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.tasks.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("tasks: delete failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted successfully")
}

// Sync persists a batch of tasks for a registered user atomically: either
// every task in the batch is committed or none are.
func (h *TasksHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeMessage(w, http.StatusBadRequest, "User ID required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := req.UserID
	now := time.Now().UTC()

	batch := make([]models.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		createdAt := now
		if t.CreatedAt != nil {
			createdAt = t.CreatedAt.UTC()
		}
		batch = append(batch, models.Task{
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: createdAt,
			UpdatedAt: now,
			UserID:    &userID,
		})
	}

	if err := h.tasks.InsertBatch(ctx, batch); err != nil {
		slog.Error("tasks: sync transaction failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to sync tasks")
		return
	}

	writeMessage(w, http.StatusOK, "Tasks synced successfully")
}
