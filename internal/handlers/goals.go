package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tarefista/tarefista-backend/internal/models"
	"github.com/tarefista/tarefista-backend/internal/store"
)

// GoalsHandler serves goal creation, listing and deletion. Goals have no
// update operation.
type GoalsHandler struct {
	goals store.GoalStore
}

func NewGoalsHandler(goals store.GoalStore) *GoalsHandler {
	return &GoalsHandler{goals: goals}
}

type goalRequest struct {
	Text        string `json:"text"`
	Periodicity string `json:"periodicity"`
	UserID      string `json:"userId"`
	TempUserID  string `json:"tempUserId"`
}

// Create inserts a new goal under the same ownership rules as tasks.
func (h *GoalsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	owner, err := resolveOwner(req.UserID, req.TempUserID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "userId OR tempUserId is required")
		return
	}

	goal := models.Goal{
		Text:        req.Text,
		Periodicity: req.Periodicity,
		CreatedAt:   time.Now().UTC(),
		UserID:      owner.UserID,
		TempUserID:  owner.TempUserID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := h.goals.Insert(ctx, goal)
	if err != nil {
		slog.Error("goals: insert failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	periodicity := goal.Periodicity
	if periodicity == "" {
		periodicity = defaultPeriodicity
	}
	writeJSON(w, http.StatusCreated, GoalResponse{
		ID:          id,
		Text:        goal.Text,
		Periodicity: periodicity,
		CreatedAt:   &goal.CreatedAt,
		UserID:      goal.UserID,
		TempUserID:  goal.TempUserID,
	})
}

// List returns all goals for the single resolved owner key.
func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ownerFilter(r.URL.Query().Get("userId"), r.URL.Query().Get("tempUserId"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "User ID or Temp User ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	docs, err := h.goals.ListByOwner(ctx, filter)
	if err != nil {
		slog.Error("goals: list query failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	goals := make([]GoalResponse, 0, len(docs))
	for _, doc := range docs {
		goals = append(goals, shapeGoal(doc))
	}

	writeJSON(w, http.StatusOK, goals)
}

// Delete removes a goal after verifying the caller owns it.
func (h *GoalsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := chi.URLParam(r, "id")

	doc, err := h.goals.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		slog.Error("goals: delete lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete goal")
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

	if err := h.goals.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("goals: delete failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	writeMessage(w, http.StatusOK, "Goal deleted successfully")
}
