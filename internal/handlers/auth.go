package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tarefista/tarefista-backend/internal/models"
	"github.com/tarefista/tarefista-backend/internal/services"
	"github.com/tarefista/tarefista-backend/internal/store"
	"github.com/tarefista/tarefista-backend/pkg/utils"
)

// AuthHandler serves registration, login, logout and the identity endpoints.
type AuthHandler struct {
	users     store.UserStore
	tokens    *services.TokenService
	blacklist services.TokenBlacklist
}

func NewAuthHandler(users store.UserStore, tokens *services.TokenService, blacklist services.TokenBlacklist) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, blacklist: blacklist}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Register creates a new user with a hashed password. Emails are unique,
// compared exactly as stored; the insert itself is the authority on
// duplicates, so two concurrent registrations still yield exactly one 409.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := h.users.FindByEmail(ctx, req.Email)
	if err == nil {
		writeMessage(w, http.StatusConflict, "User with this email already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		slog.Error("register: email lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("register: password hashing failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := models.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    hash,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := h.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeMessage(w, http.StatusConflict, "User with this email already exists")
			return
		}
		slog.Error("register: insert failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and issues a session token: 404 for an unknown
// email, 401 for a wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("login: user lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		slog.Error("login: token issuance failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Logout revokes the presented bearer token. It is idempotent and succeeds
// even when no token is presented at all.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		if err := h.blacklist.Revoke(r.Context(), token); err != nil {
			slog.Error("logout: revoke failed", "error", err)
		}
	}
	writeMessage(w, http.StatusOK, "Logout successful")
}

// GetUserID validates the bearer token and returns the userId claim. Revoked
// tokens are rejected the same way as expired ones.
func (h *AuthHandler) GetUserID(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	revoked, err := h.blacklist.IsRevoked(r.Context(), token)
	if err != nil {
		slog.Error("userId: blacklist lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Error getting userId")
		return
	}
	if revoked {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := h.tokens.Validate(token)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"userId": userID})
	case errors.Is(err, services.ErrTokenExpired), errors.Is(err, services.ErrTokenInvalid):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrMissingClaim):
		writeMessage(w, http.StatusBadRequest, "Token has no userId claim")
	default:
		slog.Error("userId: token validation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Error getting userId",
			"error":   err.Error(),
		})
	}
}

// GetTempUserID mints a fresh anonymous identity for clients that have not
// registered yet.
func (h *AuthHandler) GetTempUserID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"tempUserId": utils.NewTempUserID()})
}
