// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/pulsepoll/server/auth"
	"github.com/pulsepoll/server/cliparse"
	"github.com/pulsepoll/server/middleware"
	"github.com/pulsepoll/server/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.FullName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !auth.ValidUsername(req.Username) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Invalid username. Only alphanumeric characters and hyphens are allowed. No spaces are permitted.")
		return
	}

	// Reject taken email / username up front for a friendly message; the
	// UNIQUE constraints remain the real guard.
	var emailTaken, usernameTaken bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM app_user WHERE email = $1),
		       EXISTS(SELECT 1 FROM app_user WHERE username = $2)
	`, req.Email, req.Username).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		slog.Error("failed to check existing users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	if emailTaken {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email already in use")
		return
	}
	if usernameTaken {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Username not available. Try another one.")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := models.User{
		ID:           auth.NewID(),
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if req.ProfileImageURL != "" {
		user.ProfileImageURL = &req.ProfileImageURL
	}

	_, err = h.db.Exec(`
		INSERT INTO app_user (id, username, full_name, email, password_hash, profile_image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Username, user.FullName, user.Email, user.PasswordHash, user.ProfileImageURL, user.CreatedAt)

	if err != nil {
		// Lost a race with a concurrent registration
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Email or username already in use")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		ID:    user.ID,
		User:  models.UserProfile{User: user},
		Token: token,
	})
}

// Login handles POST /api/v1/auth/login
// Unknown email and wrong password return the same error so accounts
// cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := getUserByEmail(h.db, req.Email)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	profile, err := buildProfile(h.db, user)
	if err != nil {
		slog.Error("failed to compute user stats", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		ID:    user.ID,
		User:  profile,
		Token: token,
	})
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	user, err := getUserByID(h.db, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	profile, err := buildProfile(h.db, user)
	if err != nil {
		slog.Error("failed to compute user stats", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// UploadImage handles POST /api/v1/auth/upload-image
// Accepts a multipart form with an "image" field and stores the file
// under the configured upload directory with a fresh UUID name.
func (h *AuthHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	const maxUploadSize = 10 << 20 // 10 MiB

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	name := auth.NewID() + ext
	dst, err := os.Create(filepath.Join(h.cfg.UploadDir, name))
	if err != nil {
		slog.Error("failed to create upload file", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		slog.Error("failed to write upload file", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	slog.Info("image uploaded", "file", name, "user_id", middleware.UserID(r))

	middleware.JSONResponse(w, http.StatusCreated, models.UploadImageResponse{
		ImageURL: "/uploads/" + name,
	})
}

const userColumns = "id, username, full_name, email, password_hash, profile_image_url, created_at"

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash, &u.ProfileImageURL, &u.CreatedAt)
	return u, err
}

func getUserByEmail(db *sql.DB, email string) (models.User, error) {
	return scanUser(db.QueryRow("SELECT "+userColumns+" FROM app_user WHERE email = $1", email))
}

func getUserByID(db *sql.DB, id string) (models.User, error) {
	return scanUser(db.QueryRow("SELECT "+userColumns+" FROM app_user WHERE id = $1", id))
}

// buildProfile derives the user's poll counters from the poll store. The
// counts are computed at read time so there is one source of truth.
func buildProfile(db *sql.DB, user models.User) (models.UserProfile, error) {
	profile := models.UserProfile{User: user}

	err := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM poll WHERE creator_id = $1),
			(SELECT COUNT(*) FROM poll_vote WHERE voter_id = $1),
			(SELECT COUNT(*) FROM bookmark WHERE user_id = $1)
	`, user.ID).Scan(&profile.TotalPollsCreated, &profile.TotalPollsVotes, &profile.TotalPollsBookmarked)
	if err != nil {
		return models.UserProfile{}, err
	}

	return profile, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
