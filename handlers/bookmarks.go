// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/pulsepoll/server/cliparse"
	"github.com/pulsepoll/server/middleware"
	"github.com/pulsepoll/server/models"
)

type BookmarkHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBookmarkHandler(db *sql.DB, cfg cliparse.Config) *BookmarkHandler {
	return &BookmarkHandler{db: db, cfg: cfg}
}

// ToggleBookmark handles POST /api/v1/poll/{id}/bookmark
// Adds the poll to the caller's bookmark list if absent, removes it if
// present. Toggling twice restores the original state.
func (h *BookmarkHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	userID := middleware.UserID(r)

	var exists bool
	err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)", pollID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	// Insert-or-delete in one round trip each way. The primary key makes
	// the insert side race-safe; losing the race just flips to the
	// delete side on the next toggle.
	res, err := h.db.Exec(`
		INSERT INTO bookmark (user_id, poll_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, poll_id) DO NOTHING
	`, userID, pollID, time.Now())
	if err != nil {
		slog.Error("failed to insert bookmark", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to toggle bookmark")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read bookmark result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to toggle bookmark")
		return
	}

	bookmarked := affected > 0
	if !bookmarked {
		// Was already bookmarked - toggle off
		_, err = h.db.Exec("DELETE FROM bookmark WHERE user_id = $1 AND poll_id = $2", userID, pollID)
		if err != nil {
			slog.Error("failed to delete bookmark", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to toggle bookmark")
			return
		}
	}

	slog.Info("bookmark toggled", "poll_id", pollID, "user_id", userID, "bookmarked", bookmarked)

	middleware.JSONResponse(w, http.StatusOK, models.BookmarkResponse{
		PollID:     pollID,
		Bookmarked: bookmarked,
	})
}

// GetBookmarkedPolls handles GET /api/v1/poll/bookmarked
// Lists the caller's bookmarked polls, most recently bookmarked first.
func (h *BookmarkHandler) GetBookmarkedPolls(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	userID := middleware.UserID(r)

	query := `
		SELECT b.poll_id FROM bookmark b
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.poll_id
		LIMIT $2 OFFSET $3
	`
	args := []interface{}{userID, limit + 1, (page - 1) * limit}

	pollHandler := PollHandler{db: h.db, cfg: h.cfg}
	pollHandler.listByQuery(w, r, query, args, page, limit)
}
