// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pulsepoll/server/auth"
	"github.com/pulsepoll/server/cliparse"
	"github.com/pulsepoll/server/middleware"
	"github.com/pulsepoll/server/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Vote handles POST /api/v1/poll/{id}/vote
//
// The voter-list insert and the option-counter increment run in one
// transaction, with the poll_vote primary key doing the duplicate
// detection. Two concurrent votes from the same user serialize on that
// key: one commits, the other sees zero affected rows and gets a 409.
// Voter identity always comes from the bearer token, never the body.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	voterID := middleware.UserID(r)

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var pollType string
	var closed bool
	err = tx.QueryRow("SELECT type, closed FROM poll WHERE id = $1", pollID).Scan(&pollType, &closed)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if closed {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is closed and no longer accepts votes")
		return
	}

	// Validate the payload against the poll type before touching state
	if models.ChoiceType(pollType) {
		if req.OptionIndex == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "optionIndex is required for this poll type")
			return
		}
	} else if strings.TrimSpace(req.ResponseText) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "responseText is required for open-ended polls")
		return
	}

	// Claim the voter-list slot. Zero affected rows means this user
	// already voted.
	res, err := tx.Exec(`
		INSERT INTO poll_vote (poll_id, voter_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, voter_id) DO NOTHING
	`, pollID, voterID, time.Now())
	if err != nil {
		slog.Error("failed to insert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read vote result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted on this poll")
		return
	}

	if models.ChoiceType(pollType) {
		res, err := tx.Exec(`
			UPDATE poll_option SET votes = votes + 1
			WHERE poll_id = $1 AND idx = $2
		`, pollID, *req.OptionIndex)
		if err != nil {
			slog.Error("failed to increment option counter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Unknown option index; the deferred rollback drops the vote
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid optionIndex "+strconv.Itoa(*req.OptionIndex))
			return
		}
	} else {
		_, err = tx.Exec(`
			INSERT INTO poll_response (id, poll_id, voter_id, response_text, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, auth.NewID(), pollID, voterID, strings.TrimSpace(req.ResponseText), time.Now())
		if err != nil {
			slog.Error("failed to insert response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "voter_id", voterID, "type", pollType)

	poll, err := fetchPoll(h.db, pollID, voterID)
	if err != nil {
		slog.Error("failed to load voted poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// GetVotedPolls handles GET /api/v1/poll/voted
// Lists the polls the caller has voted on, most recent vote first.
func (h *VotingHandler) GetVotedPolls(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	userID := middleware.UserID(r)

	query := `
		SELECT v.poll_id FROM poll_vote v
		WHERE v.voter_id = $1
		ORDER BY v.created_at DESC, v.poll_id
		LIMIT $2 OFFSET $3
	`
	args := []interface{}{userID, limit + 1, (page - 1) * limit}

	pollHandler := PollHandler{db: h.db, cfg: h.cfg}
	pollHandler.listByQuery(w, r, query, args, page, limit)
}
