// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pulsepoll/server/auth"
	"github.com/pulsepoll/server/cliparse"
	"github.com/pulsepoll/server/middleware"
	"github.com/pulsepoll/server/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /api/v1/poll
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	creatorID := middleware.UserID(r)

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Question == "" || req.Type == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question and type are required")
		return
	}
	if !models.ValidPollType(req.Type) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll type")
		return
	}

	// Single-choice and image-based polls bring their own options; the
	// fixed types get server-generated option rows.
	options := req.Options
	switch req.Type {
	case models.TypeSingleChoice, models.TypeImageBased:
		if len(options) < 2 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Enter at least two options.")
			return
		}
	case models.TypeYesNo:
		options = []string{"Yes", "No"}
	case models.TypeRating:
		options = []string{"1", "2", "3", "4", "5"}
	case models.TypeOpenEnded:
		options = nil
	}

	pollID := auth.NewID()
	createdAt := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, question, type, creator_id, closed, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`, pollID, req.Question, req.Type, creatorID, createdAt)
	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	for i, label := range options {
		var imageURL *string
		if req.Type == models.TypeImageBased {
			// Image-based options carry an image reference as their content
			u := label
			imageURL = &u
			label = ""
		}
		_, err = tx.Exec(`
			INSERT INTO poll_option (poll_id, idx, label, image_url, votes)
			VALUES ($1, $2, $3, $4, 0)
		`, pollID, i, label, imageURL)
		if err != nil {
			slog.Error("failed to insert option", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "type", req.Type, "creator_id", creatorID)

	poll, err := fetchPoll(h.db, pollID, creatorID)
	if err != nil {
		slog.Error("failed to load created poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /api/v1/poll/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := fetchPoll(h.db, pollID, middleware.UserID(r))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// ListPolls handles GET /api/v1/poll
// Supports ?page=&limit=&type=&creatorId= with descending creation time.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	where := ""
	args := []interface{}{}
	if t := r.URL.Query().Get("type"); t != "" {
		args = append(args, t)
		where += fmt.Sprintf(" AND p.type = $%d", len(args))
	}
	if creator := r.URL.Query().Get("creatorId"); creator != "" {
		args = append(args, creator)
		where += fmt.Sprintf(" AND p.creator_id = $%d", len(args))
	}

	query := `
		SELECT p.id FROM poll p
		WHERE TRUE` + where + `
		ORDER BY p.created_at DESC, p.id
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit+1, (page-1)*limit)

	h.listByQuery(w, r, query, args, page, limit)
}

// ClosePoll handles POST /api/v1/poll/{id}/close
// Only the creator may close; open -> closed is one-way.
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	userID := middleware.UserID(r)

	creatorID, closed, err := pollMeta(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if creatorID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the poll creator can close this poll")
		return
	}
	if closed {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is already closed")
		return
	}

	_, err = h.db.Exec("UPDATE poll SET closed = TRUE WHERE id = $1", pollID)
	if err != nil {
		slog.Error("failed to close poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close poll")
		return
	}

	slog.Info("poll closed", "poll_id", pollID, "creator_id", userID)

	poll, err := fetchPoll(h.db, pollID, userID)
	if err != nil {
		slog.Error("failed to load closed poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /api/v1/poll/{id}
// Only the creator may delete; the poll and its votes, responses, and
// bookmarks are removed outright.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	userID := middleware.UserID(r)

	creatorID, _, err := pollMeta(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if creatorID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the poll creator can delete this poll")
		return
	}

	_, err = h.db.Exec("DELETE FROM poll WHERE id = $1", pollID)
	if err != nil {
		slog.Error("failed to delete poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID, "creator_id", userID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Poll deleted successfully",
	})
}

// listByQuery runs an ID-selecting query that fetches limit+1 rows, loads
// the full poll payloads, and writes the paginated response.
func (h *PollHandler) listByQuery(w http.ResponseWriter, r *http.Request, query string, args []interface{}, page, limit int) {
	viewerID := middleware.UserID(r)

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan poll id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hasMore := len(ids) > limit
	if hasMore {
		ids = ids[:limit]
	}

	polls := []models.Poll{}
	for _, id := range ids {
		poll, err := fetchPoll(h.db, id, viewerID)
		if err != nil {
			slog.Error("failed to load poll", "error", err, "poll_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		polls = append(polls, poll)
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollListResponse{
		Polls:   polls,
		Page:    page,
		HasMore: hasMore,
	})
}

// parsePagination reads ?page= and ?limit= with sane defaults and caps.
func parsePagination(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}

// pollMeta returns the creator ID and closed flag for a poll.
func pollMeta(db *sql.DB, pollID string) (creatorID string, closed bool, err error) {
	err = db.QueryRow("SELECT creator_id, closed FROM poll WHERE id = $1", pollID).Scan(&creatorID, &closed)
	return creatorID, closed, err
}

// fetchPoll loads one poll with its options, voter list, responses, and
// creator summary. The viewer-dependent flags (userHasVoted, bookmarked)
// are computed for viewerID.
func fetchPoll(db *sql.DB, pollID, viewerID string) (models.Poll, error) {
	var poll models.Poll
	err := db.QueryRow(`
		SELECT p.id, p.question, p.type, p.closed, p.created_at,
		       u.id, u.username, u.full_name, u.profile_image_url
		FROM poll p
		JOIN app_user u ON u.id = p.creator_id
		WHERE p.id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Question, &poll.Type, &poll.Closed, &poll.CreatedAt,
		&poll.Creator.ID, &poll.Creator.Username, &poll.Creator.FullName, &poll.Creator.ProfileImageURL,
	)
	if err != nil {
		return models.Poll{}, err
	}

	// Options
	rows, err := db.Query(`
		SELECT idx, label, image_url, votes
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY idx
	`, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	defer rows.Close()

	poll.Options = []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Index, &opt.Label, &opt.ImageURL, &opt.Votes); err != nil {
			return models.Poll{}, err
		}
		poll.Options = append(poll.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, err
	}

	// Voter list
	voterRows, err := db.Query(`
		SELECT voter_id FROM poll_vote WHERE poll_id = $1 ORDER BY created_at
	`, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	defer voterRows.Close()

	poll.Voters = []string{}
	for voterRows.Next() {
		var voterID string
		if err := voterRows.Scan(&voterID); err != nil {
			return models.Poll{}, err
		}
		poll.Voters = append(poll.Voters, voterID)
		if voterID == viewerID {
			poll.UserHasVoted = true
		}
	}
	if err := voterRows.Err(); err != nil {
		return models.Poll{}, err
	}

	// Free-text responses (open-ended polls)
	poll.Responses = []models.PollResponse{}
	if poll.Type == models.TypeOpenEnded {
		respRows, err := db.Query(`
			SELECT id, voter_id, response_text, created_at
			FROM poll_response
			WHERE poll_id = $1
			ORDER BY created_at
		`, pollID)
		if err != nil {
			return models.Poll{}, err
		}
		defer respRows.Close()

		for respRows.Next() {
			var resp models.PollResponse
			if err := respRows.Scan(&resp.ID, &resp.VoterID, &resp.ResponseText, &resp.CreatedAt); err != nil {
				return models.Poll{}, err
			}
			poll.Responses = append(poll.Responses, resp)
		}
		if err := respRows.Err(); err != nil {
			return models.Poll{}, err
		}
	}

	if viewerID != "" {
		err = db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM bookmark WHERE user_id = $1 AND poll_id = $2)
		`, viewerID, pollID).Scan(&poll.Bookmarked)
		if err != nil {
			return models.Poll{}, err
		}
	}

	return poll, nil
}
