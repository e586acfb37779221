// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/pulsepoll/server/cliparse"
	"github.com/pulsepoll/server/handlers"
	"github.com/pulsepoll/server/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	bookmarkHandler := handlers.NewBookmarkHandler(db, cfg)

	secret := cfg.JWTSecret
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(secret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth (register/login are public, everything else needs a token)
	mux.HandleFunc("POST /api/v1/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/v1/auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("GET /api/v1/auth/profile", authed(authHandler.GetProfile))
	mux.HandleFunc("POST /api/v1/auth/upload-image", authed(authHandler.UploadImage))

	// Poll lifecycle
	mux.HandleFunc("POST /api/v1/poll", authed(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/v1/poll", authed(pollHandler.ListPolls))
	mux.HandleFunc("GET /api/v1/poll/{id}", authed(pollHandler.GetPoll))
	mux.HandleFunc("POST /api/v1/poll/{id}/close", authed(pollHandler.ClosePoll))
	mux.HandleFunc("DELETE /api/v1/poll/{id}", authed(pollHandler.DeletePoll))

	// Voting
	mux.HandleFunc("POST /api/v1/poll/{id}/vote", authed(votingHandler.Vote))
	mux.HandleFunc("GET /api/v1/poll/voted", authed(votingHandler.GetVotedPolls))

	// Bookmarks
	mux.HandleFunc("POST /api/v1/poll/{id}/bookmark", authed(bookmarkHandler.ToggleBookmark))
	mux.HandleFunc("GET /api/v1/poll/bookmarked", authed(bookmarkHandler.GetBookmarkedPolls))

	// Uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PulsePoll API v1"))
	})

	return mux
}
