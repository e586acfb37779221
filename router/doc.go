// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the PulsePoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Auth (register/login public, the rest requires a Bearer token):

	POST /api/v1/auth/register     - Create account
	POST /api/v1/auth/login        - Exchange credentials for a token
	GET  /api/v1/auth/profile      - Caller's profile with poll stats
	POST /api/v1/auth/upload-image - Upload a profile image

Poll lifecycle (requires Bearer token):

	POST   /api/v1/poll            - Create poll
	GET    /api/v1/poll            - List polls (type, creatorId filters)
	GET    /api/v1/poll/{id}       - Get poll details
	POST   /api/v1/poll/{id}/close - Close poll (creator only)
	DELETE /api/v1/poll/{id}       - Delete poll (creator only)

Voting and bookmarks (requires Bearer token):

	POST /api/v1/poll/{id}/vote     - Cast a vote
	GET  /api/v1/poll/voted         - Polls the caller voted on
	POST /api/v1/poll/{id}/bookmark - Toggle a bookmark
	GET  /api/v1/poll/bookmarked    - Caller's bookmarked polls

Static:

	GET /uploads/{file} - Serve uploaded profile images

The literal /api/v1/poll/voted and /api/v1/poll/bookmarked segments take
precedence over the {id} wildcard under Go 1.22+ routing.

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	bookmarkHandler := handlers.NewBookmarkHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
