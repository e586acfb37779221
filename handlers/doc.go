// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the PulsePoll API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Registration, login, profile, image upload
  - PollHandler: Poll lifecycle (create, list, fetch, close, delete)
  - VotingHandler: Vote submission and voted-poll listing
  - BookmarkHandler: Bookmark toggling and bookmarked-poll listing

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Auth Flow

Register and login both return a bearer token:

	POST /api/v1/auth/register → Register (returns token)
	POST /api/v1/auth/login    → Login (returns token)
	GET  /api/v1/auth/profile  → GetProfile
	POST /api/v1/auth/upload-image → UploadImage

Login failures report the same generic error for unknown emails and wrong
passwords so the endpoint cannot be used to probe for accounts.

# Poll Lifecycle

	POST   /api/v1/poll            → CreatePoll
	GET    /api/v1/poll            → ListPolls (filter by type, creatorId)
	GET    /api/v1/poll/{id}       → GetPoll
	POST   /api/v1/poll/{id}/close → ClosePoll (creator only)
	DELETE /api/v1/poll/{id}       → DeletePoll (creator only)

Yes/no and rating polls get their options generated at creation time;
open-ended polls have none and collect free-text responses instead.

# Voting Flow

	POST /api/v1/poll/{id}/vote → Vote
	GET  /api/v1/poll/voted     → GetVotedPolls

A user votes at most once per poll. The voter-list insert and the option
counter increment run in one transaction, with the vote table's primary
key resolving concurrent duplicates; the loser gets a 409.

# Bookmarks

	POST /api/v1/poll/{id}/bookmark → ToggleBookmark
	GET  /api/v1/poll/bookmarked    → GetBookmarkedPolls

All poll, voting and bookmark operations require a Bearer token; the
caller's identity always comes from the token, never the request body.
*/
package handlers
