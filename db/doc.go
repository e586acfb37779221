// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - app_user: Registered accounts (unique username and email)
  - poll: Poll metadata, type, and closed flag
  - poll_option: Indexed options with vote counters
  - poll_vote: One row per (poll, voter) pair
  - poll_response: Free-text answers to open-ended polls
  - bookmark: One row per (user, poll) pair

# Relationships

	app_user 1──* poll
	poll 1──* poll_option
	poll 1──* poll_vote
	poll 1──* poll_response
	app_user *──* poll (via bookmark)

Poll children use ON DELETE CASCADE, so deleting a poll removes its
options, votes, responses, and bookmarks.

# Constraints

The primary key on poll_vote (poll_id, voter_id) is what enforces the
at-most-one-vote rule; handlers rely on it rather than checking first.
Option counters carry a CHECK (votes >= 0).

# Indexes

Performance indexes on:

  - app_user.username (unique)
  - app_user.email (unique)
  - poll.creator_id
  - poll.created_at
  - poll_vote.voter_id
  - bookmark.poll_id
*/
package db
