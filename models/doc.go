// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: fullName, username, email, password, profileImageUrl
  - LoginRequest: email, password
  - CreatePollRequest: question, type, options
  - VoteRequest: optionIndex or responseText, depending on the poll type

# Response Types

Types for JSON responses:

  - AuthResponse: id, user, token
  - UploadImageResponse: imageUrl
  - BookmarkResponse: pollId, bookmarked
  - PollListResponse: polls, page, hasMore
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: persisted account record (the password hash never serializes)
  - UserProfile: User plus counters derived from the poll store at read time
  - CreatorSummary: the slice of a user embedded in poll payloads
  - Poll: question, options, voter list, creator, closed flag
  - Option: label or image URL with its vote counter
  - PollResponse: free-text answer to an open-ended poll

# Constants

Poll types:

	TypeSingleChoice = "single-choice"
	TypeYesNo        = "yes/no"
	TypeRating       = "rating"
	TypeImageBased   = "image-based"
	TypeOpenEnded    = "open-ended"

ValidPollType checks membership; ChoiceType reports whether a type is
voted on by option index (everything except open-ended).
*/
package models
