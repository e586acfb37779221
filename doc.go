// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the PulsePoll API server.

PulsePoll is a polling service where registered users create polls of
several types (single-choice, yes/no, rating, image-based, open-ended),
vote at most once per poll, and bookmark polls to revisit later.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 5000 -d "postgres://..." -jwt-secret "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Secret for signing bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - CLIENT_URL (-client-url): Allowed CORS origin (default: http://localhost:5173)
  - UPLOAD_DIR (-upload-dir): Directory for profile images (default: uploads)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, polls, voting, bookmarks)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Auth gating, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing and JWT issuance
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
