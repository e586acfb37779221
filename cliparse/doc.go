// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: PostgreSQL connection string (required)
  - JWTSecret: Secret for signing bearer tokens (required)
  - ClientURL: Allowed CORS origin (default: http://localhost:5173)
  - UploadDir: Directory for uploaded images (default: uploads)

# CLI Flags

	-p           Server port
	-d           Database URL
	-jwt-secret  Token signing secret
	-client-url  Frontend origin
	-upload-dir  Upload directory

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d
	JWT_SECRET   → -jwt-secret
	CLIENT_URL   → -client-url
	UPLOAD_DIR   → -upload-dir

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
