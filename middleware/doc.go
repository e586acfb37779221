// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Auth Gating

RequireAuth parses the Authorization header, validates the bearer token,
and stores the caller's user ID on the request context:

	mux.HandleFunc("GET /api/v1/auth/profile",
		middleware.RequireAuth(cfg.JWTSecret, handler))

Handlers read the identity back with:

	userID := middleware.UserID(r)

Missing, malformed, or invalid tokens get a 401 before the handler runs.
WithUserID injects an identity directly for handler tests.

# CORS Middleware

Enable cross-origin requests for the configured frontend origin:

	server := http.Server{
		Handler: middleware.CORS(cfg.ClientURL, mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
