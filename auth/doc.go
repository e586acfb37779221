// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, token issuance, and ID generation.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidCredentials on mismatch so callers can
map it to a uniform login failure without inspecting bcrypt errors.

# Bearer Tokens

Tokens are JWTs signed with HMAC-SHA256, carrying the user ID as the
subject and expiring after TokenTTL (one hour):

	token, err := auth.GenerateToken(userID, secret)
	userID, err := auth.ParseToken(token, secret)

ParseToken rejects tokens signed with any non-HMAC algorithm, expired
tokens, and tokens signed with a different secret, returning
ErrInvalidToken in each case.

# ID Generation

Database records use random UUIDv4 strings:

	id := auth.NewID()

# Username Validation

Usernames are limited to alphanumerics and hyphens:

	ok := auth.ValidUsername(name)
*/
package auth
