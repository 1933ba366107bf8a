// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package auth implements the identity and session layer of Mangalib.

It defines the core domain entities (User, Session) together with the
registration, login, and refresh-rotation flows that every authenticated
surface of the API builds on.
*/
package auth

import (
	"time"

	"github.com/valeXeich/Mangalib/internal/platform/sec"
)

// # Authentication Constraints

const (
	// AccessTokenTTL keeps the JWT short-lived so a leaked token has a
	// narrow blast radius.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL keeps the tracked session long-lived for UX.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// MinPasswordLength is the weakest password the platform accepts.
	MinPasswordLength = 8

	// MinUsernameLength bounds the shortest accepted handle.
	MinUsernameLength = 3
)

// # Domain Entities

// User represents a registered member of the Mangalib platform.
type User struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"` // Explicitly omitted from JSON for security.
	AvatarURL     *string      `json:"avatar_url"`
	BackgroundURL *string      `json:"background_url"`
	Role          sec.UserRole `json:"role"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session on one device.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Digest of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Field names for validation in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
