// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package auth

import "context"

// # Identity Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand new user account.

		Parameters:
		  - context: context.Context
		  - user: *User (Entity with a pre-generated identity)

		Returns:
		  - error: apperr.Conflict on a duplicate username or email
	*/
	Create(context context.Context, user *User) error

	/*
		FindByEmail resolves an account by its unique email address.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound if no account carries the email
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername resolves an account by its unique handle.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound if no account carries the handle
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID resolves an account by its primary key.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound for an unknown identity
	*/
	FindByID(context context.Context, id string) (*User, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh sessions.
type SessionRepository interface {

	/*
		Create persists a new tracked session.

		Returns:
		  - error: Database execution errors
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash resolves a live session by its refresh token digest.
		Revoked and expired sessions never match.

		Returns:
		  - *Session: The active session
		  - error: apperr.NotFound if no live session carries the digest
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke marks one session as permanently unusable.

		Returns:
		  - error: apperr.NotFound for an unknown session
	*/
	Revoke(context context.Context, sessionID string) error

	/*
		RevokeAll marks every session of a user as unusable.

		Returns:
		  - error: Database execution errors
	*/
	RevokeAll(context context.Context, userID string) error
}
