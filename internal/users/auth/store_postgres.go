// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
	"github.com/valeXeich/Mangalib/internal/platform/dberr"
)

// # User Persistence

// PostgresUserRepository implements [UserRepository] using a pgxpool.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository returns a fully wired postgres implementation.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
Create persists a brand new user account.

Description: Inserts the account row and binds the database-generated
audit timestamps back onto the entity. Unique violations on the handle
or email surface as client-safe conflicts.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict on a duplicate username or email
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, email, passwordhash, avatarurl, backgroundurl, role, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`, schema.UsersAccount.Table)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.AvatarURL, user.BackgroundURL, string(user.Role),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

// findBy shares the single-account hydration across the lookup columns.
func (repository *PostgresUserRepository) findBy(context context.Context, column string, value string) (*User, error) {

	query := fmt.Sprintf(`
		SELECT id, username, email, passwordhash, avatarurl, backgroundurl, role, createdat, updatedat
		FROM %s
		WHERE %s = $1
	`, schema.UsersAccount.Table, column)

	user := &User{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.BackgroundURL, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user")
	}

	return user, nil
}

/*
FindByEmail resolves an account by its unique email address.
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Email, email)
}

/*
FindByUsername resolves an account by its unique handle.
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Username, username)
}

/*
FindByID resolves an account by its primary key.
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id)
}

// # Session Persistence

// PostgresSessionRepository implements [SessionRepository] using a pgxpool.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSessionRepository returns a fully wired postgres implementation.
func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

/*
Create persists a new tracked session.

Returns:
  - error: Database execution errors
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING createdat
	`, schema.UsersSession.Table)

	err := repository.db.QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash,
		session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)

	return dberr.Wrap(err, "create_session")
}

/*
FindByTokenHash resolves a live session by its refresh token digest.

Description: Revoked and expired rows are filtered in SQL so the caller
only ever sees usable sessions.

Returns:
  - *Session: The active session
  - error: apperr.NotFound if no live session carries the digest
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {

	query := fmt.Sprintf(`
		SELECT id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		FROM %s
		WHERE tokenhash = $1 AND isrevoked = FALSE AND expiresat > NOW()
	`, schema.UsersSession.Table)

	session := &Session{}
	err := repository.db.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash,
		&session.UserAgent, &session.IPAddress,
		&session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session")
		}
		return nil, dberr.Wrap(err, "find_session")
	}

	return session, nil
}

/*
Revoke marks one session as permanently unusable.

Returns:
  - error: apperr.NotFound for an unknown session
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {

	query := fmt.Sprintf(`UPDATE %s SET isrevoked = TRUE WHERE id = $1`, schema.UsersSession.Table)

	cmd, err := repository.db.Exec(context, query, sessionID)
	if err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}

	return nil
}

/*
RevokeAll marks every session of a user as unusable.

Returns:
  - error: Database execution errors
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {

	query := fmt.Sprintf(`UPDATE %s SET isrevoked = TRUE WHERE userid = $1 AND isrevoked = FALSE`, schema.UsersSession.Table)

	_, err := repository.db.Exec(context, query, userID)
	return dberr.Wrap(err, "revoke_all_sessions")
}
