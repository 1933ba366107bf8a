// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
	"github.com/valeXeich/Mangalib/internal/platform/dberr"
	"github.com/valeXeich/Mangalib/internal/users/auth"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
FindByID retrieves a user record by their unique ID.

Returns:
  - *auth.User: Loaded account entity
  - error: apperr.NotFound for an unknown identity
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {

	query := fmt.Sprintf(`
		SELECT id, username, email, passwordhash, avatarurl, backgroundurl, role, createdat, updatedat
		FROM %s
		WHERE id = $1
	`, schema.UsersAccount.Table)

	user := &auth.User{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.BackgroundURL, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_account")
	}

	return user, nil
}

/*
Update modifies the mutable profile fields of an existing user.

Description: Writes the handle and media URLs, refreshing the audit
timestamp. Handle collisions surface as client-safe conflicts.

Returns:
  - error: apperr.NotFound for an unknown identity,
    apperr.Conflict on a duplicate handle
*/
func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET username = $2, avatarurl = $3, backgroundurl = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`, schema.UsersAccount.Table)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.AvatarURL, user.BackgroundURL,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username is already taken")
		}
		return dberr.Wrap(err, "update_account")
	}

	return nil
}
