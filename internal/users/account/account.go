// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package account handles user profile management.

It lets an authenticated member view and update their private identity
data. The [auth.User] entity is the single source of profile truth, this
package only adds the mutation surface around it.
*/
package account

import (
	"context"

	"github.com/valeXeich/Mangalib/internal/users/auth"
)

// # Repository Contract

// Repository defines the persistence contract for profile management.
type Repository interface {

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: apperr.Conflict on a duplicate handle
	*/
	Update(context context.Context, user *auth.User) error
}

// # Field Identifiers

// Field names for validation in the account domain.
const (
	FieldUsername      = "username"
	FieldAvatarURL     = "avatar_url"
	FieldBackgroundURL = "background_url"
)
