// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package account

import (
	"context"
	"log/slog"

	"github.com/valeXeich/Mangalib/internal/platform/validate"
	"github.com/valeXeich/Mangalib/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: apperr.NotFound or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.repo.FindByID(context, userID)
}

// UpdateProfileInput defines the mutable subset of profile fields.
// Nil pointers leave the current value untouched.
type UpdateProfileInput struct {
	Username      *string
	AvatarURL     *string
	BackgroundURL *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Description: Fetches the existing state, overlays the provided fields,
and synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation errors, apperr.Conflict on a taken handle
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {

	// Delta validation, only provided fields are checked
	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(FieldUsername, *input.Username)
		validator.MinLen(FieldUsername, *input.Username, auth.MinUsernameLength)
	}
	if input.AvatarURL != nil && *input.AvatarURL != "" {
		validator.URL(FieldAvatarURL, *input.AvatarURL)
	}
	if input.BackgroundURL != nil && *input.BackgroundURL != "" {
		validator.URL(FieldBackgroundURL, *input.BackgroundURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Load current state
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Overlay provided fields
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.AvatarURL != nil {
		user.AvatarURL = input.AvatarURL
	}
	if input.BackgroundURL != nil {
		user.BackgroundURL = input.BackgroundURL
	}

	// Persist changes
	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
