// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/users/account"
	"github.com/valeXeich/Mangalib/internal/users/auth"
	"github.com/valeXeich/Mangalib/pkg/pointer"
)

// fakeRepository is an in-memory [account.Repository].
type fakeRepository struct {
	users   map[string]*auth.User
	updates int
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) Update(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	f.updates++
	return nil
}

func newService() (*account.Service, *fakeRepository) {
	repo := &fakeRepository{users: map[string]*auth.User{
		"u1": {ID: "u1", Username: "reader42", Email: "reader@example.com"},
	}}
	return account.NewService(repo, slog.Default()), repo
}

/*
TestService_UpdateProfile verifies the partial update semantics.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	// Provided fields are overlaid, absent ones stay
	user, err := service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{
		AvatarURL: pointer.To("https://cdn.mangalib.app/a/u1.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "https://cdn.mangalib.app/a/u1.png", *user.AvatarURL)
	assert.Equal(t, "reader42", user.Username)
	assert.Equal(t, 1, repo.updates)

	// Handle changes go through validation
	user, err = service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{
		Username: pointer.To("newreader"),
	})
	require.NoError(t, err)
	assert.Equal(t, "newreader", user.Username)

	// Too-short handles are rejected
	_, err = service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{
		Username: pointer.To("ab"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Malformed media URLs are rejected
	_, err = service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{
		BackgroundURL: pointer.To("not a url"),
	})
	require.Error(t, err)

	// Unknown identities surface as not found
	_, err = service.UpdateProfile(ctx, "missing", account.UpdateProfileInput{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
