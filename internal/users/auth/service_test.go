// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/sec"
	"github.com/valeXeich/Mangalib/internal/users/auth"
)

// fakeUserRepository is an in-memory [auth.UserRepository].
type fakeUserRepository struct {
	users []*auth.User
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// fakeSessionRepository is an in-memory [auth.SessionRepository].
type fakeSessionRepository struct {
	sessions []*auth.Session
}

func (f *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, session := range f.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range f.sessions {
		if session.ID == sessionID {
			session.IsRevoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

// fakeTokenProvider mints predictable access tokens.
type fakeTokenProvider struct{}

func (f *fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "jwt-" + userID, nil
}

func newService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := &fakeUserRepository{}
	sessions := &fakeSessionRepository{}
	return auth.NewService(users, sessions, &fakeTokenProvider{}), users, sessions
}

/*
TestService_Register verifies enrollment rules.
*/
func TestService_Register(t *testing.T) {
	service, users, _ := newService()
	ctx := context.Background()

	// Valid enrollment stores a hashed password and the member role
	user, err := service.Register(ctx, auth.RegisterInput{
		Username: "reader42",
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", user.PasswordHash))

	// Duplicate email conflicts
	_, err = service.Register(ctx, auth.RegisterInput{
		Username: "other", Email: "reader@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Duplicate handle conflicts
	_, err = service.Register(ctx, auth.RegisterInput{
		Username: "reader42", Email: "second@example.com", Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Weak input is rejected before any lookup
	_, err = service.Register(ctx, auth.RegisterInput{
		Username: "ab", Email: "not-an-email", Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.Len(t, users.users, 1)
}

/*
TestService_LoginAndRefresh verifies the session lifecycle.
*/
func TestService_LoginAndRefresh(t *testing.T) {
	service, _, sessions := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "reader42",
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// Login by email opens a tracked session
	login, err := service.Login(ctx, auth.LoginInput{
		Login: "reader@example.com", Password: "correct-horse",
		UserAgent: "test-agent", IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	require.Len(t, sessions.sessions, 1)
	assert.Equal(t, "test-agent", sessions.sessions[0].UserAgent)

	// Login by handle works too
	_, err = service.Login(ctx, auth.LoginInput{Login: "reader42", Password: "correct-horse"})
	require.NoError(t, err)

	// Wrong password is a generic unauthorized
	_, err = service.Login(ctx, auth.LoginInput{Login: "reader42", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Rotation revokes the presented token and issues a new one
	rotated, err := service.RefreshSession(ctx, login.RefreshToken, "test-agent", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)
	assert.True(t, sessions.sessions[0].IsRevoked)

	// The old token can never be replayed
	_, err = service.RefreshSession(ctx, login.RefreshToken, "test-agent", "10.0.0.1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Logout verifies idempotent revocation.
*/
func TestService_Logout(t *testing.T) {
	service, _, sessions := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "reader42", Email: "reader@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	login, err := service.Login(ctx, auth.LoginInput{Login: "reader42", Password: "correct-horse"})
	require.NoError(t, err)

	// First logout revokes the session
	require.NoError(t, service.Logout(ctx, login.RefreshToken))
	assert.True(t, sessions.sessions[0].IsRevoked)

	// Second logout is a no-op, not an error
	require.NoError(t, service.Logout(ctx, login.RefreshToken))

	// Unknown tokens are also fine
	require.NoError(t, service.Logout(ctx, "never-issued"))
}
