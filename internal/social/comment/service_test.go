// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/social/comment"
	"github.com/valeXeich/Mangalib/pkg/pointer"
)

// fakeRepository is an in-memory [comment.Repository] that mimics the
// vote toggle state machine.
type fakeRepository struct {
	created    []*comment.Comment
	flat       []*comment.Comment
	comments   map[string]bool
	votes      map[string]int
	lastTarget comment.Target
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeRepository) UpdateContent(_ context.Context, id, authorID, content string) error {
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id, authorID string) error {
	return nil
}

func (f *fakeRepository) ListForTarget(_ context.Context, target comment.Target) ([]*comment.Comment, error) {
	f.lastTarget = target
	return f.flat, nil
}

func (f *fakeRepository) CastVote(_ context.Context, userID, commentID string, vote int) (comment.VoteOutcome, error) {
	if !f.comments[commentID] {
		return "", apperr.NotFound("Comment")
	}

	key := userID + "/" + commentID
	current, voted := f.votes[key]

	switch {
	case !voted:
		f.votes[key] = vote
		return comment.OutcomeAdded, nil
	case current == vote:
		delete(f.votes, key)
		return comment.OutcomeRemoved, nil
	default:
		f.votes[key] = vote
		return comment.OutcomeUpdated, nil
	}
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		comments: map[string]bool{},
		votes:    map[string]int{},
	}
}

/*
TestService_Create_Validation verifies content and target rules.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   comment.CreateInput
		wantErr bool
	}{
		{
			name:  "manga_comment",
			input: comment.CreateInput{AuthorID: "u1", MangaID: pointer.To("m1"), Content: "Great arc"},
		},
		{
			name:  "reply_without_target",
			input: comment.CreateInput{AuthorID: "u1", ParentID: pointer.To("c1"), Content: "Agreed"},
		},
		{
			name:    "empty_content",
			input:   comment.CreateInput{AuthorID: "u1", MangaID: pointer.To("m1")},
			wantErr: true,
		},
		{
			name:    "no_target_no_parent",
			input:   comment.CreateInput{AuthorID: "u1", Content: "Floating"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := comment.NewService(repo)

			created, err := service.Create(context.Background(), tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				assert.Empty(t, repo.created)
			} else {
				require.NoError(t, err)
				require.NotNil(t, created)
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, tt.input.Content, created.Content)
			}
		})
	}
}

/*
TestService_CastVote_StateMachine walks the full toggle cycle for one
(user, comment) pair.
*/
func TestService_CastVote_StateMachine(t *testing.T) {
	repo := newFakeRepository()
	repo.comments["c1"] = true
	service := comment.NewService(repo)
	ctx := context.Background()

	// First upvote is recorded
	outcome, err := service.CastVote(ctx, "u1", "c1", comment.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, comment.OutcomeAdded, outcome)

	// Opposite vote flips direction
	outcome, err = service.CastVote(ctx, "u1", "c1", comment.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, comment.OutcomeUpdated, outcome)

	// Same vote again withdraws it
	outcome, err = service.CastVote(ctx, "u1", "c1", comment.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, comment.OutcomeRemoved, outcome)

	// Back to no-vote, a fresh cast is recorded again
	outcome, err = service.CastVote(ctx, "u1", "c1", comment.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, comment.OutcomeAdded, outcome)
}

/*
TestService_CastVote_Errors verifies vote value and target checks.
*/
func TestService_CastVote_Errors(t *testing.T) {
	repo := newFakeRepository()
	repo.comments["c1"] = true
	service := comment.NewService(repo)
	ctx := context.Background()

	// Vote outside {1, -1}
	_, err := service.CastVote(ctx, "u1", "c1", 2)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.CastVote(ctx, "u1", "c1", 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Unknown comment
	_, err = service.CastVote(ctx, "u1", "missing", comment.VoteUp)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestBuildTree verifies nesting, ordering and root selection.
*/
func TestBuildTree(t *testing.T) {
	flat := []*comment.Comment{
		{ID: "a", Content: "root a"},
		{ID: "b", Content: "root b"},
		{ID: "a1", ParentID: pointer.To("a"), Content: "reply to a"},
		{ID: "a2", ParentID: pointer.To("a"), Content: "second reply to a"},
		{ID: "a1x", ParentID: pointer.To("a1"), Content: "nested reply"},
	}

	roots := comment.BuildTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].ID)
	assert.Equal(t, "b", roots[1].ID)

	// Siblings keep their posting order
	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, "a1", roots[0].Replies[0].ID)
	assert.Equal(t, "a2", roots[0].Replies[1].ID)

	// Depth is unbounded
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "a1x", roots[0].Replies[0].Replies[0].ID)

	// Leaves carry empty, non-nil reply slices
	assert.NotNil(t, roots[1].Replies)
	assert.Empty(t, roots[1].Replies)
}

/*
TestService_ListThreads verifies the flat fetch plus assembly path.
*/
func TestService_ListThreads(t *testing.T) {
	repo := newFakeRepository()
	repo.flat = []*comment.Comment{
		{ID: "root", Score: 3},
		{ID: "reply", ParentID: pointer.To("root"), Score: -1},
	}
	service := comment.NewService(repo)

	threads, err := service.ListThreads(context.Background(), comment.Target{MangaSlug: "berserk"})
	require.NoError(t, err)

	require.Len(t, threads, 1)
	assert.Equal(t, 3, threads[0].Score)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, -1, threads[0].Replies[0].Score)

	// The store receives the public slug, not an ID
	assert.Equal(t, "berserk", repo.lastTarget.MangaSlug)
}
