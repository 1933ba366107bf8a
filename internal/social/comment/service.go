// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package comment

import (
	"context"

	"github.com/valeXeich/Mangalib/internal/platform/validate"
	"github.com/valeXeich/Mangalib/pkg/uuidv7"
)

// MaxContentLength caps a single comment's text.
const MaxContentLength = 3000

// # Service Layer

// Service orchestrates the business logic for comments and votes.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Comment Lifecycle

// CreateInput carries everything needed to post a comment.
//
// Replies set ParentID and may omit the target; the parent's target is
// inherited. Fresh comments set MangaID, plus PageID for inline reader
// comments.
type CreateInput struct {
	AuthorID string
	MangaID  *string
	PageID   *string
	ParentID *string
	Content  string
}

/*
Create posts a new comment or reply.

Description: Validates content bounds and target presence, generates the
comment identity, and delegates the reply/page resolution to the store's
transactional create.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Comment: The persisted comment with server-side timestamps
  - error: Validation errors, apperr.NotFound for missing parents or pages
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Comment, error) {

	// Content and target validation
	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content)
	validator.MaxLen(FieldContent, input.Content, MaxContentLength)
	validator.Custom(FieldMangaID,
		input.ParentID == nil && input.MangaID == nil && input.PageID == nil,
		"A comment needs a manga, a page or a parent")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Identity generation and persistence
	comment := &Comment{
		ID:       uuidv7.New(),
		AuthorID: input.AuthorID,
		MangaID:  input.MangaID,
		PageID:   input.PageID,
		ParentID: input.ParentID,
		Content:  input.Content,
		Replies:  []*Comment{},
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
UpdateContent rewrites the text of the author's own comment.

Returns:
  - error: Validation errors, apperr.NotFound when no owned comment matches
*/
func (service *Service) UpdateContent(context context.Context, id, authorID, content string) error {

	// Content validation
	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, MaxContentLength)

	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.UpdateContent(context, id, authorID, content)
}

/*
Delete removes the author's own comment along with its replies and votes.
*/
func (service *Service) Delete(context context.Context, id, authorID string) error {
	return service.repo.Delete(context, id, authorID)
}

// # Discussion Reads

/*
ListThreads returns one target's discussion as nested reply trees.

Description: Fetches the whole target flat in a single scored query, then
assembles the trees in memory with [BuildTree]. Only top-level comments
appear as roots; replies live inside their parent's Replies slice.
*/
func (service *Service) ListThreads(context context.Context, target Target) ([]*Comment, error) {

	// Flat scored retrieval
	flat, err := service.repo.ListForTarget(context, target)
	if err != nil {
		return nil, err
	}

	// In-memory tree assembly
	return BuildTree(flat), nil
}

// # Voting

/*
CastVote toggles the user's vote on a comment.

Description: Validates the vote direction and delegates the atomic toggle
to the store. The outcome tells the caller whether the vote was recorded,
flipped or withdrawn.

Parameters:
  - context: context.Context
  - userID: string
  - commentID: string
  - vote: int (VoteUp or VoteDown)

Returns:
  - VoteOutcome: added, updated or removed
  - error: Validation errors, apperr.NotFound for a missing comment
*/
func (service *Service) CastVote(context context.Context, userID, commentID string, vote int) (VoteOutcome, error) {

	// Vote direction validation
	validator := &validate.Validator{}
	validator.Custom(FieldVote, vote != VoteUp && vote != VoteDown, "Vote must be 1 or -1")

	if err := validator.Err(); err != nil {
		return "", err
	}

	return service.repo.CastVote(context, userID, commentID, vote)
}
