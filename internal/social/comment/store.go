// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for the comment domain.
type Repository interface {

	/*
		Create persists a new comment, resolving reply semantics in one
		transaction.

		When ParentID is set the store loads the parent, inherits its
		attachment target, and flips the parent's isparent marker. When
		PageID is set alongside MangaID the store verifies the page
		belongs to that manga.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (ID, AuthorID, Content and target populated)

		Returns:
		  - error: apperr.NotFound for a missing parent, validation errors
		    for a page/manga mismatch
	*/
	Create(context context.Context, comment *Comment) error

	/*
		UpdateContent rewrites the text of a comment owned by the author.

		Returns:
		  - error: apperr.NotFound when no owned comment matches
	*/
	UpdateContent(context context.Context, id, authorID, content string) error

	/*
		Delete removes an author's comment. Replies and votes go with it
		through cascading foreign keys.

		Returns:
		  - error: apperr.NotFound when no owned comment matches
	*/
	Delete(context context.Context, id, authorID string) error

	/*
		ListForTarget returns one discussion flat, replies included, with
		vote scores and author summaries joined in. Oldest first so tree
		assembly preserves conversation order.
	*/
	ListForTarget(context context.Context, target Target) ([]*Comment, error)

	/*
		CastVote applies the vote toggle state machine atomically.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - commentID: string
		  - vote: int (VoteUp or VoteDown)

		Returns:
		  - VoteOutcome: added, updated or removed
		  - error: apperr.NotFound for a missing comment, apperr.Conflict
		    when a concurrent duplicate insert loses the race
	*/
	CastVote(context context.Context, userID, commentID string, vote int) (VoteOutcome, error)
}
