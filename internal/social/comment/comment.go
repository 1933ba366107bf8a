// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package comment implements threaded discussions with vote scoring.

Comments attach to either a manga (general discussion) or a single page
(inline reader discussion). Replies reference their parent through a
self-referencing foreign key and inherit the parent's attachment target,
so an entire thread always lives on one target.

# Vote Semantics

Each user holds at most one vote per comment, enforced by a unique
constraint. Casting the same vote again removes it, casting the opposite
vote flips it. A comment's score is the signed sum of its votes.
*/
package comment

import "time"

// # Vote Domain

// Vote values accepted by [Service.CastVote].
const (
	VoteUp   = 1
	VoteDown = -1
)

// VoteOutcome describes what a cast operation did to the user's vote.
type VoteOutcome string

// The three possible results of casting a vote.
const (
	// OutcomeAdded means the user had no vote and one was recorded.
	OutcomeAdded VoteOutcome = "added"
	// OutcomeUpdated means the user's existing vote flipped direction.
	OutcomeUpdated VoteOutcome = "updated"
	// OutcomeRemoved means the same vote was cast twice and withdrawn.
	OutcomeRemoved VoteOutcome = "removed"
)

// # Entity Definition

// Comment represents a single discussion entry.
//
// MangaID and PageID describe the attachment target. A page comment
// carries both (the page plus its owning manga for cheap filtering);
// a manga comment carries only MangaID.
type Comment struct {
	ID       string  `json:"id"`
	AuthorID string  `json:"author_id"`
	MangaID  *string `json:"manga_id,omitempty"`
	PageID   *string `json:"page_id,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`

	Content       string `json:"content"`
	IsPageComment bool   `json:"is_page_comment"`
	IsParent      bool   `json:"is_parent"`

	// Score is the signed vote sum, computed on read.
	Score int `json:"score"`

	// Denormalized author summary for rendering without extra lookups.
	AuthorUsername string  `json:"author_username"`
	AuthorAvatar   *string `json:"author_avatar,omitempty"`

	// Replies holds the nested children, assembled in memory.
	Replies []*Comment `json:"replies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Target selects which discussion to read. Exactly one field is set.
// Manga discussions are addressed by their public slug; chapters and
// pages by ID.
type Target struct {
	MangaSlug string
	ChapterID string
	PageID    string
}

// # Field Identifiers

// Field name constants used in validation error details.
const (
	FieldContent  = "content"
	FieldMangaID  = "manga_id"
	FieldParentID = "parent_id"
	FieldPageID   = "page_id"
	FieldVote     = "vote"
)

// # Tree Assembly

/*
BuildTree nests a flat comment slice into reply trees.

Description: Indexes every comment by ID, then attaches each reply to its
parent's Replies slice. Comments without a parent (or whose parent fell
outside the fetched set) become roots. Input order is preserved for both
roots and sibling replies, and depth is unbounded.

Parameters:
  - flat: []*Comment (One target's comments, parents and replies mixed)

Returns:
  - []*Comment: Root comments with nested Replies
*/
func BuildTree(flat []*Comment) []*Comment {

	// Arena index by ID
	byID := make(map[string]*Comment, len(flat))
	for _, entry := range flat {
		entry.Replies = []*Comment{}
		byID[entry.ID] = entry
	}

	// Parent attachment pass
	roots := make([]*Comment, 0, len(flat))
	for _, entry := range flat {
		if entry.ParentID != nil {
			if parent, ok := byID[*entry.ParentID]; ok {
				parent.Replies = append(parent.Replies, entry)
				continue
			}
		}
		roots = append(roots, entry)
	}

	return roots
}
