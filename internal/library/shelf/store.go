// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package shelf

import "context"

// # Shelf Data Access

// Repository defines the data access contract for the shelf domain.
type Repository interface {

	/*
		Put places a slug-identified manga on one of the user's shelves.

		The operation is idempotent: re-adding an existing entry is a no-op.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (ID, UserID, ListType populated; MangaID resolved
		    from MangaSlug by the store)
		  - slug: string (Target manga slug)

		Returns:
		  - error: apperr.NotFound when the slug matches no manga
	*/
	Put(context context.Context, entry *Entry, slug string) error

	/*
		Remove takes a slug-identified manga off one of the user's shelves.

		Returns:
		  - error: apperr.NotFound when no matching entry exists
	*/
	Remove(context context.Context, userID, slug string, listType ListType) error

	/*
		ListForUser returns all shelf entries of a user with denormalized
		manga summaries, newest first.
	*/
	ListForUser(context context.Context, userID string) ([]*Entry, error)

	/*
		CountsByType returns the grouped per-shelf entry counts for a manga.

		Absent shelves are simply missing from the map.
	*/
	CountsByType(context context.Context, mangaID string) (map[ListType]int, error)
}
