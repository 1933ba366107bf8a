// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for the chapter domain.
type Repository interface {

	/*
		ListByManga returns every chapter of a slug-identified manga with
		its volume number and page count, in reading order.

		Returns:
		  - []*Chapter: Chapters, oldest first within ascending volumes
		  - error: apperr.NotFound for an unknown manga slug
	*/
	ListByManga(context context.Context, mangaSlug string) ([]*Chapter, error)

	/*
		FindByID returns one chapter with its volume number, page count
		and manga summary.

		Returns:
		  - *Chapter: The hydrated chapter
		  - error: apperr.NotFound for an unknown ID
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		ListPages returns a chapter's pages ordered by page number.

		Returns:
		  - []*Page: The ordered pages
		  - error: apperr.NotFound for an unknown chapter
	*/
	ListPages(context context.Context, chapterID string) ([]*Page, error)

	/*
		Latest returns the most recently released chapters across the
		whole catalogue with their manga summaries.
	*/
	Latest(context context.Context, limit int) ([]*Chapter, error)

	/*
		Create persists a chapter, resolving its volume by number within
		the manga (creating the volume on first use) in one transaction.

		Returns:
		  - error: apperr.NotFound for an unknown manga, apperr.Conflict
		    for a duplicate chapter slug
	*/
	Create(context context.Context, chapter *Chapter, volumeNumber int) error

	/*
		AddPages appends pages to a chapter in one batch.

		Returns:
		  - error: apperr.NotFound for an unknown chapter
	*/
	AddPages(context context.Context, chapterID string, pages []*Page) error
}

// # Latest Feed Cache

// LatestCache holds the short-TTL latest-chapters feed. Best-effort,
// same contract as the catalogue's discovery cache.
type LatestCache interface {

	// Get returns the cached feed and whether it was present.
	Get(context context.Context) ([]*Chapter, bool)

	// Set stores the feed with the standard TTL. Failures are logged,
	// never returned.
	Set(context context.Context, chapters []*Chapter)
}
