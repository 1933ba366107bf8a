// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package manga

import "context"

// # Manga Data Access

// Repository defines the data access contract for the manga domain.
type Repository interface {

	/*
		List returns a filtered, paginated slice of titles plus the total
		count matching the filter.

		Statistics (average rating, rating count, chapter count, latest
		chapter timestamp) are computed in a derived table so the filter's
		range constraints and every sort key can address them directly.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Search, enums, ranges, sorting)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Manga: Hydrated titles with genres and statistics
		  - int: Total count matching the filter
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Manga, int, error)

	/*
		FindBySlug retrieves one fully hydrated title by its public slug.

		Genres, tags, publishers and creator names arrive via JSON
		aggregation sub-queries in a single round-trip.

		Returns:
		  - *Manga: The hydrated title
		  - error: apperr.NotFound for an unknown slug
	*/
	FindBySlug(context context.Context, slug string) (*Manga, error)

	/*
		FindByID retrieves one fully hydrated title by its primary key.

		Returns:
		  - *Manga: The hydrated title
		  - error: apperr.NotFound for an unknown ID
	*/
	FindByID(context context.Context, id string) (*Manga, error)

	/*
		Create persists a new title and all of its junction associations
		(genres, tags, publishers, related titles) in one transaction.

		Returns:
		  - error: apperr.Conflict for a duplicate slug
	*/
	Create(context context.Context, manga *Manga) error

	/*
		Update applies a partial metadata update and fully re-syncs any
		association slice that is non-nil, in one transaction.

		Returns:
		  - error: apperr.NotFound for an unknown ID
	*/
	Update(context context.Context, manga *Manga) error

	/*
		Delete removes a title. Chapters, pages, junction rows and social
		data go with it through cascading foreign keys.

		Returns:
		  - error: apperr.NotFound for an unknown ID
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementViewCount bumps the popularity counter atomically in SQL,
		avoiding a read-modify-write race.
	*/
	IncrementViewCount(context context.Context, id string, delta int64) error

	/*
		ListRelated returns the titles linked to the given one. The link
		table is one-directional; this read unions both directions.
	*/
	ListRelated(context context.Context, mangaID string) ([]*Manga, error)

	/*
		Popular returns the top titles by view count, descending.
	*/
	Popular(context context.Context, limit int) ([]*Manga, error)

	/*
		Newest returns the most recently added titles, descending.
	*/
	Newest(context context.Context, limit int) ([]*Manga, error)

	/*
		PopularWithChapters returns the top titles by view count that have
		at least one chapter, ordered by views then latest chapter.
	*/
	PopularWithChapters(context context.Context, limit int) ([]*Manga, error)
}

// # Discovery Cache

// DiscoveryCache holds the short-TTL derived lists (popular, newest,
// popular-with-chapters). The relational store stays the source of
// truth; a miss or a cache failure falls through to SQL.
type DiscoveryCache interface {

	// Get returns the cached list for a discovery key, and whether the
	// key was present.
	Get(context context.Context, key string) ([]*Manga, bool)

	// Set stores a discovery list under the key with the standard TTL.
	// Failures are logged, never returned.
	Set(context context.Context, key string, mangas []*Manga)
}
