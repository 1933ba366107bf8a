// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for catalogue master data.
type Repository interface {

	// ## Taxonomy Data Access

	/*
		ListGenres retrieves genres together with their per-genre manga totals.

		Parameters:
		  - context: context.Context
		  - limit: int (0 returns the full vocabulary)

		Returns:
		  - []*Genre: Genres ordered by name with usage counts
		  - error: Database retrieval failures
	*/
	ListGenres(context context.Context, limit int) ([]*Genre, error)

	/*
		CreateGenre persists a new genre entry.

		Parameters:
		  - context: context.Context
		  - name: string (Unique display name)

		Returns:
		  - *Genre: The persisted entry with its generated key
		  - error: apperr.Conflict on a duplicate name
	*/
	CreateGenre(context context.Context, name string) (*Genre, error)

	/*
		ListTags retrieves the full tag vocabulary ordered by name.

		Returns:
		  - []*Tag: Collection of tags
		  - error: Database retrieval failures
	*/
	ListTags(context context.Context) ([]*Tag, error)

	/*
		CreateTag persists a new tag entry.

		Returns:
		  - *Tag: The persisted entry
		  - error: apperr.Conflict on a duplicate name
	*/
	CreateTag(context context.Context, name string) (*Tag, error)

	// ## Contributor Data Access

	/*
		ListContributors retrieves one creator registry ordered by name.

		Parameters:
		  - context: context.Context
		  - kind: ContributorKind (Writing or drawing registry)

		Returns:
		  - []*Contributor: Collection of creators
		  - error: Database retrieval failures
	*/
	ListContributors(context context.Context, kind ContributorKind) ([]*Contributor, error)

	/*
		CreateContributor persists a creator into one of the kind registries.

		Returns:
		  - *Contributor: The persisted entry
		  - error: apperr.Conflict on a duplicate name
	*/
	CreateContributor(context context.Context, kind ContributorKind, name string) (*Contributor, error)

	// ## Publisher Data Access

	/*
		ListPublishers retrieves the publisher registry ordered by name.

		Returns:
		  - []*Publisher: Collection of publishers
		  - error: Database retrieval failures
	*/
	ListPublishers(context context.Context) ([]*Publisher, error)

	/*
		CreatePublisher persists a new publisher entry.

		Returns:
		  - *Publisher: The persisted entry
		  - error: apperr.Conflict on a duplicate name
	*/
	CreatePublisher(context context.Context, name string) (*Publisher, error)
}
