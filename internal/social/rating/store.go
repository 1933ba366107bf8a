// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package rating

import "context"

// # Rating Data Access

// Repository defines the data access contract for the rating domain.
type Repository interface {

	/*
		Create persists a new rating.

		Parameters:
		  - context: context.Context
		  - rating: *Rating (Hydrated entity with ID, UserID, MangaID, Star)

		Returns:
		  - error: apperr.Conflict when the (user, manga) pair is already rated
	*/
	Create(context context.Context, rating *Rating) error

	/*
		Update changes the star value of an existing rating owned by the user.

		Parameters:
		  - context: context.Context
		  - id: string (Rating UUID)
		  - userID: string (Owner UUID, scopes the update)
		  - star: int

		Returns:
		  - error: apperr.NotFound when no owned rating matches
	*/
	Update(context context.Context, id, userID string, star int) error

	/*
		Delete withdraws a rating owned by the user.

		Parameters:
		  - context: context.Context
		  - id: string (Rating UUID)
		  - userID: string (Owner UUID, scopes the delete)

		Returns:
		  - error: apperr.NotFound when no owned rating matches
	*/
	Delete(context context.Context, id, userID string) error

	/*
		FindByUserAndMangaSlug returns the user's rating for a manga
		identified by its slug.

		Returns:
		  - *Rating: The hydrated rating
		  - error: apperr.NotFound when the user has not rated the manga
	*/
	FindByUserAndMangaSlug(context context.Context, userID, slug string) (*Rating, error)

	/*
		CountsByStar returns the grouped per-star counts for a manga.

		Only stars inside [MinStar, MaxStar] are returned; absent stars
		are simply missing from the map.
	*/
	CountsByStar(context context.Context, mangaID string) (map[int]int, error)

	/*
		Average returns the mean star value for a manga, zero when unrated.
	*/
	Average(context context.Context, mangaID string) (float64, error)
}
