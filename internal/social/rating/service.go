// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package rating

import (
	"context"

	"github.com/valeXeich/Mangalib/internal/platform/validate"
	"github.com/valeXeich/Mangalib/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for manga ratings.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Rating Lifecycle

/*
Rate records a new star score for a manga on behalf of a user.

Description: Validates the score against the client-visible range,
generates a UUID v7 identity, and persists. A second rating for the same
manga by the same user is rejected with 409 Conflict by the store.

Parameters:
  - context: context.Context
  - userID: string (Actor UUID)
  - mangaID: string (Target manga UUID)
  - star: int (Score in [MinStar, MaxStar])

Returns:
  - *Rating: The persisted rating with server timestamps
  - error: Validation, conflict, or persistence errors
*/
func (service *Service) Rate(context context.Context, userID, mangaID string, star int) (*Rating, error) {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldMangaID, mangaID)
	validator.Range(FieldStar, star, MinStar, MaxStar)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Identity generation and persistence
	rating := &Rating{
		ID:      uuidv7.New(),
		UserID:  userID,
		MangaID: mangaID,
		Star:    star,
	}

	if err := service.repo.Create(context, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

/*
ChangeStar updates the star value of an existing rating owned by the user.

Parameters:
  - context: context.Context
  - id: string (Rating UUID)
  - userID: string (Owner UUID)
  - star: int

Returns:
  - error: Validation errors, apperr.NotFound, or persistence errors
*/
func (service *Service) ChangeStar(context context.Context, id, userID string, star int) error {

	// Score range validation
	validator := &validate.Validator{}
	validator.Required(FieldID, id)
	validator.Range(FieldStar, star, MinStar, MaxStar)

	if err := validator.Err(); err != nil {
		return err
	}

	// Owner-scoped storage update
	return service.repo.Update(context, id, userID, star)
}

/*
Withdraw removes a rating owned by the user.

Returns:
  - error: apperr.NotFound when no owned rating matches
*/
func (service *Service) Withdraw(context context.Context, id, userID string) error {
	return service.repo.Delete(context, id, userID)
}

/*
ForManga returns the current user's rating for a slug-identified manga.

Returns:
  - *Rating: The user's rating
  - error: apperr.NotFound when the user has not rated the manga
*/
func (service *Service) ForManga(context context.Context, userID, slug string) (*Rating, error) {
	return service.repo.FindByUserAndMangaSlug(context, userID, slug)
}

// # Aggregated Read Models

/*
AverageRating returns the mean star value for a manga, zero when unrated.
*/
func (service *Service) AverageRating(context context.Context, mangaID string) (float64, error) {
	return service.repo.Average(context, mangaID)
}

/*
MangaHistogram returns the ten-bucket rating distribution for a manga.

Description: Fetches grouped counts from storage and shapes them with the
pure [BuildHistogram] helper, so an unrated manga still yields ten buckets
with zero percents.
*/
func (service *Service) MangaHistogram(context context.Context, mangaID string) (*Histogram, error) {

	// Grouped counts retrieval
	counts, err := service.repo.CountsByStar(context, mangaID)
	if err != nil {
		return nil, err
	}

	// Pure bucket shaping
	return BuildHistogram(counts), nil
}
