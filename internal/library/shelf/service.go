// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package shelf

import (
	"context"

	"github.com/valeXeich/Mangalib/internal/platform/validate"
	"github.com/valeXeich/Mangalib/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the business logic for user shelves.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Shelf Management

/*
Put places a slug-identified manga on one of the user's shelves.

Description: Validates the shelf name against the five fixed lists,
generates the entry identity, and persists idempotently.

Parameters:
  - context: context.Context
  - userID: string (Actor UUID)
  - slug: string (Target manga slug)
  - listType: ListType
  - comment: *string (Optional personal note)

Returns:
  - error: Validation errors, apperr.NotFound for unknown slugs
*/
func (service *Service) Put(context context.Context, userID, slug string, listType ListType, comment *string) error {

	// Shelf name and target validation
	validator := &validate.Validator{}
	validator.Required(FieldSlug, slug)
	validator.Custom(FieldListType, !listType.IsValid(), "Unknown list type")

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity generation and persistence
	entry := &Entry{
		ID:       uuidv7.New(),
		UserID:   userID,
		ListType: listType,
		Comment:  comment,
	}

	return service.repo.Put(context, entry, slug)
}

/*
Remove takes a slug-identified manga off one of the user's shelves.

Returns:
  - error: Validation errors, apperr.NotFound when no entry matches
*/
func (service *Service) Remove(context context.Context, userID, slug string, listType ListType) error {

	// Shelf name validation
	validator := &validate.Validator{}
	validator.Required(FieldSlug, slug)
	validator.Custom(FieldListType, !listType.IsValid(), "Unknown list type")

	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Remove(context, userID, slug, listType)
}

/*
ListForUser returns all shelf entries of the user, newest first.
*/
func (service *Service) ListForUser(context context.Context, userID string) ([]*Entry, error) {
	return service.repo.ListForUser(context, userID)
}

// # Aggregated Read Models

/*
MangaDistribution returns the community shelf split for a manga.

Description: Fetches grouped counts from storage and shapes them with the
pure [BuildDistribution] helper, so a manga nobody shelved still yields
all five categories with zero percents.
*/
func (service *Service) MangaDistribution(context context.Context, mangaID string) (*Distribution, error) {

	// Grouped counts retrieval
	counts, err := service.repo.CountsByType(context, mangaID)
	if err != nil {
		return nil, err
	}

	// Pure category shaping
	return BuildDistribution(counts), nil
}
