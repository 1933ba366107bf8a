// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package reference

import (
	"context"

	"github.com/valeXeich/Mangalib/internal/catalog/manga"
	"github.com/valeXeich/Mangalib/internal/platform/validate"
)

// MaxNameLength bounds every master data display name.
const MaxNameLength = 100

// # Service Layer

// Service orchestrates the business logic for catalogue master data.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Reading

/*
Genres returns the genre vocabulary with per-genre manga totals.

Parameters:
  - limit: int (0 returns everything, positive keeps the most used)
*/
func (service *Service) Genres(context context.Context, limit int) ([]*Genre, error) {

	validator := &validate.Validator{}
	validator.Custom(FieldLimit, limit < 0, "Limit must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.ListGenres(context, limit)
}

/*
Tags returns the full tag vocabulary.
*/
func (service *Service) Tags(context context.Context) ([]*Tag, error) {
	return service.repo.ListTags(context)
}

/*
Contributors returns one creator registry.
*/
func (service *Service) Contributors(context context.Context, kind ContributorKind) ([]*Contributor, error) {
	return service.repo.ListContributors(context, kind)
}

/*
Publishers returns the publisher registry.
*/
func (service *Service) Publishers(context context.Context) ([]*Publisher, error) {
	return service.repo.ListPublishers(context)
}

/*
MangaTypes returns the fixed set of publication origins accepted by the
catalogue. Served from code, no storage round trip.
*/
func (service *Service) MangaTypes() []manga.Type {
	return manga.AllTypes()
}

// # Authoring

// validateName applies the shared master data naming rules.
func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	validator.MaxLen(FieldName, name, MaxNameLength)
	return validator.Err()
}

/*
CreateGenre adds a genre to the vocabulary. Admin only at the HTTP layer.
*/
func (service *Service) CreateGenre(context context.Context, name string) (*Genre, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return service.repo.CreateGenre(context, name)
}

/*
CreateTag adds a tag to the vocabulary.
*/
func (service *Service) CreateTag(context context.Context, name string) (*Tag, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return service.repo.CreateTag(context, name)
}

/*
CreateContributor registers a creator in the given registry.
*/
func (service *Service) CreateContributor(context context.Context, kind ContributorKind, name string) (*Contributor, error) {

	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	validator.MaxLen(FieldName, name, MaxNameLength)
	validator.Custom("kind", kind != KindAuthor && kind != KindPainter, "Unknown contributor kind")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.CreateContributor(context, kind, name)
}

/*
CreatePublisher registers a publisher.
*/
func (service *Service) CreatePublisher(context context.Context, name string) (*Publisher, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return service.repo.CreatePublisher(context, name)
}
