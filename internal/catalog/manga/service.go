// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package manga

import (
	"context"
	"log/slog"

	"github.com/valeXeich/Mangalib/internal/library/shelf"
	"github.com/valeXeich/Mangalib/internal/platform/ctxutil"
	"github.com/valeXeich/Mangalib/internal/platform/validate"
	"github.com/valeXeich/Mangalib/internal/social/rating"
	"github.com/valeXeich/Mangalib/pkg/pagination"
	"github.com/valeXeich/Mangalib/pkg/pointer"
	"github.com/valeXeich/Mangalib/pkg/slug"
	"github.com/valeXeich/Mangalib/pkg/uuidv7"
)

// Discovery list sizes.
const (
	PopularListSize             = 10
	NewestListSize              = 10
	PopularWithChaptersListSize = 6
)

// # Cross-Domain Providers

// RatingProvider supplies the aggregated rating read model. Satisfied
// by the rating domain's service.
type RatingProvider interface {
	MangaHistogram(context context.Context, mangaID string) (*rating.Histogram, error)
}

// ShelfProvider supplies the aggregated shelf read model. Satisfied by
// the shelf domain's service.
type ShelfProvider interface {
	MangaDistribution(context context.Context, mangaID string) (*shelf.Distribution, error)
}

// # Read Models

// Detail is the composed manga page read model: the hydrated title plus
// the aggregates owned by the social and library domains.
type Detail struct {
	*Manga
	RatingHistogram   *rating.Histogram   `json:"rating_histogram"`
	ShelfDistribution *shelf.Distribution `json:"shelf_distribution"`
	Related           []*Manga            `json:"related"`
}

// # Service Layer

// Service orchestrates the business logic for the manga catalogue.
type Service struct {
	repo    Repository
	cache   DiscoveryCache
	ratings RatingProvider
	shelves ShelfProvider
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repo Repository, cache DiscoveryCache, ratings RatingProvider, shelves ShelfProvider) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		ratings: ratings,
		shelves: shelves,
	}
}

// # Discovery

/*
List returns a filtered, sorted, paginated catalogue page.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params (Pre-clamped page and limit)

Returns:
  - []*Manga: The page of titles
  - pagination.Meta: Page metadata with the filtered total
  - error: Database execution errors
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Manga, pagination.Meta, error) {

	mangas, total, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return mangas, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetDetail returns the composed detail read model for a slug and bumps
the title's view counter.

Description: The title itself carries the SQL-computed statistics
(average, counts); the histogram and shelf distribution come from their
owning domains; related titles are resolved in both link directions.
The view-count bump is best-effort and never fails the read.

Returns:
  - *Detail: The composed page model
  - error: apperr.NotFound for an unknown slug
*/
func (service *Service) GetDetail(context context.Context, mangaSlug string) (*Detail, error) {

	// Core title retrieval
	manga, err := service.repo.FindBySlug(context, mangaSlug)
	if err != nil {
		return nil, err
	}

	// Best-effort popularity bump
	if err := service.repo.IncrementViewCount(context, manga.ID, 1); err != nil {
		ctxutil.GetLogger(context).Warn("view count bump failed",
			slog.String("manga_id", manga.ID), slog.String("error", err.Error()))
	}

	// Aggregate composition from the owning domains
	histogram, err := service.ratings.MangaHistogram(context, manga.ID)
	if err != nil {
		return nil, err
	}
	distribution, err := service.shelves.MangaDistribution(context, manga.ID)
	if err != nil {
		return nil, err
	}
	related, err := service.repo.ListRelated(context, manga.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Manga:             manga,
		RatingHistogram:   histogram,
		ShelfDistribution: distribution,
		Related:           related,
	}, nil
}

/*
GetBySlug returns the hydrated title without touching the view counter.
Used by the short-info endpoint and internal lookups.
*/
func (service *Service) GetBySlug(context context.Context, mangaSlug string) (*Manga, error) {
	return service.repo.FindBySlug(context, mangaSlug)
}

// # Cached Discovery Lists

// cachedList implements the cache-aside read shared by the three
// discovery endpoints.
func (service *Service) cachedList(context context.Context, key string, load func() ([]*Manga, error)) ([]*Manga, error) {

	// Cache hit path
	if mangas, ok := service.cache.Get(context, key); ok {
		return mangas, nil
	}

	// Source-of-truth fallback plus repopulation
	mangas, err := load()
	if err != nil {
		return nil, err
	}
	service.cache.Set(context, key, mangas)

	return mangas, nil
}

// Popular returns the most viewed titles, cache-aside.
func (service *Service) Popular(context context.Context) ([]*Manga, error) {
	return service.cachedList(context, CacheKeyPopular, func() ([]*Manga, error) {
		return service.repo.Popular(context, PopularListSize)
	})
}

// Newest returns the latest additions, cache-aside.
func (service *Service) Newest(context context.Context) ([]*Manga, error) {
	return service.cachedList(context, CacheKeyNewest, func() ([]*Manga, error) {
		return service.repo.Newest(context, NewestListSize)
	})
}

// PopularWithChapters returns the most viewed titles that have
// chapters, cache-aside.
func (service *Service) PopularWithChapters(context context.Context) ([]*Manga, error) {
	return service.cachedList(context, CacheKeyPopularWithChapters, func() ([]*Manga, error) {
		return service.repo.PopularWithChapters(context, PopularWithChaptersListSize)
	})
}

// # Authoring

// CreateInput carries the full metadata for a new title.
type CreateInput struct {
	Title         string
	Subtitle      *string
	Slug          string
	Description   *string
	Type          Type
	AgeRating     AgeRating
	Status        Status
	ReleaseYear   *int
	PosterURL     *string
	BackgroundURL *string
	AuthorID      *int
	PainterID     *int
	GenreIDs      []int
	TagIDs        []int
	PublisherIDs  []int
	RelatedIDs    []string
}

// validateMetadata applies the shared enum and bounds rules. On the
// update path empty enums mean "unchanged" and are skipped.
func validateMetadata(validator *validate.Validator, input CreateInput, partial bool) {
	if !partial || input.Type != "" {
		validator.Custom(FieldType, !input.Type.IsValid(), "Unknown manga type")
	}
	if !partial || input.Status != "" {
		validator.Custom(FieldStatus, !input.Status.IsValid(), "Unknown status")
	}
	if !partial || input.AgeRating != "" {
		validator.Custom(FieldAgeRating, !input.AgeRating.IsValid(), "Unknown age rating")
	}
	if input.ReleaseYear != nil {
		validator.Positive(FieldReleaseYear, *input.ReleaseYear)
	}
	if input.PosterURL != nil {
		validator.URL(FieldPosterURL, *input.PosterURL)
	}
}

/*
Create registers a new catalogue title.

Description: Validates the metadata, derives a slug from the title when
none was supplied, generates the identity and persists the title with
all of its associations atomically.

Returns:
  - *Manga: The persisted title
  - error: Validation errors, apperr.Conflict for a duplicate slug
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Manga, error) {

	// Metadata validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validateMetadata(validator, input, false)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Slug derivation
	if input.Slug == "" {
		input.Slug = slug.From(input.Title)
	}

	// Identity generation and persistence
	manga := &Manga{
		ID:            uuidv7.New(),
		Title:         input.Title,
		Subtitle:      input.Subtitle,
		Slug:          input.Slug,
		Description:   input.Description,
		Type:          input.Type,
		AgeRating:     input.AgeRating,
		Status:        input.Status,
		ReleaseYear:   input.ReleaseYear,
		PosterURL:     input.PosterURL,
		BackgroundURL: input.BackgroundURL,
		AuthorID:      input.AuthorID,
		PainterID:     input.PainterID,
		GenreIDs:      input.GenreIDs,
		TagIDs:        input.TagIDs,
		PublisherIDs:  input.PublisherIDs,
		RelatedIDs:    input.RelatedIDs,
		Genres:        []NamedRef{},
	}

	if err := service.repo.Create(context, manga); err != nil {
		return nil, err
	}

	return manga, nil
}

/*
Update applies a partial metadata update to a slug-identified title.

Description: Resolves the slug to its ID, validates only the fields that
are present, and hands the patch entity to the store. Nil association
slices leave the existing links untouched.

Returns:
  - error: Validation errors, apperr.NotFound for an unknown slug
*/
func (service *Service) Update(context context.Context, mangaSlug string, input CreateInput) error {

	// Partial metadata validation
	validator := &validate.Validator{}
	validateMetadata(validator, input, true)
	if err := validator.Err(); err != nil {
		return err
	}

	// Slug resolution
	existing, err := service.repo.FindBySlug(context, mangaSlug)
	if err != nil {
		return err
	}

	// Patch entity assembly. The slug is stable once assigned: a title
	// change never regenerates it, only an explicitly supplied slug
	// replaces it.
	patch := &Manga{
		ID:            existing.ID,
		Title:         input.Title,
		Subtitle:      input.Subtitle,
		Slug:          input.Slug,
		Description:   input.Description,
		Type:          input.Type,
		AgeRating:     input.AgeRating,
		Status:        input.Status,
		ReleaseYear:   input.ReleaseYear,
		PosterURL:     input.PosterURL,
		BackgroundURL: input.BackgroundURL,
		AuthorID:      input.AuthorID,
		PainterID:     input.PainterID,
		GenreIDs:      input.GenreIDs,
		TagIDs:        input.TagIDs,
		PublisherIDs:  input.PublisherIDs,
		RelatedIDs:    input.RelatedIDs,
	}

	return service.repo.Update(context, patch)
}

/*
Delete removes a slug-identified title permanently.

Returns:
  - error: apperr.NotFound for an unknown slug
*/
func (service *Service) Delete(context context.Context, mangaSlug string) error {

	// Slug resolution
	existing, err := service.repo.FindBySlug(context, mangaSlug)
	if err != nil {
		return err
	}

	return service.repo.Delete(context, existing.ID)
}

// # Short Info

// ShortInfo is the compact card model used by hover previews.
type ShortInfo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Type         Type      `json:"type"`
	Status       Status    `json:"status"`
	PosterURL    string    `json:"poster_url,omitempty"`
	AvgRating    float64   `json:"avg_rating"`
	ChapterCount int       `json:"chapter_count"`
	Genres       []NamedRef `json:"genres"`
}

/*
GetShortInfo returns the compact card model for a slug, without bumping
the view counter.
*/
func (service *Service) GetShortInfo(context context.Context, mangaSlug string) (*ShortInfo, error) {

	manga, err := service.repo.FindBySlug(context, mangaSlug)
	if err != nil {
		return nil, err
	}

	return &ShortInfo{
		ID:           manga.ID,
		Title:        manga.Title,
		Slug:         manga.Slug,
		Type:         manga.Type,
		Status:       manga.Status,
		PosterURL:    pointer.Val(manga.PosterURL),
		AvgRating:    manga.AvgRating,
		ChapterCount: manga.ChapterCount,
		Genres:       manga.Genres,
	}, nil
}
