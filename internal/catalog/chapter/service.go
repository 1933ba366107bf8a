// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package chapter

import (
	"context"

	"github.com/valeXeich/Mangalib/internal/platform/validate"
	"github.com/valeXeich/Mangalib/pkg/slice"
	"github.com/valeXeich/Mangalib/pkg/slug"
	"github.com/valeXeich/Mangalib/pkg/uuidv7"
)

// LatestFeedSize bounds the cross-catalogue recency feed.
const LatestFeedSize = 50

// # Service Layer

// Service orchestrates the business logic for chapters and pages.
type Service struct {
	repo  Repository
	cache LatestCache
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repo Repository, cache LatestCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// # Reading

/*
ListByManga returns a slug-identified manga's chapters in reading order.
*/
func (service *Service) ListByManga(context context.Context, mangaSlug string) ([]*Chapter, error) {
	return service.repo.ListByManga(context, mangaSlug)
}

/*
Get returns one chapter with its volume number, page count and manga
summary.
*/
func (service *Service) Get(context context.Context, id string) (*Chapter, error) {
	return service.repo.FindByID(context, id)
}

/*
ListPages returns a chapter's pages ordered by page number.
*/
func (service *Service) ListPages(context context.Context, chapterID string) ([]*Page, error) {
	return service.repo.ListPages(context, chapterID)
}

/*
Latest returns the most recent releases across the catalogue,
cache-aside with a short TTL.
*/
func (service *Service) Latest(context context.Context) ([]*Chapter, error) {

	// Cache hit path
	if chapters, ok := service.cache.Get(context); ok {
		return chapters, nil
	}

	// Source-of-truth fallback plus repopulation
	chapters, err := service.repo.Latest(context, LatestFeedSize)
	if err != nil {
		return nil, err
	}
	service.cache.Set(context, chapters)

	return chapters, nil
}

// # Authoring

// CreateInput carries everything needed to release a chapter.
type CreateInput struct {
	MangaID       string
	VolumeNumber  int
	ChapterNumber string
	Title         *string
	Slug          string
}

/*
Create releases a new chapter.

Description: Validates the numbering, derives a per-manga slug from the
chapter number when none was supplied, and persists chapter plus volume
resolution atomically.

Returns:
  - *Chapter: The persisted chapter
  - error: Validation errors, apperr.NotFound for an unknown manga
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Chapter, error) {

	// Numbering validation
	validator := &validate.Validator{}
	validator.Required(FieldMangaID, input.MangaID)
	validator.Required(FieldChapterNumber, input.ChapterNumber)
	validator.Positive(FieldVolumeNumber, input.VolumeNumber)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Slug derivation, unique per manga
	if input.Slug == "" {
		input.Slug = slug.From("chapter " + input.ChapterNumber)
	}

	// Identity generation and persistence
	chapter := &Chapter{
		ID:            uuidv7.New(),
		MangaID:       input.MangaID,
		ChapterNumber: input.ChapterNumber,
		Title:         input.Title,
		Slug:          input.Slug,
	}

	if err := service.repo.Create(context, chapter, input.VolumeNumber); err != nil {
		return nil, err
	}

	return chapter, nil
}

// PageInput carries one page of an upload batch.
type PageInput struct {
	PageNumber int    `json:"page_number"`
	ImageURL   string `json:"image_url"`
}

/*
AddPages appends an ordered batch of pages to a chapter.

Returns:
  - error: Validation errors, apperr.NotFound for an unknown chapter
*/
func (service *Service) AddPages(context context.Context, chapterID string, inputs []PageInput) error {

	// Batch validation
	validator := &validate.Validator{}
	validator.Custom(FieldPages, len(inputs) == 0, "At least one page is required")
	for _, input := range inputs {
		validator.Positive(FieldPages, input.PageNumber)
		validator.URL(FieldImageURL, input.ImageURL)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	// Identity generation
	pages := slice.Map(inputs, func(input PageInput) *Page {
		return &Page{
			ID:         uuidv7.New(),
			PageNumber: input.PageNumber,
			ImageURL:   input.ImageURL,
		}
	})

	return service.repo.AddPages(context, chapterID, pages)
}
