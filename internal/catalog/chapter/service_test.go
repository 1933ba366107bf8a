// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package chapter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/catalog/chapter"
	"github.com/valeXeich/Mangalib/internal/platform/apperr"
)

// fakeRepository is an in-memory [chapter.Repository] for service tests.
type fakeRepository struct {
	created     []*chapter.Chapter
	pages       [][]*chapter.Page
	latest      []*chapter.Chapter
	latestCalls int
}

func (f *fakeRepository) ListByManga(_ context.Context, mangaSlug string) ([]*chapter.Chapter, error) {
	return nil, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	return nil, apperr.NotFound("Chapter")
}

func (f *fakeRepository) ListPages(_ context.Context, chapterID string) ([]*chapter.Page, error) {
	return nil, nil
}

func (f *fakeRepository) Latest(_ context.Context, limit int) ([]*chapter.Chapter, error) {
	f.latestCalls++
	return f.latest, nil
}

func (f *fakeRepository) Create(_ context.Context, c *chapter.Chapter, volumeNumber int) error {
	c.VolumeNumber = volumeNumber
	f.created = append(f.created, c)
	return nil
}

func (f *fakeRepository) AddPages(_ context.Context, chapterID string, pages []*chapter.Page) error {
	f.pages = append(f.pages, pages)
	return nil
}

// fakeCache is an in-memory [chapter.LatestCache].
type fakeCache struct {
	feed   []*chapter.Chapter
	cached bool
}

func (f *fakeCache) Get(_ context.Context) ([]*chapter.Chapter, bool) {
	return f.feed, f.cached
}

func (f *fakeCache) Set(_ context.Context, chapters []*chapter.Chapter) {
	f.feed = chapters
	f.cached = true
}

/*
TestService_Create_Validation verifies numbering and slug derivation.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    chapter.CreateInput
		wantErr  bool
		wantSlug string
	}{
		{
			name:     "whole_number",
			input:    chapter.CreateInput{MangaID: "m1", VolumeNumber: 1, ChapterNumber: "12"},
			wantSlug: "chapter-12",
		},
		{
			name:     "interstitial_number",
			input:    chapter.CreateInput{MangaID: "m1", VolumeNumber: 2, ChapterNumber: "10.5"},
			wantSlug: "chapter-10-5",
		},
		{
			name:    "missing_number",
			input:   chapter.CreateInput{MangaID: "m1", VolumeNumber: 1},
			wantErr: true,
		},
		{
			name:    "zero_volume",
			input:   chapter.CreateInput{MangaID: "m1", VolumeNumber: 0, ChapterNumber: "1"},
			wantErr: true,
		},
		{
			name:    "missing_manga",
			input:   chapter.CreateInput{VolumeNumber: 1, ChapterNumber: "1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := chapter.NewService(repo, &fakeCache{})

			created, err := service.Create(context.Background(), tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				assert.Empty(t, repo.created)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, tt.wantSlug, created.Slug)
				assert.Equal(t, tt.input.VolumeNumber, created.VolumeNumber)
			}
		})
	}
}

/*
TestService_AddPages_Validation verifies batch rules.
*/
func TestService_AddPages_Validation(t *testing.T) {
	repo := &fakeRepository{}
	service := chapter.NewService(repo, &fakeCache{})
	ctx := context.Background()

	// Empty batch is rejected
	err := service.AddPages(ctx, "c1", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Malformed image URL is rejected
	err = service.AddPages(ctx, "c1", []chapter.PageInput{
		{PageNumber: 1, ImageURL: "not-a-url"},
	})
	require.Error(t, err)

	// Valid batch gets identities assigned
	err = service.AddPages(ctx, "c1", []chapter.PageInput{
		{PageNumber: 1, ImageURL: "https://cdn.mangalib.app/p/1.jpg"},
		{PageNumber: 2, ImageURL: "https://cdn.mangalib.app/p/2.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, repo.pages, 1)
	assert.Len(t, repo.pages[0], 2)
	assert.NotEmpty(t, repo.pages[0][0].ID)
}

/*
TestService_Latest_CacheAside verifies the hit and miss paths.
*/
func TestService_Latest_CacheAside(t *testing.T) {
	repo := &fakeRepository{latest: []*chapter.Chapter{{ID: "c1"}}}
	cache := &fakeCache{}
	service := chapter.NewService(repo, cache)
	ctx := context.Background()

	// Miss loads from SQL and repopulates
	chapters, err := service.Latest(ctx)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)
	assert.Equal(t, 1, repo.latestCalls)
	assert.True(t, cache.cached)

	// Hit never touches the repository again
	_, err = service.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.latestCalls)
}
