// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package reference_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/catalog/manga"
	"github.com/valeXeich/Mangalib/internal/catalog/reference"
	"github.com/valeXeich/Mangalib/internal/platform/apperr"
)

// fakeRepository is an in-memory [reference.Repository] for service tests.
type fakeRepository struct {
	genres       []*reference.Genre
	lastLimit    int
	contributors map[reference.ContributorKind][]string
}

func (f *fakeRepository) ListGenres(_ context.Context, limit int) ([]*reference.Genre, error) {
	f.lastLimit = limit
	return f.genres, nil
}

func (f *fakeRepository) CreateGenre(_ context.Context, name string) (*reference.Genre, error) {
	genre := &reference.Genre{ID: len(f.genres) + 1, Name: name}
	f.genres = append(f.genres, genre)
	return genre, nil
}

func (f *fakeRepository) ListTags(_ context.Context) ([]*reference.Tag, error) {
	return []*reference.Tag{}, nil
}

func (f *fakeRepository) CreateTag(_ context.Context, name string) (*reference.Tag, error) {
	return &reference.Tag{ID: 1, Name: name}, nil
}

func (f *fakeRepository) ListContributors(_ context.Context, kind reference.ContributorKind) ([]*reference.Contributor, error) {
	return nil, nil
}

func (f *fakeRepository) CreateContributor(_ context.Context, kind reference.ContributorKind, name string) (*reference.Contributor, error) {
	if f.contributors == nil {
		f.contributors = map[reference.ContributorKind][]string{}
	}
	f.contributors[kind] = append(f.contributors[kind], name)
	return &reference.Contributor{ID: 1, Name: name}, nil
}

func (f *fakeRepository) ListPublishers(_ context.Context) ([]*reference.Publisher, error) {
	return nil, nil
}

func (f *fakeRepository) CreatePublisher(_ context.Context, name string) (*reference.Publisher, error) {
	return &reference.Publisher{ID: 1, Name: name}, nil
}

/*
TestService_Genres verifies the limit contract.
*/
func TestService_Genres(t *testing.T) {
	repo := &fakeRepository{genres: []*reference.Genre{{ID: 1, Name: "Action", MangaCount: 12}}}
	service := reference.NewService(repo)
	ctx := context.Background()

	// Zero limit means the full vocabulary
	genres, err := service.Genres(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, genres, 1)
	assert.Equal(t, 0, repo.lastLimit)

	// Positive limit is forwarded
	_, err = service.Genres(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.lastLimit)

	// Negative limit is rejected
	_, err = service.Genres(ctx, -1)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_CreateVocabulary verifies the shared naming rules.
*/
func TestService_CreateVocabulary(t *testing.T) {
	repo := &fakeRepository{}
	service := reference.NewService(repo)
	ctx := context.Background()

	// Valid names pass through each registry
	genre, err := service.CreateGenre(ctx, "Seinen")
	require.NoError(t, err)
	assert.Equal(t, "Seinen", genre.Name)

	_, err = service.CreateContributor(ctx, reference.KindPainter, "Takehiko Inoue")
	require.NoError(t, err)
	assert.Equal(t, []string{"Takehiko Inoue"}, repo.contributors[reference.KindPainter])

	// Empty and oversized names are rejected
	_, err = service.CreateTag(ctx, "")
	require.Error(t, err)

	_, err = service.CreatePublisher(ctx, strings.Repeat("x", reference.MaxNameLength+1))
	require.Error(t, err)

	// Unknown registries are rejected
	_, err = service.CreateContributor(ctx, "translator", "Anonymous")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_MangaTypes verifies the fixed origin set.
*/
func TestService_MangaTypes(t *testing.T) {
	service := reference.NewService(&fakeRepository{})

	types := service.MangaTypes()

	assert.Equal(t, []manga.Type{manga.TypeManga, manga.TypeManhwa, manga.TypeManhua}, types)
}
