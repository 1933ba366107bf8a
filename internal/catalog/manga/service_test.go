// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package manga_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/catalog/manga"
	"github.com/valeXeich/Mangalib/internal/library/shelf"
	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/social/rating"
	"github.com/valeXeich/Mangalib/pkg/pagination"
)

// fakeRepository is an in-memory [manga.Repository] for service tests.
type fakeRepository struct {
	bySlug       map[string]*manga.Manga
	created      []*manga.Manga
	updated      []*manga.Manga
	viewBumps    map[string]int64
	popularCalls int
	popular      []*manga.Manga
	related      []*manga.Manga
	listTotal    int
	listResult   []*manga.Manga
	lastFilter   manga.Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		bySlug:    map[string]*manga.Manga{},
		viewBumps: map[string]int64{},
	}
}

func (f *fakeRepository) List(_ context.Context, filter manga.Filter, limit, offset int) ([]*manga.Manga, int, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*manga.Manga, error) {
	if m, ok := f.bySlug[slug]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("Manga")
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*manga.Manga, error) {
	for _, m := range f.bySlug {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, apperr.NotFound("Manga")
}

func (f *fakeRepository) Create(_ context.Context, m *manga.Manga) error {
	f.created = append(f.created, m)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, m *manga.Manga) error {
	f.updated = append(f.updated, m)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error { return nil }

func (f *fakeRepository) IncrementViewCount(_ context.Context, id string, delta int64) error {
	f.viewBumps[id] += delta
	return nil
}

func (f *fakeRepository) ListRelated(_ context.Context, mangaID string) ([]*manga.Manga, error) {
	return f.related, nil
}

func (f *fakeRepository) Popular(_ context.Context, limit int) ([]*manga.Manga, error) {
	f.popularCalls++
	return f.popular, nil
}

func (f *fakeRepository) Newest(_ context.Context, limit int) ([]*manga.Manga, error) {
	return nil, nil
}

func (f *fakeRepository) PopularWithChapters(_ context.Context, limit int) ([]*manga.Manga, error) {
	return nil, nil
}

// fakeCache is an in-memory [manga.DiscoveryCache].
type fakeCache struct {
	entries map[string][]*manga.Manga
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]*manga.Manga{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]*manga.Manga, bool) {
	mangas, ok := f.entries[key]
	return mangas, ok
}

func (f *fakeCache) Set(_ context.Context, key string, mangas []*manga.Manga) {
	f.entries[key] = mangas
	f.sets++
}

// fakeRatings satisfies [manga.RatingProvider].
type fakeRatings struct{ histogram *rating.Histogram }

func (f *fakeRatings) MangaHistogram(_ context.Context, mangaID string) (*rating.Histogram, error) {
	return f.histogram, nil
}

// fakeShelves satisfies [manga.ShelfProvider].
type fakeShelves struct{ distribution *shelf.Distribution }

func (f *fakeShelves) MangaDistribution(_ context.Context, mangaID string) (*shelf.Distribution, error) {
	return f.distribution, nil
}

func newService(repo *fakeRepository, cache *fakeCache) *manga.Service {
	return manga.NewService(repo, cache,
		&fakeRatings{histogram: rating.BuildHistogram(nil)},
		&fakeShelves{distribution: shelf.BuildDistribution(nil)},
	)
}

/*
TestService_List_Meta verifies pagination metadata assembly.
*/
func TestService_List_Meta(t *testing.T) {
	repo := newFakeRepository()
	repo.listTotal = 45
	repo.listResult = []*manga.Manga{{ID: "m1"}, {ID: "m2"}}
	service := newService(repo, newFakeCache())

	mangas, meta, err := service.List(context.Background(), manga.Filter{Sort: manga.SortViews},
		pagination.Params{Page: 2, Limit: 20})
	require.NoError(t, err)

	assert.Len(t, mangas, 2)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, manga.SortViews, repo.lastFilter.Sort)
}

/*
TestService_GetDetail composes aggregates and bumps the view counter.
*/
func TestService_GetDetail(t *testing.T) {
	repo := newFakeRepository()
	repo.bySlug["berserk"] = &manga.Manga{ID: "m1", Title: "Berserk", Slug: "berserk"}
	repo.related = []*manga.Manga{{ID: "m2"}}
	service := newService(repo, newFakeCache())

	detail, err := service.GetDetail(context.Background(), "berserk")
	require.NoError(t, err)

	assert.Equal(t, "Berserk", detail.Title)
	assert.Equal(t, int64(1), repo.viewBumps["m1"])
	require.NotNil(t, detail.RatingHistogram)
	assert.Len(t, detail.RatingHistogram.Ratings, 10)
	require.NotNil(t, detail.ShelfDistribution)
	assert.Len(t, detail.ShelfDistribution.UserLists, 5)
	assert.Len(t, detail.Related, 1)
}

/*
TestManga_UnratedSerializesZeroRating verifies an unrated title reports
an average of 0 in its JSON representation rather than null.
*/
func TestManga_UnratedSerializesZeroRating(t *testing.T) {
	payload, err := json.Marshal(&manga.Manga{ID: "m1", Title: "Berserk"})
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"avg_rating":0`)
}

/*
TestService_GetDetail_NotFound propagates the missing-slug error.
*/
func TestService_GetDetail_NotFound(t *testing.T) {
	service := newService(newFakeRepository(), newFakeCache())

	_, err := service.GetDetail(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Create_Validation verifies metadata rules and slug derivation.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		input    manga.CreateInput
		wantErr  bool
		wantSlug string
	}{
		{
			name: "valid_with_derived_slug",
			input: manga.CreateInput{
				Title: "One Punch Man", Type: manga.TypeManga,
				Status: manga.StatusOngoing, AgeRating: manga.AgeRatingAbsent,
			},
			wantSlug: "one-punch-man",
		},
		{
			name: "explicit_slug_wins",
			input: manga.CreateInput{
				Title: "One Punch Man", Slug: "opm", Type: manga.TypeManhwa,
				Status: manga.StatusReleased, AgeRating: manga.AgeRating16,
			},
			wantSlug: "opm",
		},
		{
			name: "missing_title",
			input: manga.CreateInput{
				Type: manga.TypeManga, Status: manga.StatusOngoing,
				AgeRating: manga.AgeRatingAbsent,
			},
			wantErr: true,
		},
		{
			name: "unknown_type",
			input: manga.CreateInput{
				Title: "X", Type: manga.Type("webtoon"),
				Status: manga.StatusOngoing, AgeRating: manga.AgeRatingAbsent,
			},
			wantErr: true,
		},
		{
			name: "unknown_status",
			input: manga.CreateInput{
				Title: "X", Type: manga.TypeManga,
				Status: manga.Status("hiatus"), AgeRating: manga.AgeRatingAbsent,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newService(repo, newFakeCache())

			created, err := service.Create(context.Background(), tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				assert.Empty(t, repo.created)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, tt.wantSlug, created.Slug)
			}
		})
	}
}

/*
TestService_Update_SlugStability verifies the slug survives metadata
updates: a title change alone never touches it, only an explicit slug
replaces it.
*/
func TestService_Update_SlugStability(t *testing.T) {
	tests := []struct {
		name     string
		input    manga.CreateInput
		wantSlug string
	}{
		{
			name:     "title only change keeps the slug",
			input:    manga.CreateInput{Title: "Berserk Deluxe"},
			wantSlug: "",
		},
		{
			name:     "explicit slug is honored",
			input:    manga.CreateInput{Title: "Berserk Deluxe", Slug: "berserk-deluxe"},
			wantSlug: "berserk-deluxe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.bySlug["berserk"] = &manga.Manga{ID: "m1", Title: "Berserk", Slug: "berserk"}
			service := newService(repo, newFakeCache())

			err := service.Update(context.Background(), "berserk", tt.input)
			require.NoError(t, err)

			require.Len(t, repo.updated, 1)
			assert.Equal(t, tt.wantSlug, repo.updated[0].Slug)
		})
	}
}

/*
TestService_Popular_CacheAside verifies the hit and miss paths.
*/
func TestService_Popular_CacheAside(t *testing.T) {
	repo := newFakeRepository()
	repo.popular = []*manga.Manga{{ID: "m1"}}
	cache := newFakeCache()
	service := newService(repo, cache)
	ctx := context.Background()

	// Miss loads from SQL and repopulates
	mangas, err := service.Popular(ctx)
	require.NoError(t, err)
	assert.Len(t, mangas, 1)
	assert.Equal(t, 1, repo.popularCalls)
	assert.Equal(t, 1, cache.sets)

	// Hit never touches the repository again
	_, err = service.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.popularCalls)
}
