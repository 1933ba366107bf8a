// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package rating_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/social/rating"
)

// fakeRepository is an in-memory [rating.Repository] for service tests.
type fakeRepository struct {
	created   []*rating.Rating
	counts    map[int]int
	average   float64
	createErr error
}

func (f *fakeRepository) Create(_ context.Context, r *rating.Rating) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, id, userID string, star int) error {
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id, userID string) error {
	return nil
}

func (f *fakeRepository) FindByUserAndMangaSlug(_ context.Context, userID, slug string) (*rating.Rating, error) {
	return nil, apperr.NotFound("Rating")
}

func (f *fakeRepository) CountsByStar(_ context.Context, mangaID string) (map[int]int, error) {
	return f.counts, nil
}

func (f *fakeRepository) Average(_ context.Context, mangaID string) (float64, error) {
	return f.average, nil
}

/*
TestService_Rate_Validation verifies score range and mandatory field rules.
*/
func TestService_Rate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mangaID string
		star    int
		wantErr bool
	}{
		{"valid_low", "manga-1", 1, false},
		{"valid_high", "manga-1", 10, false},
		{"zero_star", "manga-1", 0, true},
		{"above_range", "manga-1", 11, true},
		{"missing_manga", "", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := rating.NewService(repo)

			result, err := service.Rate(context.Background(), "user-1", tt.mangaID, tt.star)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				assert.Empty(t, repo.created)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, tt.star, result.Star)
				assert.Len(t, repo.created, 1)
			}
		})
	}
}

/*
TestService_Rate_Duplicate verifies that a store conflict is surfaced untouched.
*/
func TestService_Rate_Duplicate(t *testing.T) {
	repo := &fakeRepository{createErr: apperr.Conflict("You have already rated this manga")}
	service := rating.NewService(repo)

	_, err := service.Rate(context.Background(), "user-1", "manga-1", 8)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 409, ae.HTTPStatus)
}

/*
TestService_MangaHistogram verifies bucket shaping and percent math.

Ratings 10, 10, 8 must yield 66.67% on star 10 and 33.33% on star 8,
with all other buckets present at zero.
*/
func TestService_MangaHistogram(t *testing.T) {
	repo := &fakeRepository{counts: map[int]int{10: 2, 8: 1}}
	service := rating.NewService(repo)

	histogram, err := service.MangaHistogram(context.Background(), "manga-1")
	require.NoError(t, err)

	assert.Equal(t, 3, histogram.TotalRated)
	require.Len(t, histogram.Ratings, 10)

	// Buckets are in fixed ascending order 1..10
	for i, bucket := range histogram.Ratings {
		assert.Equal(t, i+1, bucket.Star)
	}

	assert.Equal(t, 1, histogram.Ratings[7].Total) // star 8
	assert.InDelta(t, 33.33, histogram.Ratings[7].Percent, 0.001)
	assert.Equal(t, 2, histogram.Ratings[9].Total) // star 10
	assert.InDelta(t, 66.67, histogram.Ratings[9].Percent, 0.001)
}

/*
TestService_MangaHistogram_Empty verifies the zero-division guard.
*/
func TestService_MangaHistogram_Empty(t *testing.T) {
	repo := &fakeRepository{counts: map[int]int{}}
	service := rating.NewService(repo)

	histogram, err := service.MangaHistogram(context.Background(), "manga-1")
	require.NoError(t, err)

	assert.Equal(t, 0, histogram.TotalRated)
	require.Len(t, histogram.Ratings, 10)

	for _, bucket := range histogram.Ratings {
		assert.Zero(t, bucket.Total)
		assert.Zero(t, bucket.Percent)
	}
}

/*
TestBuildHistogram_IgnoresOutOfRange verifies that stray star values
outside 1..10 never leak into the distribution.
*/
func TestBuildHistogram_IgnoresOutOfRange(t *testing.T) {
	histogram := rating.BuildHistogram(map[int]int{0: 5, 11: 3, 7: 2})

	assert.Equal(t, 2, histogram.TotalRated)
	assert.Equal(t, 2, histogram.Ratings[6].Total) // star 7
	assert.InDelta(t, 100.0, histogram.Ratings[6].Percent, 0.001)
}

/*
TestService_AverageRating verifies the zero default for unrated manga.
*/
func TestService_AverageRating(t *testing.T) {
	repo := &fakeRepository{average: 0}
	service := rating.NewService(repo)

	average, err := service.AverageRating(context.Background(), "manga-1")
	require.NoError(t, err)
	assert.Zero(t, average)
}
