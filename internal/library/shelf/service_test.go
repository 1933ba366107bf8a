// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package shelf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valeXeich/Mangalib/internal/library/shelf"
	"github.com/valeXeich/Mangalib/internal/platform/apperr"
)

// fakeRepository is an in-memory [shelf.Repository] for service tests.
type fakeRepository struct {
	putEntries []*shelf.Entry
	counts     map[shelf.ListType]int
}

func (f *fakeRepository) Put(_ context.Context, entry *shelf.Entry, slug string) error {
	f.putEntries = append(f.putEntries, entry)
	return nil
}

func (f *fakeRepository) Remove(_ context.Context, userID, slug string, listType shelf.ListType) error {
	return nil
}

func (f *fakeRepository) ListForUser(_ context.Context, userID string) ([]*shelf.Entry, error) {
	return nil, nil
}

func (f *fakeRepository) CountsByType(_ context.Context, mangaID string) (map[shelf.ListType]int, error) {
	return f.counts, nil
}

/*
TestService_Put_Validation verifies shelf name and slug rules.
*/
func TestService_Put_Validation(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		listType shelf.ListType
		wantErr  bool
	}{
		{"reading", "berserk", shelf.ListReading, false},
		{"favorite", "berserk", shelf.ListFavorite, false},
		{"unknown_shelf", "berserk", shelf.ListType("wishlist"), true},
		{"missing_slug", "", shelf.ListPlanned, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := shelf.NewService(repo)

			err := service.Put(context.Background(), "user-1", tt.slug, tt.listType, nil)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				assert.Empty(t, repo.putEntries)
			} else {
				require.NoError(t, err)
				require.Len(t, repo.putEntries, 1)
				assert.NotEmpty(t, repo.putEntries[0].ID)
				assert.Equal(t, tt.listType, repo.putEntries[0].ListType)
			}
		})
	}
}

/*
TestService_MangaDistribution verifies fixed categories and the
category-sum total.
*/
func TestService_MangaDistribution(t *testing.T) {
	repo := &fakeRepository{counts: map[shelf.ListType]int{
		shelf.ListReading:  6,
		shelf.ListFavorite: 2,
	}}
	service := shelf.NewService(repo)

	distribution, err := service.MangaDistribution(context.Background(), "manga-1")
	require.NoError(t, err)

	// Total is the sum across categories, not distinct users
	assert.Equal(t, 8, distribution.TotalUsers)
	require.Len(t, distribution.UserLists, 5)

	// Categories come in fixed order with absent shelves at zero
	assert.Equal(t, shelf.ListReading, distribution.UserLists[0].Status)
	assert.Equal(t, 6, distribution.UserLists[0].Total)
	assert.InDelta(t, 75.0, distribution.UserLists[0].Percent, 0.001)

	assert.Equal(t, shelf.ListPlanned, distribution.UserLists[1].Status)
	assert.Zero(t, distribution.UserLists[1].Total)

	assert.Equal(t, shelf.ListFavorite, distribution.UserLists[4].Status)
	assert.InDelta(t, 25.0, distribution.UserLists[4].Percent, 0.001)
}

/*
TestService_MangaDistribution_Empty verifies the zero-division guard.
*/
func TestService_MangaDistribution_Empty(t *testing.T) {
	repo := &fakeRepository{counts: map[shelf.ListType]int{}}
	service := shelf.NewService(repo)

	distribution, err := service.MangaDistribution(context.Background(), "manga-1")
	require.NoError(t, err)

	assert.Zero(t, distribution.TotalUsers)
	require.Len(t, distribution.UserLists, 5)

	for _, category := range distribution.UserLists {
		assert.Zero(t, category.Total)
		assert.Zero(t, category.Percent)
	}
}
