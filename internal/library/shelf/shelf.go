// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package shelf manages per-user reading lists for manga titles.

Every user sorts titles into five fixed shelves (reading, planned,
dropped, readed, favorite). The package also derives the community
distribution shown on manga detail pages: how the readership of a title
splits across the shelves.

Core Responsibility:

  - Library: Add/remove titles on a user's shelves.
  - Aggregation: Shelf distribution math kept in pure, unit-tested helpers.
*/
package shelf

import (
	"math"
	"time"
)

// # Domain Enums

// ListType identifies one of the five fixed user shelves.
type ListType string

const (
	ListReading  ListType = "reading"
	ListPlanned  ListType = "planned"
	ListDropped  ListType = "dropped"
	ListReaded   ListType = "readed"
	ListFavorite ListType = "favorite"
)

// AllListTypes returns the five shelves in their fixed display order.
func AllListTypes() []ListType {
	return []ListType{ListReading, ListPlanned, ListDropped, ListReaded, ListFavorite}
}

// IsValid reports whether t is a recognised [ListType] value.
func (t ListType) IsValid() bool {
	switch t {
	case ListReading, ListPlanned, ListDropped, ListReaded, ListFavorite:
		return true
	}
	return false
}

// # Core Entities

// Entry represents one manga placed on one of a user's shelves.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MangaID   string    `json:"manga_id"`
	ListType  ListType  `json:"list_type"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized manga summary for library views
	MangaTitle  string `json:"manga_title,omitempty"`
	MangaSlug   string `json:"manga_slug,omitempty"`
	MangaPoster string `json:"manga_poster,omitempty"`
}

// # Aggregated Read Models

// CategoryCount is one slot of the shelf distribution for a manga.
type CategoryCount struct {
	Status  ListType `json:"status"`
	Total   int      `json:"total"`
	Percent float64  `json:"percent"`
}

// Distribution is the aggregated shelf split for a manga.
//
// TotalUsers is the sum over categories: a user who placed the manga on
// several shelves is counted once per shelf.
type Distribution struct {
	TotalUsers int             `json:"total_users"`
	UserLists  []CategoryCount `json:"user_list"`
}

// # Pure Aggregation Helpers

// BuildDistribution converts grouped per-shelf counts into a [Distribution].
//
// # Behavior
//
//   - Emits all five categories in fixed order, absent shelves at zero.
//   - When the total is zero, every percent is zero (no division).
func BuildDistribution(countsByType map[ListType]int) *Distribution {

	// Category sum: counts entries, not distinct users
	total := 0
	for _, listType := range AllListTypes() {
		total += countsByType[listType]
	}

	// Fixed-order category fill
	categories := make([]CategoryCount, 0, len(AllListTypes()))
	for _, listType := range AllListTypes() {
		count := countsByType[listType]
		categories = append(categories, CategoryCount{
			Status:  listType,
			Total:   count,
			Percent: percentOf(count, total),
		})
	}

	return &Distribution{
		TotalUsers: total,
		UserLists:  categories,
	}
}

// percentOf returns count/total as a percentage rounded to two decimals.
// A zero total yields zero, never a division error.
func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}

// # Field Identifiers

const (
	FieldListType = "list_type"
	FieldSlug     = "slug"
)
