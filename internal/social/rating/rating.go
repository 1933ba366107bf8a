// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package rating manages per-user star scores for manga titles.

It covers the full rating lifecycle (create, change, withdraw) and the
aggregated read models derived from it: average score and the ten-bucket
histogram shown on manga detail pages.

Core Responsibility:

  - Integrity: One rating per (user, manga) pair, enforced by the database.
  - Aggregation: Average and histogram math kept in pure, unit-tested helpers.
*/
package rating

import (
	"math"
	"time"
)

// # Constants

const (
	// MinStar is the lowest score accepted from clients.
	MinStar = 1
	// MaxStar is the highest score accepted from clients.
	MaxStar = 10
)

// # Core Entities

// Rating represents a single user's score for a manga.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MangaID   string    `json:"manga_id"`
	Star      int       `json:"star"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Aggregated Read Models

// Bucket is one histogram slot for a specific star value.
type Bucket struct {
	Star    int     `json:"star"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Histogram is the aggregated rating distribution for a manga.
//
// It always contains exactly ten buckets in fixed order 1..10, even when
// the manga has no ratings at all.
type Histogram struct {
	TotalRated int      `json:"total_rated"`
	Ratings    []Bucket `json:"ratings"`
}

// # Pure Aggregation Helpers

// BuildHistogram converts grouped per-star counts into a full [Histogram].
//
// # Behavior
//
//   - Emits exactly [MaxStar] buckets in ascending star order.
//   - Star values outside [MinStar, MaxStar] are ignored.
//   - When the total is zero, every percent is zero (no division).
func BuildHistogram(countsByStar map[int]int) *Histogram {

	// Sum only the in-range buckets
	total := 0
	for star := MinStar; star <= MaxStar; star++ {
		total += countsByStar[star]
	}

	// Fixed-order bucket fill
	buckets := make([]Bucket, 0, MaxStar)
	for star := MinStar; star <= MaxStar; star++ {
		count := countsByStar[star]
		buckets = append(buckets, Bucket{
			Star:    star,
			Total:   count,
			Percent: percentOf(count, total),
		})
	}

	return &Histogram{
		TotalRated: total,
		Ratings:    buckets,
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

// Global field names for validation and request mapping.
const (
	FieldID      = "id"
	FieldMangaID = "manga_id"
	FieldStar    = "star"
)
