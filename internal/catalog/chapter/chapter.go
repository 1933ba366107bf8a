// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package chapter covers the reading side of the catalogue: volumes,
chapters and their pages.

Chapter numbers are stored as text so interstitial releases ("10.5",
"extra") survive without schema churn. Each chapter carries a
denormalized manga reference to keep per-title queries join-free.
*/
package chapter

import "time"

// # Core Entities

// Chapter represents one released chapter of a manga.
type Chapter struct {
	ID            string  `json:"id"`
	VolumeID      string  `json:"volume_id"`
	MangaID       string  `json:"manga_id"`
	ChapterNumber string  `json:"chapter_number"`
	Title         *string `json:"title,omitempty"`
	Slug          string  `json:"slug"`

	// VolumeNumber and TotalPages are joined in on read.
	VolumeNumber int `json:"volume_number"`
	TotalPages   int `json:"total_pages"`

	// Denormalized manga summary, populated by the latest-chapters feed.
	MangaTitle    string  `json:"manga_title,omitempty"`
	MangaSubtitle *string `json:"manga_subtitle,omitempty"`
	MangaSlug     string  `json:"manga_slug,omitempty"`
	MangaPoster   *string `json:"manga_poster,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is a single image of a chapter, ordered by PageNumber.
type Page struct {
	ID         string `json:"id"`
	ChapterID  string `json:"chapter_id"`
	MangaID    string `json:"manga_id"`
	PageNumber int    `json:"page_number"`
	ImageURL   string `json:"image_url"`
}

// # Field Identifiers

// Field name constants used in validation error details.
const (
	FieldChapterNumber = "chapter_number"
	FieldVolumeNumber  = "volume_number"
	FieldMangaID       = "manga_id"
	FieldImageURL      = "image_url"
	FieldPages         = "pages"
)
