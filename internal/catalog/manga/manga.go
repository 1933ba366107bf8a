// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package manga implements the catalogue's core domain: manga metadata,
discovery listings and the composed detail read model.

Listing queries compute per-title statistics (average rating, rating
count, chapter count, latest chapter timestamp) in a derived table so
filters and sorts can address them like regular columns. The detail
endpoint additionally composes the rating histogram and shelf
distribution from their owning domains.
*/
package manga

import "time"

// # Enumerations

// Type classifies a title by its origin tradition.
type Type string

// The supported publication types.
const (
	TypeManga  Type = "manga"
	TypeManhwa Type = "manhwa"
	TypeManhua Type = "manhua"
)

// AllTypes returns every publication type in display order.
func AllTypes() []Type {
	return []Type{TypeManga, TypeManhwa, TypeManhua}
}

// IsValid reports whether the type is one of the supported values.
func (t Type) IsValid() bool {
	switch t {
	case TypeManga, TypeManhwa, TypeManhua:
		return true
	}
	return false
}

// Status describes where a title stands in its publication run.
type Status string

// The supported publication statuses.
const (
	StatusOngoing   Status = "ongoing"
	StatusPlanned   Status = "planned"
	StatusReleased  Status = "released"
	StatusSuspended Status = "suspended"
)

// IsValid reports whether the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusPlanned, StatusReleased, StatusSuspended:
		return true
	}
	return false
}

// AgeRating marks the audience restriction of a title.
type AgeRating string

// The supported age ratings. Absent means no restriction.
const (
	AgeRatingAbsent AgeRating = "absent"
	AgeRating16     AgeRating = "16+"
	AgeRating18     AgeRating = "18+"
)

// IsValid reports whether the age rating is one of the supported values.
func (a AgeRating) IsValid() bool {
	switch a {
	case AgeRatingAbsent, AgeRating16, AgeRating18:
		return true
	}
	return false
}

// # Core Entities

// NamedRef is a lightweight reference to a catalogue lookup row
// (genre, tag or publisher).
type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Manga represents a single catalogue title.
//
// The statistics block (AvgRating through LatestChapterAt) is computed
// on read from the rating and chapter tables, never stored.
type Manga struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subtitle      *string   `json:"subtitle,omitempty"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description,omitempty"`
	Type          Type      `json:"type"`
	AgeRating     AgeRating `json:"age_rating"`
	Status        Status    `json:"status"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	ViewCount     int64     `json:"view_count"`
	PosterURL     *string   `json:"poster_url,omitempty"`
	BackgroundURL *string   `json:"background_url,omitempty"`

	// Creator references with denormalized names for rendering.
	AuthorID    *int    `json:"author_id,omitempty"`
	AuthorName  *string `json:"author_name,omitempty"`
	PainterID   *int    `json:"painter_id,omitempty"`
	PainterName *string `json:"painter_name,omitempty"`

	// Hydrated lookup associations.
	Genres     []NamedRef `json:"genres"`
	Tags       []NamedRef `json:"tags,omitempty"`
	Publishers []NamedRef `json:"publishers,omitempty"`

	// Write-side association IDs, never serialized outward.
	GenreIDs     []int    `json:"-"`
	TagIDs       []int    `json:"-"`
	PublisherIDs []int    `json:"-"`
	RelatedIDs   []string `json:"-"`

	// Computed statistics. AvgRating is zero for unrated titles.
	AvgRating       float64    `json:"avg_rating"`
	RatingCount     int        `json:"rating_count"`
	ChapterCount    int        `json:"chapter_count"`
	LatestChapterAt *time.Time `json:"latest_chapter_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Discovery Filter

// Sort keys accepted by the listing endpoint.
const (
	SortRating        = "rating"
	SortCreated       = "created"
	SortLatestChapter = "latest_chapter"
	SortChapters      = "chapters"
	SortViews         = "views"
	SortRatings       = "ratings"
)

// Filter captures every combinable listing constraint.
//
// Range bounds are half-open on nil: a nil side means unconstrained.
// A nil or zero RatingMin keeps unrated titles in the result set.
type Filter struct {
	Query string

	Type      Type
	Status    Status
	AgeRating AgeRating

	GenreIDs []int
	TagIDs   []int

	ChapterMin *int
	ChapterMax *int
	YearMin    *int
	YearMax    *int
	RatingMin  *float64
	RatingMax  *float64

	Sort    string
	SortDir string
}

// # Field Identifiers

// Field name constants used in validation error details.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldAgeRating   = "age_rating"
	FieldReleaseYear = "release_year"
	FieldPosterURL   = "poster_url"
)
