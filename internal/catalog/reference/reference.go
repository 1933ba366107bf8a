// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package reference manages the master data of the Mangalib catalogue.

It handles the lifecycle and retrieval of lookup entities that are shared
across manga records, keeping categorization consistent and enabling the
filter surfaces of the discovery endpoints.

# Core Responsibility

  - Taxonomy: Manages [Genre] and [Tag] vocabularies.
  - Authorship: Catalogues writing and drawing [Contributor] entities.
  - Publishing: Maintains the [Publisher] registry.
*/
package reference

// # Taxonomy Domain

// Genre is a coarse categorization bucket. MangaCount carries the number
// of titles filed under the genre for catalogue landing pages.
type Genre struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	MangaCount int    `json:"manga_count"`
}

// Tag is a fine-grained categorization attribute applied to a manga.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// # Contributor Domain

// ContributorKind discriminates the two creator registries. Writers and
// illustrators are tracked separately as some creators only do one role.
type ContributorKind string

const (
	KindAuthor  ContributorKind = "author"
	KindPainter ContributorKind = "painter"
)

// Contributor is a creator entry in one of the kind registries.
type Contributor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Publisher is a scanlation or publishing group credited on a manga.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// # Field Identifiers

// Field names for validation in the reference domain.
const (
	FieldName  = "name"
	FieldLimit = "limit"
)
