// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package chapter provides the PostgreSQL implementation for chapter data
access.

Page counts ride along as scalar sub-queries and volume numbers come
from a single join, so reading-order listings stay one round-trip.
*/
package chapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
	"github.com/valeXeich/Mangalib/internal/platform/dberr"
	"github.com/valeXeich/Mangalib/pkg/uuidv7"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
ListByManga returns a manga's chapters in reading order.

Description: Resolves the slug through a manga join, pulls the volume
number from catalog.volume and counts pages in a scalar sub-query.
An existence check distinguishes "no chapters yet" from "no such manga".

Returns:
  - []*Chapter: Chapters, oldest first within ascending volumes
  - error: apperr.NotFound for an unknown manga slug
*/
func (repository *repository) ListByManga(context context.Context, mangaSlug string) ([]*Chapter, error) {

	// Slug existence verification
	var mangaID string
	lookup := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.CatalogManga.ID, schema.CatalogManga.Table, schema.CatalogManga.Slug)
	if err := repository.pool.QueryRow(context, lookup, mangaSlug).Scan(&mangaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, fmt.Errorf("postgres: failed to resolve manga slug: %w", err)
	}

	// Reading-order retrieval. Release order mirrors numbering, so the
	// creation timestamp keeps "10.5" style chapters sorted without a
	// text-to-number cast.
	query := fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			v.%s,
			(SELECT COUNT(*) FROM %s p WHERE p.%s = c.%s) AS totalpages
		FROM %s c
		JOIN %s v ON v.%s = c.%s
		WHERE c.%s = $1
		ORDER BY v.%s ASC, c.%s ASC
	`,
		schema.CatalogChapter.ID, schema.CatalogChapter.VolumeID, schema.CatalogChapter.MangaID,
		schema.CatalogChapter.ChapterNumber, schema.CatalogChapter.Title, schema.CatalogChapter.Slug,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogVolume.VolumeNumber,
		schema.CatalogPage.Table, schema.CatalogPage.ChapterID, schema.CatalogChapter.ID,
		schema.CatalogChapter.Table,
		schema.CatalogVolume.Table, schema.CatalogVolume.ID, schema.CatalogChapter.VolumeID,
		schema.CatalogChapter.MangaID,
		schema.CatalogVolume.VolumeNumber, schema.CatalogChapter.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	// Hydration loop
	var chapters []*Chapter
	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID, &chapter.VolumeID, &chapter.MangaID,
			&chapter.ChapterNumber, &chapter.Title, &chapter.Slug,
			&chapter.CreatedAt, &chapter.UpdatedAt,
			&chapter.VolumeNumber, &chapter.TotalPages,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, nil
}

/*
FindByID returns one chapter with its volume number, page count and
manga summary.

Returns:
  - *Chapter: The hydrated chapter
  - error: apperr.NotFound for an unknown ID
*/
func (repository *repository) FindByID(context context.Context, id string) (*Chapter, error) {

	// Joined single-row lookup
	query := fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			v.%s,
			(SELECT COUNT(*) FROM %s p WHERE p.%s = c.%s) AS totalpages,
			m.%s, m.%s, m.%s, m.%s
		FROM %s c
		JOIN %s v ON v.%s = c.%s
		JOIN %s m ON m.%s = c.%s
		WHERE c.%s = $1
	`,
		schema.CatalogChapter.ID, schema.CatalogChapter.VolumeID, schema.CatalogChapter.MangaID,
		schema.CatalogChapter.ChapterNumber, schema.CatalogChapter.Title, schema.CatalogChapter.Slug,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogVolume.VolumeNumber,
		schema.CatalogPage.Table, schema.CatalogPage.ChapterID, schema.CatalogChapter.ID,
		schema.CatalogManga.Title, schema.CatalogManga.Subtitle, schema.CatalogManga.Slug, schema.CatalogManga.PosterURL,
		schema.CatalogChapter.Table,
		schema.CatalogVolume.Table, schema.CatalogVolume.ID, schema.CatalogChapter.VolumeID,
		schema.CatalogManga.Table, schema.CatalogManga.ID, schema.CatalogChapter.MangaID,
		schema.CatalogChapter.ID,
	)

	// Execute and scan
	chapter := &Chapter{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&chapter.ID, &chapter.VolumeID, &chapter.MangaID,
		&chapter.ChapterNumber, &chapter.Title, &chapter.Slug,
		&chapter.CreatedAt, &chapter.UpdatedAt,
		&chapter.VolumeNumber, &chapter.TotalPages,
		&chapter.MangaTitle, &chapter.MangaSubtitle, &chapter.MangaSlug, &chapter.MangaPoster,
	)

	// Missing row mapping
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter: %w", err)
	}

	return chapter, nil
}

/*
ListPages returns a chapter's pages ordered by page number.

Returns:
  - []*Page: The ordered pages
  - error: apperr.NotFound for an unknown chapter
*/
func (repository *repository) ListPages(context context.Context, chapterID string) ([]*Page, error) {

	// Chapter existence verification
	var exists bool
	check := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.CatalogChapter.Table, schema.CatalogChapter.ID)
	if err := repository.pool.QueryRow(context, check, chapterID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("postgres: failed to verify chapter: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Chapter")
	}

	// Ordered page retrieval
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CatalogPage.ID, schema.CatalogPage.ChapterID, schema.CatalogPage.MangaID,
		schema.CatalogPage.PageNumber, schema.CatalogPage.ImageURL,
		schema.CatalogPage.Table,
		schema.CatalogPage.ChapterID,
		schema.CatalogPage.PageNumber,
	)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}
	defer rows.Close()

	// Hydration loop
	var pages []*Page
	for rows.Next() {
		var page Page
		err := rows.Scan(&page.ID, &page.ChapterID, &page.MangaID, &page.PageNumber, &page.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan page: %w", err)
		}
		pages = append(pages, &page)
	}

	return pages, nil
}

/*
Latest returns the most recently released chapters across the catalogue.

Description: Each row carries the manga summary so the feed renders
without follow-up lookups.
*/
func (repository *repository) Latest(context context.Context, limit int) ([]*Chapter, error) {

	// Cross-catalogue recency feed
	query := fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			v.%s,
			(SELECT COUNT(*) FROM %s p WHERE p.%s = c.%s) AS totalpages,
			m.%s, m.%s, m.%s, m.%s
		FROM %s c
		JOIN %s v ON v.%s = c.%s
		JOIN %s m ON m.%s = c.%s
		ORDER BY c.%s DESC
		LIMIT $1
	`,
		schema.CatalogChapter.ID, schema.CatalogChapter.VolumeID, schema.CatalogChapter.MangaID,
		schema.CatalogChapter.ChapterNumber, schema.CatalogChapter.Title, schema.CatalogChapter.Slug,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogVolume.VolumeNumber,
		schema.CatalogPage.Table, schema.CatalogPage.ChapterID, schema.CatalogChapter.ID,
		schema.CatalogManga.Title, schema.CatalogManga.Subtitle, schema.CatalogManga.Slug, schema.CatalogManga.PosterURL,
		schema.CatalogChapter.Table,
		schema.CatalogVolume.Table, schema.CatalogVolume.ID, schema.CatalogChapter.VolumeID,
		schema.CatalogManga.Table, schema.CatalogManga.ID, schema.CatalogChapter.MangaID,
		schema.CatalogChapter.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list latest chapters: %w", err)
	}
	defer rows.Close()

	// Hydration loop
	var chapters []*Chapter
	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID, &chapter.VolumeID, &chapter.MangaID,
			&chapter.ChapterNumber, &chapter.Title, &chapter.Slug,
			&chapter.CreatedAt, &chapter.UpdatedAt,
			&chapter.VolumeNumber, &chapter.TotalPages,
			&chapter.MangaTitle, &chapter.MangaSubtitle, &chapter.MangaSlug, &chapter.MangaPoster,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan latest chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	return chapters, nil
}

/*
Create persists a chapter, resolving its volume inside one transaction.

Description: The volume is addressed by (manga, number) and created on
first use via an upsert, so authoring a chapter never requires a
separate volume call.

Returns:
  - error: apperr.NotFound for an unknown manga, apperr.Conflict for a
    duplicate chapter slug
*/
func (repository *repository) Create(context context.Context, chapter *Chapter, volumeNumber int) error {

	// Transaction scope
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin chapter transaction: %w", err)
	}
	defer tx.Rollback(context)

	// Volume resolution by (manga, number), creating on first use
	volumeQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.CatalogVolume.Table,
		schema.CatalogVolume.ID, schema.CatalogVolume.MangaID, schema.CatalogVolume.VolumeNumber,
		schema.CatalogVolume.MangaID, schema.CatalogVolume.VolumeNumber,
		schema.CatalogVolume.VolumeNumber, schema.CatalogVolume.VolumeNumber,
		schema.CatalogVolume.ID,
	)
	err = tx.QueryRow(context, volumeQuery, uuidv7.New(), chapter.MangaID, volumeNumber).
		Scan(&chapter.VolumeID)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Manga")
		}
		return fmt.Errorf("postgres: failed to resolve volume: %w", err)
	}
	chapter.VolumeNumber = volumeNumber

	// Chapter insertion
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.ID, schema.CatalogChapter.VolumeID, schema.CatalogChapter.MangaID,
		schema.CatalogChapter.ChapterNumber, schema.CatalogChapter.Title, schema.CatalogChapter.Slug,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
	)
	err = tx.QueryRow(context, insertQuery,
		chapter.ID, chapter.VolumeID, chapter.MangaID,
		chapter.ChapterNumber, chapter.Title, chapter.Slug,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Chapter with this slug already exists")
		}
		return dberr.Wrap(err, "create_chapter")
	}

	return tx.Commit(context)
}

/*
AddPages appends pages to a chapter in one batch.

Returns:
  - error: apperr.NotFound for an unknown chapter
*/
func (repository *repository) AddPages(context context.Context, chapterID string, pages []*Page) error {

	// Chapter resolution for the denormalized manga reference
	var mangaID string
	lookup := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.CatalogChapter.MangaID, schema.CatalogChapter.Table, schema.CatalogChapter.ID)
	if err := repository.pool.QueryRow(context, lookup, chapterID).Scan(&mangaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Chapter")
		}
		return fmt.Errorf("postgres: failed to resolve chapter: %w", err)
	}

	// Batched page insertion
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.CatalogPage.Table,
		schema.CatalogPage.ID, schema.CatalogPage.ChapterID, schema.CatalogPage.MangaID,
		schema.CatalogPage.PageNumber, schema.CatalogPage.ImageURL,
	)
	batch := &pgx.Batch{}
	for _, page := range pages {
		page.ChapterID = chapterID
		page.MangaID = mangaID
		batch.Queue(insertQuery, page.ID, page.ChapterID, page.MangaID, page.PageNumber, page.ImageURL)
	}

	response := repository.pool.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert pages: %w", err)
	}

	return nil
}
