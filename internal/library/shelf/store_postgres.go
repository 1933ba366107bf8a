// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package shelf provides the PostgreSQL implementation for shelf data access.

It resolves manga slugs inside the SQL statements themselves (sub-query
resolution) so handlers can work with public URLs without an extra
round-trip, and relies on 'ON CONFLICT DO NOTHING' for idempotent adds.
*/
package shelf

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed shelf store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Put places a manga on one of the user's shelves.

Description: Resolves the slug to a manga ID inside the INSERT via a
sub-query. The UNIQUE (userid, mangaid, listtype) constraint plus
'ON CONFLICT DO NOTHING' makes repeated adds idempotent. A NULL sub-query
result (unknown slug) surfaces as a not-null violation, which we convert
into a clean 404 by pre-checking affected rows through RETURNING.

Parameters:
  - context: context.Context
  - entry: *Entry
  - slug: string

Returns:
  - error: apperr.NotFound when the slug matches no manga
*/
func (repository *repository) Put(context context.Context, entry *Entry, slug string) error {

	// Slug-resolved idempotent insertion
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, mangaid, listtype, comment)
		SELECT $1, $2, m.id, $3, $4
		FROM %s m
		WHERE m.slug = $5
		ON CONFLICT (userid, mangaid, listtype) DO NOTHING
	`, schema.LibraryUserList.Table, schema.CatalogManga.Table)

	// Command execution
	result, err := repository.pool.Exec(context, query,
		entry.ID, entry.UserID, entry.ListType, entry.Comment, slug,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to put shelf entry: %w", err)
	}

	// Zero rows with no conflict means the slug resolved to nothing.
	// A conflict also reports zero rows, so confirm the manga exists
	// before deciding between idempotent success and 404.
	if result.RowsAffected() == 0 {
		var exists bool
		check := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1)`, schema.CatalogManga.Table)
		if err := repository.pool.QueryRow(context, check, slug).Scan(&exists); err != nil {
			return fmt.Errorf("postgres: failed to verify manga slug: %w", err)
		}
		if !exists {
			return apperr.NotFound("Manga")
		}
	}

	return nil
}

/*
Remove takes a manga off one of the user's shelves.

Returns:
  - error: apperr.NotFound when no matching entry exists
*/
func (repository *repository) Remove(context context.Context, userID, slug string, listType ListType) error {

	// Slug-resolved scoped delete
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE userid = $1
		  AND listtype = $2
		  AND mangaid = (SELECT id FROM %s WHERE slug = $3)
	`, schema.LibraryUserList.Table, schema.CatalogManga.Table)

	// Command execution
	result, err := repository.pool.Exec(context, query, userID, listType, slug)
	if err != nil {
		return fmt.Errorf("postgres: failed to remove shelf entry: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Shelf entry")
	}

	return nil
}

/*
ListForUser returns all of a user's shelf entries with manga summaries.

Description: Joins catalog.manga once so library pages render without
N+1 lookups. Ordered newest first.
*/
func (repository *repository) ListForUser(context context.Context, userID string) ([]*Entry, error) {

	// Joined retrieval query
	query := fmt.Sprintf(`
		SELECT
			e.id, e.userid, e.mangaid, e.listtype, e.comment, e.createdat,
			m.title, m.slug, m.posterurl
		FROM %s e
		JOIN %s m ON m.id = e.mangaid
		WHERE e.userid = $1
		ORDER BY e.createdat DESC
	`, schema.LibraryUserList.Table, schema.CatalogManga.Table)

	// Execute retrieval
	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list shelf entries: %w", err)
	}
	defer rows.Close()

	// Hydration loop
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.MangaID, &entry.ListType,
			&entry.Comment, &entry.CreatedAt,
			&entry.MangaTitle, &entry.MangaSlug, &entry.MangaPoster,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan shelf entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

/*
CountsByType returns grouped per-shelf entry counts for a manga.
*/
func (repository *repository) CountsByType(context context.Context, mangaID string) (map[ListType]int, error) {

	// Grouped aggregation query
	query := fmt.Sprintf(`
		SELECT listtype, COUNT(*)
		FROM %s
		WHERE mangaid = $1
		GROUP BY listtype
	`, schema.LibraryUserList.Table)

	// Execute retrieval
	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to count shelf entries: %w", err)
	}
	defer rows.Close()

	// Hydrate the sparse count map
	counts := make(map[ListType]int)
	for rows.Next() {
		var listType ListType
		var count int
		if err := rows.Scan(&listType, &count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan shelf count: %w", err)
		}
		counts[listType] = count
	}

	return counts, nil
}
