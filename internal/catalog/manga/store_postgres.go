// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package manga provides the PostgreSQL implementation for the catalogue's
data access.

It leans on a few PostgreSQL features to keep discovery fast:
  - Derived Statistics: A sub-query table augments every title with its
    average rating, rating count, chapter count and latest chapter
    timestamp, so filters and sorts treat them as ordinary columns.
  - JSON Aggregation: Genres, tags and publishers arrive as JSON arrays
    built by sub-queries, avoiding N+1 lookups.
  - Window Functions: COUNT(*) OVER() delivers the total result count
    without a second query.
  - Transactions: Title writes and their junction syncs commit atomically.
*/
package manga

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
	"github.com/valeXeich/Mangalib/internal/platform/dberr"
	"github.com/valeXeich/Mangalib/pkg/pointer"
)

// # Shared Query Fragments

// statsSource is the derived table every read goes through: the raw
// catalog.manga columns plus the computed statistics columns. Built once
// at package init from the schema constants.
var statsSource = fmt.Sprintf(`
	SELECT
		m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s,
		m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s,
		(SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = m.%s) AS avgrating,
		(SELECT COUNT(*) FROM %s r WHERE r.%s = m.%s) AS ratingcount,
		(SELECT COUNT(*) FROM %s ch WHERE ch.%s = m.%s) AS chaptercount,
		(SELECT MAX(ch.%s) FROM %s ch WHERE ch.%s = m.%s) AS latestchapterat
	FROM %s m
`,
	schema.CatalogManga.ID,
	schema.CatalogManga.Title,
	schema.CatalogManga.Subtitle,
	schema.CatalogManga.Slug,
	schema.CatalogManga.Description,
	schema.CatalogManga.Type,
	schema.CatalogManga.AgeRating,
	schema.CatalogManga.Status,
	schema.CatalogManga.ReleaseYear,
	schema.CatalogManga.ViewCount,
	schema.CatalogManga.PosterURL,
	schema.CatalogManga.BackgroundURL,
	schema.CatalogManga.AuthorID,
	schema.CatalogManga.PainterID,
	schema.CatalogManga.CreatedAt,
	schema.CatalogManga.UpdatedAt,
	schema.SocialRating.Star, schema.SocialRating.Table, schema.SocialRating.MangaID, schema.CatalogManga.ID,
	schema.SocialRating.Table, schema.SocialRating.MangaID, schema.CatalogManga.ID,
	schema.CatalogChapter.Table, schema.CatalogChapter.MangaID, schema.CatalogManga.ID,
	schema.CatalogChapter.CreatedAt, schema.CatalogChapter.Table, schema.CatalogChapter.MangaID, schema.CatalogManga.ID,
	schema.CatalogManga.Table,
)

// genresAgg is the JSON sub-query that hydrates a title's genres.
var genresAgg = fmt.Sprintf(`
	COALESCE((
		SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s))
		FROM %s g
		JOIN %s mg ON g.%s = mg.%s
		WHERE mg.%s = s.%s
	), '[]')
`,
	schema.CatalogGenre.ID, schema.CatalogGenre.Name,
	schema.CatalogGenre.Table,
	schema.MangaGenre.Table, schema.CatalogGenre.ID, schema.MangaGenre.GenreID,
	schema.MangaGenre.MangaID, schema.CatalogManga.ID,
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed manga store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// scanListRow hydrates one listing row: the derived columns, the genre
// JSON and optionally the window-function total.
func scanListRow(rows pgx.Rows, withTotal bool) (*Manga, int, error) {
	manga := &Manga{}
	var genresJSON []byte
	var totalCount int

	// The average stays NULL in SQL so rating filters can tell unrated
	// apart; outward it collapses to zero.
	var avgRating *float64

	targets := []any{
		&manga.ID, &manga.Title, &manga.Subtitle, &manga.Slug,
		&manga.Description, &manga.Type, &manga.AgeRating, &manga.Status,
		&manga.ReleaseYear, &manga.ViewCount, &manga.PosterURL,
		&manga.BackgroundURL, &manga.AuthorID, &manga.PainterID,
		&manga.CreatedAt, &manga.UpdatedAt,
		&avgRating, &manga.RatingCount, &manga.ChapterCount,
		&manga.LatestChapterAt,
	}
	if withTotal {
		targets = append(targets, &totalCount)
	}
	targets = append(targets, &genresJSON)

	if err := rows.Scan(targets...); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to scan manga: %w", err)
	}
	manga.AvgRating = pointer.Val(avgRating)
	if err := json.Unmarshal(genresJSON, &manga.Genres); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
	}

	return manga, totalCount, nil
}

/*
List returns a filtered, paginated slice of titles plus the total count.

Description: Wraps the statistics derived table so every filter and sort
key, computed columns included, addresses a plain column. The WHERE
clause is assembled dynamically with positional arguments; COUNT(*)
OVER() rides along on each row to avoid a second count query.

Rating-range semantics: a nil or zero lower bound keeps unrated titles
(NULL average) in the result alongside the [lower, upper] matches; a
positive lower bound excludes them.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Manga: Hydrated titles with genres and statistics
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *repository) List(context context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT s.*, COUNT(*) OVER() AS total_count, %s AS genres
		FROM (%s) s
		WHERE 1=1
	`, genresAgg, statsSource))

	// Substring search over title and subtitle
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (s.%s ILIKE $%d OR s.%s ILIKE $%d)",
			schema.CatalogManga.Title, argID, schema.CatalogManga.Subtitle, argID,
		))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Exact enum filters
	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.CatalogManga.Type, argID))
		args = append(args, filter.Type)
		argID++
	}
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.CatalogManga.Status, argID))
		args = append(args, filter.Status)
		argID++
	}
	if filter.AgeRating != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s = $%d", schema.CatalogManga.AgeRating, argID))
		args = append(args, filter.AgeRating)
		argID++
	}

	// Genre membership (any-of overlap)
	if len(filter.GenreIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND $%d::int[] && (SELECT array_agg(%s) FROM %s WHERE %s = s.%s)",
			argID, schema.MangaGenre.GenreID, schema.MangaGenre.Table,
			schema.MangaGenre.MangaID, schema.CatalogManga.ID,
		))
		args = append(args, filter.GenreIDs)
		argID++
	}

	// Tag membership (any-of overlap)
	if len(filter.TagIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND $%d::int[] && (SELECT array_agg(%s) FROM %s WHERE %s = s.%s)",
			argID, schema.MangaTag.TagID, schema.MangaTag.Table,
			schema.MangaTag.MangaID, schema.CatalogManga.ID,
		))
		args = append(args, filter.TagIDs)
		argID++
	}

	// Chapter-count range on the computed column
	if filter.ChapterMin != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.chaptercount >= $%d", argID))
		args = append(args, *filter.ChapterMin)
		argID++
	}
	if filter.ChapterMax != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.chaptercount <= $%d", argID))
		args = append(args, *filter.ChapterMax)
		argID++
	}

	// Release-year range
	if filter.YearMin != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s >= $%d", schema.CatalogManga.ReleaseYear, argID))
		args = append(args, *filter.YearMin)
		argID++
	}
	if filter.YearMax != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.%s <= $%d", schema.CatalogManga.ReleaseYear, argID))
		args = append(args, *filter.YearMax)
		argID++
	}

	// Rating range on the computed average. A zero lower bound keeps
	// unrated titles in; a positive one scopes them out.
	ratingMin := 0.0
	if filter.RatingMin != nil {
		ratingMin = *filter.RatingMin
	}
	ratingMax := 10.0
	if filter.RatingMax != nil {
		ratingMax = *filter.RatingMax
	}
	switch {
	case ratingMin > 0:
		queryBuilder.WriteString(fmt.Sprintf(" AND s.avgrating >= $%d AND s.avgrating <= $%d", argID, argID+1))
		args = append(args, ratingMin, ratingMax)
		argID += 2
	case filter.RatingMax != nil:
		queryBuilder.WriteString(fmt.Sprintf(" AND (s.avgrating IS NULL OR s.avgrating <= $%d)", argID))
		args = append(args, ratingMax)
		argID++
	}

	// Sort key mapping onto derived columns
	sort := "s." + schema.CatalogManga.CreatedAt // default
	switch filter.Sort {
	case SortRating:
		sort = "s.avgrating"
	case SortCreated:
		sort = "s." + schema.CatalogManga.CreatedAt
	case SortLatestChapter:
		sort = "s.latestchapterat"
	case SortChapters:
		sort = "s.chaptercount"
	case SortViews:
		sort = "s." + schema.CatalogManga.ViewCount
	case SortRatings:
		sort = "s.ratingcount"
	}

	// Sort direction with a stable ID tiebreak
	sortDir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		sortDir = "ASC"
	}
	queryBuilder.WriteString(fmt.Sprintf(
		" ORDER BY %s %s NULLS LAST, s.%s DESC", sort, sortDir, schema.CatalogManga.ID,
	))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list manga: %w", err)
	}
	defer rows.Close()

	// Hydration loop
	var mangas []*Manga
	var totalCount int
	for rows.Next() {
		manga, total, err := scanListRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
		mangas = append(mangas, manga)
	}

	return mangas, totalCount, nil
}

// findBy retrieves one fully hydrated title by an indexed column.
//
// On top of the listing row it joins the creator names and aggregates
// tags and publishers, everything in a single round-trip.
func (repository *repository) findBy(context context.Context, column string, value any) (*Manga, error) {

	// Fully hydrated single-row query
	query := fmt.Sprintf(`
		SELECT
			s.*,
			a.%s AS authorname,
			p.%s AS paintername,
			%s AS genres,
			COALESCE((
				SELECT json_agg(json_build_object('id', t.%s, 'name', t.%s))
				FROM %s t
				JOIN %s mt ON t.%s = mt.%s
				WHERE mt.%s = s.%s
			), '[]') AS tags,
			COALESCE((
				SELECT json_agg(json_build_object('id', pb.%s, 'name', pb.%s))
				FROM %s pb
				JOIN %s mp ON pb.%s = mp.%s
				WHERE mp.%s = s.%s
			), '[]') AS publishers
		FROM (%s) s
		LEFT JOIN %s a ON a.%s = s.%s
		LEFT JOIN %s p ON p.%s = s.%s
		WHERE s.%s = $1
	`,
		schema.CatalogAuthor.Name,
		schema.CatalogPainter.Name,
		genresAgg,
		schema.CatalogTag.ID, schema.CatalogTag.Name,
		schema.CatalogTag.Table,
		schema.MangaTag.Table, schema.CatalogTag.ID, schema.MangaTag.TagID,
		schema.MangaTag.MangaID, schema.CatalogManga.ID,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.Name,
		schema.CatalogPublisher.Table,
		schema.MangaPublisher.Table, schema.CatalogPublisher.ID, schema.MangaPublisher.PublisherID,
		schema.MangaPublisher.MangaID, schema.CatalogManga.ID,
		statsSource,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogManga.AuthorID,
		schema.CatalogPainter.Table, schema.CatalogPainter.ID, schema.CatalogManga.PainterID,
		column,
	)

	// Execute and scan
	manga := &Manga{}
	var genresJSON, tagsJSON, publishersJSON []byte
	var avgRating *float64
	err := repository.pool.QueryRow(context, query, value).Scan(
		&manga.ID, &manga.Title, &manga.Subtitle, &manga.Slug,
		&manga.Description, &manga.Type, &manga.AgeRating, &manga.Status,
		&manga.ReleaseYear, &manga.ViewCount, &manga.PosterURL,
		&manga.BackgroundURL, &manga.AuthorID, &manga.PainterID,
		&manga.CreatedAt, &manga.UpdatedAt,
		&avgRating, &manga.RatingCount, &manga.ChapterCount,
		&manga.LatestChapterAt,
		&manga.AuthorName, &manga.PainterName,
		&genresJSON, &tagsJSON, &publishersJSON,
	)

	// Missing row mapping
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, fmt.Errorf("postgres: failed to find manga: %w", err)
	}
	manga.AvgRating = pointer.Val(avgRating)

	// Lookup association hydration
	if err := json.Unmarshal(genresJSON, &manga.Genres); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &manga.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(publishersJSON, &manga.Publishers); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal publishers: %w", err)
	}

	return manga, nil
}

// FindBySlug retrieves one fully hydrated title by its public slug.
func (repository *repository) FindBySlug(context context.Context, slug string) (*Manga, error) {
	return repository.findBy(context, schema.CatalogManga.Slug, slug)
}

// FindByID retrieves one fully hydrated title by its primary key.
func (repository *repository) FindByID(context context.Context, id string) (*Manga, error) {
	return repository.findBy(context, schema.CatalogManga.ID, id)
}

/*
Create persists a new title and its junction associations atomically.

Description: Runs the core insert and every junction sync (genres, tags,
publishers, related titles) inside one transaction, so a constraint
failure on any link leaves no partial title behind.

Returns:
  - error: apperr.Conflict for a duplicate slug
*/
func (repository *repository) Create(context context.Context, manga *Manga) error {

	// Transaction scope
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer tx.Rollback(context)

	// Core row insertion
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s, %s
	`,
		schema.CatalogManga.Table,
		schema.CatalogManga.ID, schema.CatalogManga.Title, schema.CatalogManga.Subtitle,
		schema.CatalogManga.Slug, schema.CatalogManga.Description, schema.CatalogManga.Type,
		schema.CatalogManga.AgeRating,
		schema.CatalogManga.Status, schema.CatalogManga.ReleaseYear, schema.CatalogManga.PosterURL,
		schema.CatalogManga.BackgroundURL, schema.CatalogManga.AuthorID, schema.CatalogManga.PainterID,
		schema.CatalogManga.CreatedAt, schema.CatalogManga.UpdatedAt,
	)
	err = tx.QueryRow(context, query,
		manga.ID, manga.Title, manga.Subtitle, manga.Slug, manga.Description,
		manga.Type, manga.AgeRating, manga.Status, manga.ReleaseYear,
		manga.PosterURL, manga.BackgroundURL, manga.AuthorID, manga.PainterID,
	).Scan(&manga.CreatedAt, &manga.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Manga with this slug already exists")
		}
		return dberr.Wrap(err, "create_manga")
	}

	// Junction synchronization
	if err := repository.syncAssociations(context, tx, manga, false); err != nil {
		return err
	}

	return tx.Commit(context)
}

/*
Update applies a partial metadata update and re-syncs associations.

Description: Builds a PATCH-style SET block from the populated fields
only, then fully replaces every association slice that is non-nil. A nil
slice means "leave the links alone"; an empty one clears them.

Returns:
  - error: apperr.NotFound for an unknown ID, apperr.Conflict for a
    duplicate slug
*/
func (repository *repository) Update(context context.Context, manga *Manga) error {

	// Dynamic SET block assembly
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(
		"UPDATE %s SET %s = NOW()", schema.CatalogManga.Table, schema.CatalogManga.UpdatedAt,
	))
	var args []any
	argID := 1

	set := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if manga.Title != "" {
		set(schema.CatalogManga.Title, manga.Title)
	}
	if manga.Subtitle != nil {
		set(schema.CatalogManga.Subtitle, *manga.Subtitle)
	}
	if manga.Slug != "" {
		set(schema.CatalogManga.Slug, manga.Slug)
	}
	if manga.Description != nil {
		set(schema.CatalogManga.Description, *manga.Description)
	}
	if manga.Type != "" {
		set(schema.CatalogManga.Type, manga.Type)
	}
	if manga.AgeRating != "" {
		set(schema.CatalogManga.AgeRating, manga.AgeRating)
	}
	if manga.Status != "" {
		set(schema.CatalogManga.Status, manga.Status)
	}
	if manga.ReleaseYear != nil {
		set(schema.CatalogManga.ReleaseYear, *manga.ReleaseYear)
	}
	if manga.PosterURL != nil {
		set(schema.CatalogManga.PosterURL, *manga.PosterURL)
	}
	if manga.BackgroundURL != nil {
		set(schema.CatalogManga.BackgroundURL, *manga.BackgroundURL)
	}
	if manga.AuthorID != nil {
		set(schema.CatalogManga.AuthorID, *manga.AuthorID)
	}
	if manga.PainterID != nil {
		set(schema.CatalogManga.PainterID, *manga.PainterID)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.CatalogManga.ID, argID))
	args = append(args, manga.ID)

	// Transaction scope
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin update transaction: %w", err)
	}
	defer tx.Rollback(context)

	// Core row update
	result, err := tx.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Manga with this slug already exists")
		}
		return fmt.Errorf("postgres: failed to update manga: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	// Junction synchronization (nil means untouched)
	if err := repository.syncAssociations(context, tx, manga, true); err != nil {
		return err
	}

	return tx.Commit(context)
}

// syncAssociations replaces the junction links of a title inside the
// given transaction. On the update path (partial true) a nil slice is
// skipped so absent payload fields leave existing links alone.
func (repository *repository) syncAssociations(context context.Context, tx pgx.Tx, manga *Manga, partial bool) error {

	if !partial || manga.GenreIDs != nil {
		err := syncJunction(context, tx,
			schema.MangaGenre.Table, schema.MangaGenre.MangaID,
			schema.MangaGenre.GenreID, manga.ID, manga.GenreIDs)
		if err != nil {
			return err
		}
	}

	if !partial || manga.TagIDs != nil {
		err := syncJunction(context, tx,
			schema.MangaTag.Table, schema.MangaTag.MangaID,
			schema.MangaTag.TagID, manga.ID, manga.TagIDs)
		if err != nil {
			return err
		}
	}

	if !partial || manga.PublisherIDs != nil {
		err := syncJunction(context, tx,
			schema.MangaPublisher.Table, schema.MangaPublisher.MangaID,
			schema.MangaPublisher.PublisherID, manga.ID, manga.PublisherIDs)
		if err != nil {
			return err
		}
	}

	if !partial || manga.RelatedIDs != nil {
		err := syncJunction(context, tx,
			schema.RelatedManga.Table, schema.RelatedManga.MangaID,
			schema.RelatedManga.RelatedID, manga.ID, manga.RelatedIDs)
		if err != nil {
			return err
		}
	}

	return nil
}

/*
syncJunction synchronizes one many-to-many junction table.

Description: Clear-and-insert strategy: flush every link of the parent,
then queue the replacements through a [pgx.Batch] so the whole sync costs
two round-trips regardless of link count.

Parameters:
  - context: context.Context
  - tx: pgx.Tx (The enclosing transaction)
  - table: string (Qualified junction table name)
  - idCol: string (Parent reference column)
  - valCol: string (Linked value column)
  - id: string (Parent UUID)
  - vals: []T (Replacement link values)

Returns:
  - error: Execution failures
*/
func syncJunction[T int | string](context context.Context, tx pgx.Tx, table, idCol, valCol, id string, vals []T) error {

	// Clear phase
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idCol)
	if _, err := tx.Exec(context, delQuery, id); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", table, err)
	}

	if len(vals) == 0 {
		return nil
	}

	// Batched insert phase
	insQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", table, idCol, valCol)
	batch := &pgx.Batch{}
	for _, value := range vals {
		batch.Queue(insQuery, id, value)
	}

	response := tx.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert into %s: %w", table, err)
	}

	return nil
}

/*
Delete removes a title permanently.

Description: Chapters, pages, junction rows and social data cascade away
through the foreign keys, so no cleanup pass is needed.

Returns:
  - error: apperr.NotFound for an unknown ID
*/
func (repository *repository) Delete(context context.Context, id string) error {

	// Cascading hard delete
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogManga.Table, schema.CatalogManga.ID)

	// Command execution
	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete manga: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}

/*
IncrementViewCount bumps the popularity counter atomically in SQL.
*/
func (repository *repository) IncrementViewCount(context context.Context, id string, delta int64) error {

	// In-place counter arithmetic, no read-modify-write race
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2",
		schema.CatalogManga.Table, schema.CatalogManga.ViewCount,
		schema.CatalogManga.ViewCount, schema.CatalogManga.ID)

	if _, err := repository.pool.Exec(context, query, delta, id); err != nil {
		return fmt.Errorf("postgres: failed to increment view count: %w", err)
	}

	return nil
}

/*
ListRelated returns the titles linked to the given one.

Description: The link table stores each relation once; this read unions
both directions so a relation shows up on both titles' pages.
*/
func (repository *repository) ListRelated(context context.Context, mangaID string) ([]*Manga, error) {

	// Bidirectional relation resolution
	query := fmt.Sprintf(`
		SELECT s.*, %s AS genres
		FROM (%s) s
		WHERE s.%s IN (
			SELECT %s FROM %s WHERE %s = $1
			UNION
			SELECT %s FROM %s WHERE %s = $1
		)
		ORDER BY s.%s DESC
	`,
		genresAgg, statsSource,
		schema.CatalogManga.ID,
		schema.RelatedManga.RelatedID, schema.RelatedManga.Table, schema.RelatedManga.MangaID,
		schema.RelatedManga.MangaID, schema.RelatedManga.Table, schema.RelatedManga.RelatedID,
		schema.CatalogManga.ViewCount,
	)

	return repository.queryList(context, query, mangaID)
}

// Popular returns the top titles by view count, descending.
func (repository *repository) Popular(context context.Context, limit int) ([]*Manga, error) {
	query := fmt.Sprintf(`
		SELECT s.*, %s AS genres
		FROM (%s) s
		ORDER BY s.%s DESC
		LIMIT $1
	`, genresAgg, statsSource, schema.CatalogManga.ViewCount)

	return repository.queryList(context, query, limit)
}

// Newest returns the most recently added titles, descending.
func (repository *repository) Newest(context context.Context, limit int) ([]*Manga, error) {
	query := fmt.Sprintf(`
		SELECT s.*, %s AS genres
		FROM (%s) s
		ORDER BY s.%s DESC
		LIMIT $1
	`, genresAgg, statsSource, schema.CatalogManga.CreatedAt)

	return repository.queryList(context, query, limit)
}

// PopularWithChapters returns the most viewed titles that already have
// chapters, with the freshest chapter breaking view-count ties.
func (repository *repository) PopularWithChapters(context context.Context, limit int) ([]*Manga, error) {
	query := fmt.Sprintf(`
		SELECT s.*, %s AS genres
		FROM (%s) s
		WHERE s.chaptercount > 0
		ORDER BY s.%s DESC, s.latestchapterat DESC
		LIMIT $1
	`, genresAgg, statsSource, schema.CatalogManga.ViewCount)

	return repository.queryList(context, query, limit)
}

// queryList executes a discovery query and hydrates every row.
func (repository *repository) queryList(context context.Context, query string, args ...any) ([]*Manga, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query manga list: %w", err)
	}
	defer rows.Close()

	var mangas []*Manga
	for rows.Next() {
		manga, _, err := scanListRow(rows, false)
		if err != nil {
			return nil, err
		}
		mangas = append(mangas, manga)
	}

	return mangas, nil
}
