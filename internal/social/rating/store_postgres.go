// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package rating provides the PostgreSQL implementation for rating data access.

It leans on database-level guarantees rather than application locks:
  - Unique Constraint: (userid, mangaid) uniqueness turns racing duplicate
    inserts into clean constraint violations.
  - Grouped Aggregation: Histogram counts are computed with GROUP BY in one
    round-trip; bucket shaping happens in Go.
*/
package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
	"github.com/valeXeich/Mangalib/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed rating store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create persists a new rating row.

Description: Relies on the UNIQUE (userid, mangaid) constraint to reject
duplicates atomically. A racing second insert surfaces as a 409 Conflict
with a domain-specific message instead of a duplicate row.

Parameters:
  - context: context.Context
  - rating: *Rating (Hydrated entity)

Returns:
  - error: apperr.Conflict on duplicates, otherwise execution errors
*/
func (repository *repository) Create(context context.Context, rating *Rating) error {

	// Insertion command
	query := fmt.Sprintf(`
		INSERT INTO %s (id, userid, mangaid, star)
		VALUES ($1, $2, $3, $4)
		RETURNING createdat, updatedat
	`, schema.SocialRating.Table)

	// Execute and hydrate server-side timestamps
	err := repository.pool.QueryRow(context, query,
		rating.ID, rating.UserID, rating.MangaID, rating.Star,
	).Scan(&rating.CreatedAt, &rating.UpdatedAt)

	// Duplicate pair detection via constraint violation
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("You have already rated this manga")
		}
		return dberr.Wrap(err, "create_rating")
	}

	return nil
}

/*
Update changes the star value of an existing rating.

Description: The WHERE clause scopes the update to the owning user so a
user can never modify another user's rating, even with a guessed ID.

Returns:
  - error: apperr.NotFound when no owned rating matches
*/
func (repository *repository) Update(context context.Context, id, userID string, star int) error {

	// Owner-scoped update
	query := fmt.Sprintf(`
		UPDATE %s
		SET star = $1, updatedat = NOW()
		WHERE id = $2 AND userid = $3
	`, schema.SocialRating.Table)

	// Command execution
	result, err := repository.pool.Exec(context, query, star, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update rating: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Rating")
	}

	return nil
}

/*
Delete withdraws a rating owned by the user.

Returns:
  - error: apperr.NotFound when no owned rating matches
*/
func (repository *repository) Delete(context context.Context, id, userID string) error {

	// Owner-scoped delete
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND userid = $2`, schema.SocialRating.Table)

	// Command execution
	result, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete rating: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Rating")
	}

	return nil
}

/*
FindByUserAndMangaSlug returns the user's rating for a slug-identified manga.

Description: Joins through catalog.manga so the frontend can resolve the
user's rating directly from the detail page URL without a second lookup.

Returns:
  - *Rating: The hydrated rating
  - error: apperr.NotFound when the user has not rated the manga
*/
func (repository *repository) FindByUserAndMangaSlug(context context.Context, userID, slug string) (*Rating, error) {

	// Slug-joined lookup
	query := fmt.Sprintf(`
		SELECT r.id, r.userid, r.mangaid, r.star, r.createdat, r.updatedat
		FROM %s r
		JOIN %s m ON m.id = r.mangaid
		WHERE r.userid = $1 AND m.slug = $2
	`, schema.SocialRating.Table, schema.CatalogManga.Table)

	// Execute and scan
	rating := &Rating{}
	err := repository.pool.QueryRow(context, query, userID, slug).Scan(
		&rating.ID, &rating.UserID, &rating.MangaID, &rating.Star,
		&rating.CreatedAt, &rating.UpdatedAt,
	)

	// Missing row mapping
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Rating")
		}
		return nil, fmt.Errorf("postgres: failed to find rating by slug: %w", err)
	}

	return rating, nil
}

/*
CountsByStar returns grouped per-star counts for a manga.

Description: One GROUP BY round-trip; only client-visible stars inside
[MinStar, MaxStar] are counted. Bucket shaping and percent math happen in
the pure [BuildHistogram] helper.
*/
func (repository *repository) CountsByStar(context context.Context, mangaID string) (map[int]int, error) {

	// Grouped aggregation query
	query := fmt.Sprintf(`
		SELECT star, COUNT(*)
		FROM %s
		WHERE mangaid = $1 AND star BETWEEN $2 AND $3
		GROUP BY star
	`, schema.SocialRating.Table)

	// Execute retrieval
	rows, err := repository.pool.Query(context, query, mangaID, MinStar, MaxStar)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to count ratings: %w", err)
	}
	defer rows.Close()

	// Hydrate the sparse count map
	counts := make(map[int]int)
	for rows.Next() {
		var star, count int
		if err := rows.Scan(&star, &count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan rating count: %w", err)
		}
		counts[star] = count
	}

	return counts, nil
}

/*
Average returns the mean star value for a manga.

Description: COALESCE guarantees a clean zero for unrated manga instead of
a NULL scan error.
*/
func (repository *repository) Average(context context.Context, mangaID string) (float64, error) {

	// Zero-safe aggregation
	query := fmt.Sprintf(`
		SELECT COALESCE(AVG(star), 0)
		FROM %s
		WHERE mangaid = $1
	`, schema.SocialRating.Table)

	// Execute and scan
	var average float64
	if err := repository.pool.QueryRow(context, query, mangaID).Scan(&average); err != nil {
		return 0, fmt.Errorf("postgres: failed to average ratings: %w", err)
	}

	return average, nil
}
