// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valeXeich/Mangalib/internal/platform/apperr"
	"github.com/valeXeich/Mangalib/internal/platform/database/schema"
	"github.com/valeXeich/Mangalib/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// contributorTable resolves the registry table for a kind. Callers
// validate the kind before the repository sees it.
func contributorTable(kind ContributorKind) string {
	if kind == KindPainter {
		return schema.CatalogPainter.Table
	}
	return schema.CatalogAuthor.Table
}

/*
ListGenres retrieves genres together with their per-genre manga totals.

Description: Left-joins the genre junction so unused genres still appear
with a zero count. A positive limit keeps only the most used entries for
compact landing-page widgets.

Parameters:
  - context: context.Context
  - limit: int (0 returns the full vocabulary)

Returns:
  - []*Genre: Genres with usage counts
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListGenres(context context.Context, limit int) ([]*Genre, error) {

	// Aggregated selection over the junction
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, COUNT(mg.%s) AS mangacount
		FROM %s g
		LEFT JOIN %s mg ON mg.%s = g.%s
		GROUP BY g.%s, g.%s
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.MangaGenre.MangaID,
		schema.CatalogGenre.Table,
		schema.MangaGenre.Table, schema.MangaGenre.GenreID, schema.CatalogGenre.ID,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
	)

	// Ordering depends on whether the caller wants a top-N widget
	args := []any{}
	if limit > 0 {
		query += ` ORDER BY mangacount DESC, g.` + schema.CatalogGenre.Name + ` ASC LIMIT $1`
		args = append(args, limit)
	} else {
		query += ` ORDER BY g.` + schema.CatalogGenre.Name + ` ASC`
	}

	// Execute retrieval against connection pool
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	// Hydrate result set
	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.MangaCount); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

/*
CreateGenre persists a new genre entry.

Returns:
  - *Genre: The persisted entry with its generated key
  - error: apperr.Conflict on a duplicate name
*/
func (repository *PostgresRepository) CreateGenre(context context.Context, name string) (*Genre, error) {

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.ID,
	)

	genre := &Genre{Name: name}
	if err := repository.db.QueryRow(context, query, name).Scan(&genre.ID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Genre already exists")
		}
		return nil, dberr.Wrap(err, "create_genre")
	}

	return genre, nil
}

/*
ListTags retrieves the full tag vocabulary ordered by name.

Returns:
  - []*Tag: Collection of tags
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListTags(context context.Context) ([]*Tag, error) {

	query := fmt.Sprintf(
		`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogTag.ID, schema.CatalogTag.Name,
		schema.CatalogTag.Table, schema.CatalogTag.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, nil
}

/*
CreateTag persists a new tag entry.

Returns:
  - *Tag: The persisted entry
  - error: apperr.Conflict on a duplicate name
*/
func (repository *PostgresRepository) CreateTag(context context.Context, name string) (*Tag, error) {

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CatalogTag.Table, schema.CatalogTag.Name, schema.CatalogTag.ID,
	)

	tag := &Tag{Name: name}
	if err := repository.db.QueryRow(context, query, name).Scan(&tag.ID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Tag already exists")
		}
		return nil, dberr.Wrap(err, "create_tag")
	}

	return tag, nil
}

/*
ListContributors retrieves one creator registry ordered by name.

Parameters:
  - context: context.Context
  - kind: ContributorKind

Returns:
  - []*Contributor: Collection of creators
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListContributors(context context.Context, kind ContributorKind) ([]*Contributor, error) {

	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name ASC`, contributorTable(kind))

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_contributors")
	}
	defer rows.Close()

	contributors := make([]*Contributor, 0)
	for rows.Next() {
		c := &Contributor{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_contributor")
		}
		contributors = append(contributors, c)
	}

	return contributors, nil
}

/*
CreateContributor persists a creator into one of the kind registries.

Returns:
  - *Contributor: The persisted entry
  - error: apperr.Conflict on a duplicate name
*/
func (repository *PostgresRepository) CreateContributor(context context.Context, kind ContributorKind, name string) (*Contributor, error) {

	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, contributorTable(kind))

	contributor := &Contributor{Name: name}
	if err := repository.db.QueryRow(context, query, name).Scan(&contributor.ID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Contributor already exists")
		}
		return nil, dberr.Wrap(err, "create_contributor")
	}

	return contributor, nil
}

/*
ListPublishers retrieves the publisher registry ordered by name.

Returns:
  - []*Publisher: Collection of publishers
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListPublishers(context context.Context) ([]*Publisher, error) {

	query := fmt.Sprintf(
		`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogPublisher.ID, schema.CatalogPublisher.Name,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_publishers")
	}
	defer rows.Close()

	publishers := make([]*Publisher, 0)
	for rows.Next() {
		p := &Publisher{}
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_publisher")
		}
		publishers = append(publishers, p)
	}

	return publishers, nil
}

/*
CreatePublisher persists a new publisher entry.

Returns:
  - *Publisher: The persisted entry
  - error: apperr.Conflict on a duplicate name
*/
func (repository *PostgresRepository) CreatePublisher(context context.Context, name string) (*Publisher, error) {

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CatalogPublisher.Table, schema.CatalogPublisher.Name, schema.CatalogPublisher.ID,
	)

	publisher := &Publisher{Name: name}
	if err := repository.db.QueryRow(context, query, name).Scan(&publisher.ID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Publisher already exists")
		}
		return nil, dberr.Wrap(err, "create_publisher")
	}

	return publisher, nil
}
