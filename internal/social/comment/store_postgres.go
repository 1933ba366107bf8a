// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package comment provides the PostgreSQL implementation for comment data access.

Reply creation and vote casting both run inside transactions:
  - Reply Creation: The parent is locked, its target inherited, and its
    isparent marker flipped atomically with the insert.
  - Vote Casting: 'SELECT ... FOR UPDATE' serializes toggles per
    (user, comment) pair, with the unique constraint as the backstop for
    racing first-time votes.
*/
package comment

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

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create persists a new comment with its reply and target semantics.

Description: Runs in one transaction. For replies the parent row is locked,
its attachment target copied onto the new comment, and isparent set. For
page comments the page's owning manga is resolved and, when the caller also
supplied a manga, cross-checked against it.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: apperr.NotFound for missing parents or pages, validation errors
    for a page/manga mismatch
*/
func (repository *repository) Create(context context.Context, comment *Comment) error {

	// Transaction scope
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin comment transaction: %w", err)
	}
	defer tx.Rollback(context)

	switch {

	// Reply path: lock the parent, inherit its target, mark it
	case comment.ParentID != nil:
		parentQuery := fmt.Sprintf(`
			SELECT mangaid, pageid, ispagecomment
			FROM %s
			WHERE id = $1
			FOR UPDATE
		`, schema.SocialComment.Table)
		err := tx.QueryRow(context, parentQuery, *comment.ParentID).Scan(
			&comment.MangaID, &comment.PageID, &comment.IsPageComment,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Parent comment")
			}
			return fmt.Errorf("postgres: failed to load parent comment: %w", err)
		}

		markQuery := fmt.Sprintf(`UPDATE %s SET isparent = TRUE WHERE id = $1`, schema.SocialComment.Table)
		if _, err := tx.Exec(context, markQuery, *comment.ParentID); err != nil {
			return fmt.Errorf("postgres: failed to mark parent comment: %w", err)
		}

	// Page path: resolve the owning manga and cross-check the caller's
	case comment.PageID != nil:
		comment.IsPageComment = true

		var pageMangaID string
		pageQuery := fmt.Sprintf(`SELECT mangaid FROM %s WHERE id = $1`, schema.CatalogPage.Table)
		err := tx.QueryRow(context, pageQuery, *comment.PageID).Scan(&pageMangaID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Page")
			}
			return fmt.Errorf("postgres: failed to resolve comment page: %w", err)
		}

		if comment.MangaID != nil && *comment.MangaID != pageMangaID {
			return apperr.ValidationError("Invalid comment target", apperr.FieldError{
				Field:   FieldPageID,
				Message: "Page does not belong to the given manga",
			})
		}
		comment.MangaID = &pageMangaID
	}

	// Insertion command
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s
			(id, authorid, mangaid, pageid, parentid, content, ispagecomment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING createdat, updatedat
	`, schema.SocialComment.Table)
	err = tx.QueryRow(context, insertQuery,
		comment.ID, comment.AuthorID, comment.MangaID, comment.PageID,
		comment.ParentID, comment.Content, comment.IsPageComment,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Manga")
		}
		return dberr.Wrap(err, "create_comment")
	}

	return tx.Commit(context)
}

/*
UpdateContent rewrites the text of an author's comment.

Description: The WHERE clause scopes the update to the owning author so
nobody can edit someone else's comment with a guessed ID.

Returns:
  - error: apperr.NotFound when no owned comment matches
*/
func (repository *repository) UpdateContent(context context.Context, id, authorID, content string) error {

	// Owner-scoped update
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, updatedat = NOW()
		WHERE id = $2 AND authorid = $3
	`, schema.SocialComment.Table)

	// Command execution
	result, err := repository.pool.Exec(context, query, content, id, authorID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update comment: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
Delete removes an author's comment.

Description: Replies and votes disappear with it through the cascading
foreign keys, so a thread never orphans.

Returns:
  - error: apperr.NotFound when no owned comment matches
*/
func (repository *repository) Delete(context context.Context, id, authorID string) error {

	// Owner-scoped cascading delete
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND authorid = $2`, schema.SocialComment.Table)

	// Command execution
	result, err := repository.pool.Exec(context, query, id, authorID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comment: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
ListForTarget returns a whole discussion flat, scored, in posting order.

Description: One query per target with the author joined in and the score
summed from the vote table. Manga discussions exclude inline page comments;
chapter discussions gather the page comments of every page in the chapter.
Tree assembly happens in the service layer.
*/
func (repository *repository) ListForTarget(context context.Context, target Target) ([]*Comment, error) {

	// Target predicate selection
	var predicate string
	var argument any
	switch {
	case target.PageID != "":
		predicate = "c.pageid = $1"
		argument = target.PageID
	case target.ChapterID != "":
		predicate = fmt.Sprintf("c.pageid IN (SELECT id FROM %s WHERE chapterid = $1)", schema.CatalogPage.Table)
		argument = target.ChapterID
	default:
		predicate = fmt.Sprintf(
			"c.mangaid = (SELECT id FROM %s WHERE slug = $1) AND c.ispagecomment = FALSE",
			schema.CatalogManga.Table,
		)
		argument = target.MangaSlug
	}

	// Scored joined retrieval
	query := fmt.Sprintf(`
		SELECT
			c.id, c.authorid, c.mangaid, c.pageid, c.parentid, c.content,
			c.ispagecomment, c.isparent, c.createdat, c.updatedat,
			u.username, u.avatarurl,
			COALESCE(SUM(v.vote), 0) AS score
		FROM %s c
		JOIN %s u ON u.id = c.authorid
		LEFT JOIN %s v ON v.commentid = c.id
		WHERE %s
		GROUP BY c.id, u.username, u.avatarurl
		ORDER BY c.createdat ASC
	`, schema.SocialComment.Table, schema.UsersAccount.Table, schema.SocialCommentVote.Table, predicate)

	// Execute retrieval
	rows, err := repository.pool.Query(context, query, argument)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	// Hydration loop
	var comments []*Comment
	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID, &comment.AuthorID, &comment.MangaID, &comment.PageID,
			&comment.ParentID, &comment.Content, &comment.IsPageComment,
			&comment.IsParent, &comment.CreatedAt, &comment.UpdatedAt,
			&comment.AuthorUsername, &comment.AuthorAvatar, &comment.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

/*
CastVote applies the vote toggle state machine atomically.

Description: Locks the user's existing vote row with 'SELECT ... FOR
UPDATE' so concurrent toggles on the same pair serialize. A racing
first-time vote slips past the empty lock and lands on the unique
(userid, commentid) constraint instead, surfacing as a conflict rather
than a duplicate row.

Returns:
  - VoteOutcome: added, updated or removed
  - error: apperr.NotFound for a missing comment, apperr.Conflict when a
    concurrent duplicate insert loses the race
*/
func (repository *repository) CastVote(context context.Context, userID, commentID string, vote int) (VoteOutcome, error) {

	// Transaction scope
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return "", fmt.Errorf("postgres: failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(context)

	// Target existence check
	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, schema.SocialComment.Table)
	if err := tx.QueryRow(context, existsQuery, commentID).Scan(&exists); err != nil {
		return "", fmt.Errorf("postgres: failed to verify comment: %w", err)
	}
	if !exists {
		return "", apperr.NotFound("Comment")
	}

	// Current vote lock
	var current int
	lockQuery := fmt.Sprintf(`
		SELECT vote
		FROM %s
		WHERE userid = $1 AND commentid = $2
		FOR UPDATE
	`, schema.SocialCommentVote.Table)
	err = tx.QueryRow(context, lockQuery, userID, commentID).Scan(&current)

	switch {

	// No prior vote: record it
	case errors.Is(err, pgx.ErrNoRows):
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (userid, commentid, vote)
			VALUES ($1, $2, $3)
		`, schema.SocialCommentVote.Table)
		if _, err := tx.Exec(context, insertQuery, userID, commentID, vote); err != nil {
			if dberr.IsUniqueViolation(err) {
				return "", apperr.Conflict("You have already voted on this comment")
			}
			return "", fmt.Errorf("postgres: failed to insert vote: %w", err)
		}
		return OutcomeAdded, tx.Commit(context)

	case err != nil:
		return "", fmt.Errorf("postgres: failed to lock vote: %w", err)

	// Same vote twice: withdraw it
	case current == vote:
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE userid = $1 AND commentid = $2`, schema.SocialCommentVote.Table)
		if _, err := tx.Exec(context, deleteQuery, userID, commentID); err != nil {
			return "", fmt.Errorf("postgres: failed to remove vote: %w", err)
		}
		return OutcomeRemoved, tx.Commit(context)

	// Opposite vote: flip direction
	default:
		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET vote = $1
			WHERE userid = $2 AND commentid = $3
		`, schema.SocialCommentVote.Table)
		if _, err := tx.Exec(context, updateQuery, vote, userID, commentID); err != nil {
			return "", fmt.Errorf("postgres: failed to flip vote: %w", err)
		}
		return OutcomeUpdated, tx.Commit(context)
	}
}
