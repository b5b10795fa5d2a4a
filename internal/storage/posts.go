package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/teleflash/teleflash/internal/core/domain"
	coreerrors "github.com/teleflash/teleflash/internal/core/errors"
)

// ErrChannelNotFound is returned by GetChannel for unknown ids.
var ErrChannelNotFound = coreerrors.ErrChannelNotFound

// InsertPostIfAbsent stores a post the first time its (id, channel) pair is
// seen. An existing row is never touched, so counters keep the values of
// the first observation. Returns whether a row was inserted.
func (db *DB) InsertPostIfAbsent(ctx context.Context, post domain.Post) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin post tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var found int

	err = tx.QueryRow(ctx, `SELECT id FROM post_texts WHERE id = $1 AND peer_id = $2`, post.ID, post.ChannelID).Scan(&found)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("lookup post %d/%d: %w", post.ChannelID, post.ID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO post_texts (id, peer_id, date, message, views, forwards)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		post.ID,
		post.ChannelID,
		post.Date,
		toTextPtr(post.Body),
		safeIntToInt32(post.Views),
		safeIntToInt32(post.Forwards),
	)
	if err != nil {
		return false, fmt.Errorf("insert post %d/%d: %w", post.ChannelID, post.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit post %d/%d: %w", post.ChannelID, post.ID, err)
	}

	return true, nil
}

// AppendPostEntities appends hyperlink rows without deduplication.
func (db *DB) AppendPostEntities(ctx context.Context, entities []domain.PostEntity) error {
	if len(entities) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entities {
		batch.Queue(`INSERT INTO post_entities (id, peer_id, entities) VALUES ($1, $2, $3)`,
			e.PostID, e.ChannelID, SanitizeUTF8(e.URL))
	}

	results := db.Pool.SendBatch(ctx, batch)

	for i := range entities {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()

			return fmt.Errorf("append post entity %d: %w", i, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("close entity batch: %w", err)
	}

	return nil
}

// LatestPostID returns the highest stored post id of a channel, 0 if none.
func (db *DB) LatestPostID(ctx context.Context, channelID int64) (int, error) {
	var maxID pgtype.Int4

	if err := db.Pool.QueryRow(ctx, `SELECT MAX(id) FROM post_texts WHERE peer_id = $1`, channelID).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("latest post id for %d: %w", channelID, err)
	}

	return fromInt4(maxID), nil
}

// RecentPosts returns posts of the given channel handles published at or
// after since, newest first.
func (db *DB) RecentPosts(ctx context.Context, handles []string, since time.Time) ([]domain.RecentPost, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT p.id, p.message, p.date, p.views, p.forwards, c.title, c.username
		FROM post_texts p
		JOIN channels c ON p.peer_id = c.id
		WHERE p.date >= $1
		  AND c.username = ANY($2)
		ORDER BY p.date DESC
	`, since, handles)
	if err != nil {
		return nil, fmt.Errorf("query recent posts: %w", err)
	}
	defer rows.Close()

	var out []domain.RecentPost

	for rows.Next() {
		var (
			p    domain.RecentPost
			body pgtype.Text
			date pgtype.Timestamptz
		)

		if err := rows.Scan(&p.MessageID, &body, &date, &p.Views, &p.Forwards, &p.ChannelTitle, &p.ChannelUsername); err != nil {
			return nil, fmt.Errorf("scan recent post: %w", err)
		}

		p.Body = fromText(body)
		p.Date = fromTimestamptz(date)
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent posts: %w", err)
	}

	return out, nil
}
