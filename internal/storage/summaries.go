package db

import (
	"context"
	"fmt"

	"github.com/teleflash/teleflash/internal/core/domain"
)

// SaveSummary stores a summary and its cited posts in one transaction and
// returns the new summary id. Sources whose post is not stored are skipped
// by the insert's join, so a hallucinated citation never fails the archive.
func (db *DB) SaveSummary(ctx context.Context, summary domain.Summary, sources []domain.SummarySource) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin summary tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int64

	err = tx.QueryRow(ctx, `
		INSERT INTO summaries (summary, date) VALUES ($1, $2::date) RETURNING id
	`, SanitizeUTF8(summary.Summary), summary.Date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert summary: %w", err)
	}

	for _, src := range sources {
		_, err := tx.Exec(ctx, `
			INSERT INTO summary_sources (summary_id, post_id, peer_id, source)
			SELECT $1, p.id, p.peer_id, $4
			FROM post_texts p
			WHERE p.id = $2 AND p.peer_id = $3
		`, id, src.PostID, src.PeerID, toText(src.Source))
		if err != nil {
			return 0, fmt.Errorf("insert summary source %d/%d: %w", src.PeerID, src.PostID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit summary: %w", err)
	}

	return id, nil
}

// SummaryPeerIDs resolves channel ids for the handles cited by a summary.
func (db *DB) SummaryPeerIDs(ctx context.Context, handles []string) (map[string]int64, error) {
	rows, err := db.Pool.Query(ctx, `SELECT username, id FROM channels WHERE username = ANY($1)`, handles)
	if err != nil {
		return nil, fmt.Errorf("query channel ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64, len(handles))

	for rows.Next() {
		var (
			username string
			id       int64
		)

		if err := rows.Scan(&username, &id); err != nil {
			return nil, fmt.Errorf("scan channel id: %w", err)
		}

		out[username] = id
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel ids: %w", err)
	}

	return out, nil
}
