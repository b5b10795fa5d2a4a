package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/teleflash/teleflash/internal/core/domain"
)

// UpsertOutcome reports what UpsertChannel and EnsureChannel did.
type UpsertOutcome int

const (
	UpsertSkipped UpsertOutcome = iota
	UpsertInserted
	UpsertUpdated
	UpsertUnchanged
)

func (o UpsertOutcome) String() string {
	switch o {
	case UpsertInserted:
		return "inserted"
	case UpsertUpdated:
		return "updated"
	case UpsertUnchanged:
		return "unchanged"
	default:
		return "skipped"
	}
}

// planChannelWrite decides the write for one channel row. overwrite
// selects upsert semantics; without it an existing row is left alone.
func planChannelWrite(exists bool, username string, overwrite bool) UpsertOutcome {
	switch {
	case !exists && username == "":
		return UpsertSkipped
	case !exists:
		return UpsertInserted
	case overwrite:
		return UpsertUpdated
	default:
		return UpsertUnchanged
	}
}

// UpsertChannel inserts a channel seen for the first time or overwrites
// every mutable field of a known one. ID and Date are never changed.
// Each call runs in its own transaction.
func (db *DB) UpsertChannel(ctx context.Context, ch domain.Channel) (UpsertOutcome, error) {
	return db.writeChannel(ctx, ch, true)
}

// EnsureChannel inserts a channel only if its id is unknown. It is used for
// channels that appear in history responses, whose metadata is partial.
func (db *DB) EnsureChannel(ctx context.Context, ch domain.Channel) (UpsertOutcome, error) {
	return db.writeChannel(ctx, ch, false)
}

func (db *DB) writeChannel(ctx context.Context, ch domain.Channel, overwrite bool) (UpsertOutcome, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return UpsertSkipped, fmt.Errorf("begin channel tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	exists, err := channelExists(ctx, tx, ch.ID)
	if err != nil {
		return UpsertSkipped, err
	}

	outcome := planChannelWrite(exists, ch.Username, overwrite)

	switch outcome {
	case UpsertInserted:
		err = insertChannel(ctx, tx, ch)
	case UpsertUpdated:
		err = updateChannel(ctx, tx, ch)
	case UpsertSkipped, UpsertUnchanged:
		return outcome, nil
	}

	if err != nil {
		return UpsertSkipped, err
	}

	if err := tx.Commit(ctx); err != nil {
		return UpsertSkipped, fmt.Errorf("commit channel %d: %w", ch.ID, err)
	}

	return outcome, nil
}

func channelExists(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	var found int64

	err := tx.QueryRow(ctx, `SELECT id FROM channels WHERE id = $1`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("lookup channel %d: %w", id, err)
	}

	return true, nil
}

func insertChannel(ctx context.Context, tx pgx.Tx, ch domain.Channel) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO channels (
			id, title, date, fake, username, about,
			pts, participants_count, pinned_msg_id, linked_chat_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		ch.ID,
		SanitizeUTF8(ch.Title),
		ch.Date,
		ch.Fake,
		ch.Username,
		toText(ch.About),
		toInt4(ch.Pts),
		toInt4(ch.ParticipantsCount),
		toInt4Nullable(ch.PinnedMsgID),
		toInt8(ch.LinkedChatID),
	)
	if err != nil {
		return fmt.Errorf("insert channel %d: %w", ch.ID, err)
	}

	return nil
}

func updateChannel(ctx context.Context, tx pgx.Tx, ch domain.Channel) error {
	_, err := tx.Exec(ctx, `
		UPDATE channels
		SET title = $2,
		    fake = $3,
		    username = COALESCE(NULLIF($4, ''), username),
		    about = $5,
		    pts = $6,
		    participants_count = $7,
		    pinned_msg_id = $8,
		    linked_chat_id = $9
		WHERE id = $1
	`,
		ch.ID,
		SanitizeUTF8(ch.Title),
		ch.Fake,
		ch.Username,
		toText(ch.About),
		toInt4(ch.Pts),
		toInt4(ch.ParticipantsCount),
		toInt4Nullable(ch.PinnedMsgID),
		toInt8(ch.LinkedChatID),
	)
	if err != nil {
		return fmt.Errorf("update channel %d: %w", ch.ID, err)
	}

	return nil
}

// GetChannel loads one channel by id.
func (db *DB) GetChannel(ctx context.Context, id int64) (*domain.Channel, error) {
	var (
		ch           domain.Channel
		about        pgtype.Text
		pts          pgtype.Int4
		participants pgtype.Int4
		pinned       pgtype.Int4
		linked       pgtype.Int8
		date         pgtype.Timestamptz
	)

	err := db.Pool.QueryRow(ctx, `
		SELECT id, title, date, fake, username, about,
		       pts, participants_count, pinned_msg_id, linked_chat_id
		FROM channels
		WHERE id = $1
	`, id).Scan(&ch.ID, &ch.Title, &date, &ch.Fake, &ch.Username, &about, &pts, &participants, &pinned, &linked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChannelNotFound
		}

		return nil, fmt.Errorf("get channel %d: %w", id, err)
	}

	ch.Date = fromTimestamptz(date)
	ch.About = fromText(about)
	ch.Pts = fromInt4(pts)
	ch.ParticipantsCount = fromInt4(participants)
	ch.PinnedMsgID = fromInt4(pinned)

	if linked.Valid {
		ch.LinkedChatID = linked.Int64
	}

	return &ch, nil
}
