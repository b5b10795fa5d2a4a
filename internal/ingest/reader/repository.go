package reader

import (
	"context"

	"github.com/teleflash/teleflash/internal/core/domain"
	db "github.com/teleflash/teleflash/internal/storage"
)

// Repository defines the storage operations required by the Reader.
type Repository interface {
	// Channel operations
	UpsertChannel(ctx context.Context, ch domain.Channel) (db.UpsertOutcome, error)
	EnsureChannel(ctx context.Context, ch domain.Channel) (db.UpsertOutcome, error)

	// Post operations
	LatestPostID(ctx context.Context, channelID int64) (int, error)
	InsertPostIfAbsent(ctx context.Context, post domain.Post) (bool, error)
	AppendPostEntities(ctx context.Context, entities []domain.PostEntity) error
}

// Compile-time assertion that *db.DB implements Repository.
var _ Repository = (*db.DB)(nil)
