// Package reader harvests channel metadata and recent posts over MTProto
// and stores them through a Repository.
package reader

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/domain"
	"github.com/teleflash/teleflash/internal/platform/config"
)

// API is the subset of the MTProto client the fetcher calls. *tg.Client
// satisfies it.
type API interface {
	ContactsResolveUsername(ctx context.Context, request *tg.ContactsResolveUsernameRequest) (*tg.ContactsResolvedPeer, error)
	ChannelsGetFullChannel(ctx context.Context, channel tg.InputChannelClass) (*tg.MessagesChatFull, error)
	MessagesGetHistory(ctx context.Context, request *tg.MessagesGetHistoryRequest) (tg.MessagesMessagesClass, error)
}

var _ API = (*tg.Client)(nil)

// ChannelFailure records a channel skipped by a fetch batch.
type ChannelFailure struct {
	Handle string
	Err    error
}

// FetchResult summarizes one fetch batch.
type FetchResult struct {
	Channels      []domain.Channel
	Failed        []ChannelFailure
	PostsSeen     int
	PostsInserted int
	Entities      int
	RowErrors     int
	Mentions      *domain.MentionCounter
}

type Reader struct {
	cfg    *config.Config
	repo   Repository
	logger *zerolog.Logger

	// now and pause are replaced in tests.
	now   func() time.Time
	pause func(ctx context.Context, d time.Duration) error
}

func New(cfg *config.Config, repo Repository, logger *zerolog.Logger) *Reader {
	return &Reader{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		now:    time.Now,
		pause:  waitPause,
	}
}

// Run connects and authenticates a user session, then fetches the given
// channels. Only connection and authentication failures are returned;
// per-channel failures are reported in the result.
func (r *Reader) Run(ctx context.Context, handles []string) (*FetchResult, error) {
	client := telegram.NewClient(r.cfg.TGAPIID, r.cfg.TGAPIHash, telegram.Options{
		SessionStorage: &telegram.FileSessionStorage{
			Path: r.cfg.TGSessionPath,
		},
	})

	var result *FetchResult

	err := client.Run(ctx, func(ctx context.Context) error {
		if err := client.Auth().IfNecessary(ctx, r.authFlow()); err != nil {
			return fmt.Errorf("telegram auth: %w", err)
		}

		r.logger.Info().Msg("Successfully authenticated as user")

		result = r.Fetch(ctx, tg.NewClient(client), handles)

		return nil
	})
	if err != nil {
		return result, fmt.Errorf("telegram client: %w", err)
	}

	return result, nil
}
