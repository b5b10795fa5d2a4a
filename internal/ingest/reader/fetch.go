package reader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/domain"
	"github.com/teleflash/teleflash/internal/core/errors"
	"github.com/teleflash/teleflash/internal/platform/observability"
	"github.com/teleflash/teleflash/internal/platform/worker"
)

const (
	defaultFetchLimit = 100
	topMentionsLogged = 10
	statusOK          = "ok"
	statusFailed      = "failed"
)

func waitPause(ctx context.Context, d time.Duration) error {
	return worker.Wait(ctx, d)
}

// Fetch processes handles one at a time, pausing between channels when
// more than one is configured. A failing channel is logged and skipped.
// Fetch stops early only when ctx is canceled.
func (r *Reader) Fetch(ctx context.Context, api API, handles []string) *FetchResult {
	result := &FetchResult{Mentions: domain.NewMentionCounter()}

	for i, handle := range handles {
		if i > 0 && len(handles) > 1 {
			if err := r.pause(ctx, r.cfg.ReaderChannelPause); err != nil {
				r.logger.Warn().Err(err).Msg("fetch interrupted")

				break
			}
		}

		logger := r.logger.With().Str("channel", handle).Logger()

		ch, err := r.fetchChannel(ctx, api, handle, result, &logger)
		if err != nil {
			logger.Error().Err(err).Msg("Error processing channel")
			result.Failed = append(result.Failed, ChannelFailure{Handle: handle, Err: err})
			observability.ChannelsFetched.WithLabelValues(statusFailed).Inc()

			continue
		}

		result.Channels = append(result.Channels, ch)
		observability.ChannelsFetched.WithLabelValues(statusOK).Inc()
	}

	r.logger.Info().
		Int("channels", len(result.Channels)).
		Int("failed", len(result.Failed)).
		Int("posts_seen", result.PostsSeen).
		Int("posts_inserted", result.PostsInserted).
		Int("entities", result.Entities).
		Int("row_errors", result.RowErrors).
		Int("mentioned_channels", result.Mentions.Len()).
		Msg("fetch batch finished")

	for _, m := range result.Mentions.Top(topMentionsLogged) {
		r.logger.Debug().
			Str("username", m.Username).
			Int("count", m.Count).
			Int("from_messages", m.FromMessages).
			Int("channel_request", m.ChannelRequest).
			Strs("sources", m.Sources).
			Msg("mentioned channel")
	}

	return result
}

func (r *Reader) fetchChannel(ctx context.Context, api API, handle string, result *FetchResult, logger *zerolog.Logger) (domain.Channel, error) {
	resolved, err := resolveChannel(ctx, api, handle)
	if err != nil {
		return domain.Channel{}, err
	}

	ch, err := r.loadFullChannel(ctx, api, resolved, handle, result.Mentions)
	if err != nil {
		return domain.Channel{}, err
	}

	outcome, err := r.repo.UpsertChannel(ctx, ch)
	if err != nil {
		return domain.Channel{}, fmt.Errorf("store channel: %w", err)
	}

	logger.Debug().Stringer("outcome", outcome).Int64("channel_id", ch.ID).Msg("channel stored")

	minID, err := r.repo.LatestPostID(ctx, ch.ID)
	if err != nil {
		return domain.Channel{}, fmt.Errorf("latest post id: %w", err)
	}

	messages, chats, err := r.history(ctx, api, resolved, minID)
	if err != nil {
		return domain.Channel{}, err
	}

	r.storeHistoryChats(ctx, chats, ch, result, logger)
	r.storePosts(ctx, messages, ch, result, logger)

	return ch, nil
}

// resolveChannel maps a handle to its channel record.
func resolveChannel(ctx context.Context, api API, handle string) (*tg.Channel, error) {
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: handle})
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", errors.ErrResolution, handle, classifyRPC(err))
	}

	peer, ok := resolved.Peer.(*tg.PeerChannel)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", errors.ErrResolution, errors.ErrNotAChannel, handle)
	}

	for _, chat := range resolved.Chats {
		if c, ok := chat.(*tg.Channel); ok && c.ID == peer.ChannelID {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %w: %s", errors.ErrResolution, errors.ErrChannelNotFound, handle)
}

// loadFullChannel merges the chat record matching handle with its full
// metadata. Other channels in the response, such as a linked discussion
// group, are counted as mentions.
func (r *Reader) loadFullChannel(ctx context.Context, api API, c *tg.Channel, handle string, mentions *domain.MentionCounter) (domain.Channel, error) {
	full, err := api.ChannelsGetFullChannel(ctx, &tg.InputChannel{
		ChannelID:  c.ID,
		AccessHash: c.AccessHash,
	})
	if err != nil {
		return domain.Channel{}, fmt.Errorf("get full channel: %w", classifyRPC(err))
	}

	channelFull, ok := full.FullChat.(*tg.ChannelFull)
	if !ok {
		return domain.Channel{}, fmt.Errorf("%w: full chat %T", errors.ErrUnexpectedType, full.FullChat)
	}

	var (
		base  domain.Channel
		found bool
	)

	for _, chat := range full.Chats {
		other, ok := chat.(*tg.Channel)
		if !ok {
			continue
		}

		if strings.EqualFold(other.Username, handle) {
			base, found = channelFromChat(other), true

			continue
		}

		mentions.Record(other.ID, other.Username, domain.MentionChannelRequest, handle, handle)
	}

	if !found {
		base, found = channelFromChat(c), strings.EqualFold(c.Username, handle)
	}

	if !found {
		return domain.Channel{}, fmt.Errorf("%w: %w: no chat with handle %s", errors.ErrResolution, errors.ErrChannelNotFound, handle)
	}

	ch, ok := mergeFullChannel(base, channelFull)
	if !ok {
		return domain.Channel{}, fmt.Errorf("%w: %s", errors.ErrNoParticipantCount, handle)
	}

	return ch, nil
}

func (r *Reader) history(ctx context.Context, api API, c *tg.Channel, minID int) ([]tg.MessageClass, []tg.ChatClass, error) {
	limit := r.cfg.ReaderFetchLimit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	history, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer: &tg.InputPeerChannel{
			ChannelID:  c.ID,
			AccessHash: c.AccessHash,
		},
		OffsetDate: int(r.now().Unix()),
		Limit:      limit,
		MinID:      minID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get history: %w", classifyRPC(err))
	}

	switch h := history.(type) {
	case *tg.MessagesMessages:
		return h.Messages, h.Chats, nil
	case *tg.MessagesMessagesSlice:
		return h.Messages, h.Chats, nil
	case *tg.MessagesChannelMessages:
		return h.Messages, h.Chats, nil
	case *tg.MessagesMessagesNotModified:
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: history %T", errors.ErrUnexpectedType, history)
	}
}

// storeHistoryChats inserts channels seen in a history response if they
// are unknown and counts every foreign one as a mention.
func (r *Reader) storeHistoryChats(ctx context.Context, chats []tg.ChatClass, self domain.Channel, result *FetchResult, logger *zerolog.Logger) {
	for _, chat := range chats {
		c, ok := chat.(*tg.Channel)
		if !ok || c.ID == self.ID {
			continue
		}

		result.Mentions.Record(c.ID, c.Username, domain.MentionFromMessages, self.Username, "")

		if _, err := r.repo.EnsureChannel(ctx, channelFromChat(c)); err != nil {
			result.RowErrors++
			logger.Warn().Err(err).Int64("chat_id", c.ID).Msg("failed to store history chat")
		}
	}
}

func (r *Reader) storePosts(ctx context.Context, messages []tg.MessageClass, ch domain.Channel, result *FetchResult, logger *zerolog.Logger) {
	var entities []domain.PostEntity

	inserted := 0

	for _, m := range messages {
		post, ok := normalizeMessage(m, ch.ID)
		if !ok {
			continue
		}

		result.PostsSeen++

		added, err := r.repo.InsertPostIfAbsent(ctx, post)
		if err != nil {
			result.RowErrors++
			logger.Warn().Err(err).Int("post_id", post.ID).Msg("failed to store post")

			continue
		}

		if added {
			inserted++
		}

		entities = append(entities, entitiesFor(post)...)
	}

	result.PostsInserted += inserted
	observability.PostsIngested.WithLabelValues(ch.Username).Add(float64(inserted))

	if err := r.repo.AppendPostEntities(ctx, entities); err != nil {
		result.RowErrors++
		logger.Warn().Err(err).Int("entities", len(entities)).Msg("failed to store post entities")

		return
	}

	result.Entities += len(entities)
	observability.EntitiesIngested.Add(float64(len(entities)))

	logger.Info().Int("messages", len(messages)).Int("inserted", inserted).Int("entities", len(entities)).Msg("channel fetched")
}

// classifyRPC tags flood-wait responses so callers can tell them apart.
func classifyRPC(err error) error {
	if rpcErr, ok := tgerr.As(err); ok && rpcErr.Type == "FLOOD_WAIT" {
		return fmt.Errorf("%w (%ds): %w", errors.ErrFloodWait, rpcErr.Argument, err)
	}

	return err
}
