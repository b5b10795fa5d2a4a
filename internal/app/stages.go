package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/domain"
	"github.com/teleflash/teleflash/internal/core/llm"
	"github.com/teleflash/teleflash/internal/output/report"
	"github.com/teleflash/teleflash/internal/output/sinks"
	"github.com/teleflash/teleflash/internal/platform/config"
	"github.com/teleflash/teleflash/internal/platform/retry"
	"github.com/teleflash/teleflash/internal/process/summarize"
)

// fetch returns an error only when the session could not be established.
// Channel-level failures are logged by the reader and reported here.
func (a *App) fetch(ctx context.Context, store Store, logger *zerolog.Logger) error {
	res, err := a.newFetcher(store, logger).Run(ctx, a.cfg.Channels)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if res == nil {
		return nil
	}

	logger.Info().
		Int("channels", len(res.Channels)).
		Int("failed", len(res.Failed)).
		Int("posts_seen", res.PostsSeen).
		Int("posts_inserted", res.PostsInserted).
		Int("entities", res.Entities).
		Msg("fetch complete")

	return nil
}

func (a *App) report(ctx context.Context, store Store, logger *zerolog.Logger) error {
	posts := a.recentPosts(ctx, store, logger)

	matched := a.filter.Apply(posts)
	logger.Info().Int("recent", len(posts)).Int("matched", len(matched)).Msg("filtered recent posts")

	reporter, err := a.newReporter(logger)
	if err != nil {
		return fmt.Errorf("build reporter: %w", err)
	}

	res := reporter.Run(ctx, matched)

	logger.Info().Int("published", res.Published).Int("failed", res.Failed).Msg("report complete")

	if a.cfg.SummaryArchiveEnabled && store != nil && len(matched) > 0 {
		a.archive(ctx, store, res.Summary, matched, logger)
	}

	return nil
}

// recentPosts loads the posts inside the recency window. Storage problems
// yield no posts, so the run still publishes the no-content notice.
func (a *App) recentPosts(ctx context.Context, store Store, logger *zerolog.Logger) []domain.RecentPost {
	if store == nil {
		return nil
	}

	if err := store.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("database connectivity check failed")
	} else {
		logger.Debug().Msg("database connectivity check passed")
	}

	since := a.now().Add(-a.cfg.RecencyWindow)

	posts, err := store.RecentPosts(ctx, a.cfg.Channels, since)
	if err != nil {
		logger.Error().Err(err).Time("since", since).Msg("failed to query recent posts, reporting on none")

		return nil
	}

	return posts
}

// archive stores the English summary with one source row per cited post.
// Failures are logged; the report has already been published.
func (a *App) archive(ctx context.Context, store Store, summary string, posts []domain.RecentPost, logger *zerolog.Logger) {
	if !summarize.Archivable(summary) {
		logger.Debug().Msg("summary is not archivable")

		return
	}

	cited := report.CitedPosts(summary, posts)

	handles := make([]string, 0, len(cited))
	seen := make(map[string]struct{}, len(cited))

	for _, p := range cited {
		if _, ok := seen[p.ChannelUsername]; ok {
			continue
		}

		seen[p.ChannelUsername] = struct{}{}
		handles = append(handles, p.ChannelUsername)
	}

	peers, err := store.SummaryPeerIDs(ctx, handles)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve cited channels")

		return
	}

	sources := make([]domain.SummarySource, 0, len(cited))

	for _, p := range cited {
		peerID, ok := peers[p.ChannelUsername]
		if !ok {
			continue
		}

		sources = append(sources, domain.SummarySource{
			PostID: p.MessageID,
			PeerID: peerID,
			Source: p.Permalink(),
		})
	}

	id, err := store.SaveSummary(ctx, domain.Summary{Summary: summary, Date: a.now().UTC()}, sources)
	if err != nil {
		logger.Error().Err(err).Msg("failed to archive summary")

		return
	}

	logger.Info().Int64("summary_id", id).Int("sources", len(sources)).Msg("summary archived")
}

func (a *App) buildReporter(logger *zerolog.Logger) (ReportRunner, error) {
	publisher, err := newPublisher(a.cfg, logger)
	if err != nil {
		return nil, err
	}

	completer := llm.NewOpenAI(a.cfg, logger)

	policy := retry.Default()
	policy.MaxAttempts = a.cfg.SummaryMaxAttempts
	policy.BaseDelay = a.cfg.SummaryRetryDelay

	return report.New(
		publisher,
		summarize.NewSummarizer(completer, llm.NewTokenCounter(a.cfg.LLMModel), policy, logger),
		summarize.NewTranslator(completer, logger),
		logger,
	), nil
}

func newPublisher(cfg *config.Config, logger *zerolog.Logger) (report.Publisher, error) {
	switch cfg.ReportSink {
	case config.SinkTelegram:
		sink, err := sinks.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
		if err != nil {
			return nil, fmt.Errorf("telegram sink: %w", err)
		}

		return sink, nil
	default:
		return sinks.NewSlack(cfg.SlackBotToken, cfg.SlackChannelID, logger), nil
	}
}
