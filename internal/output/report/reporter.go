// Package report assembles the daily bilingual report and hands it to a
// chat sink.
package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/core/domain"
	"github.com/teleflash/teleflash/internal/platform/observability"
)

const (
	statusOK     = "ok"
	statusFailed = "failed"
)

type Summarizer interface {
	Summarize(ctx context.Context, posts []domain.RecentPost) string
}

type Translator interface {
	Translate(ctx context.Context, summary string) string
}

// Result describes what a report run produced.
type Result struct {
	Posts       int
	Summary     string
	Translation string
	Metrics     Metrics
	Published   int
	Failed      int
}

type Reporter struct {
	publisher  Publisher
	summarizer Summarizer
	translator Translator
	logger     *zerolog.Logger

	link    LinkFunc
	metrics func([]domain.RecentPost) Metrics
	now     func() time.Time
}

type Option func(*Reporter)

// WithMetrics replaces the metrics computation.
func WithMetrics(fn func([]domain.RecentPost) Metrics) Option {
	return func(r *Reporter) { r.metrics = fn }
}

// WithClock replaces the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

func New(publisher Publisher, summarizer Summarizer, translator Translator, logger *zerolog.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		publisher:  publisher,
		summarizer: summarizer,
		translator: translator,
		logger:     logger,
		link:       SlackLink,
		metrics:    ComputeMetrics,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run publishes the English report, then its Finnish translation. With no
// posts it publishes the no-content notice in both languages instead and
// neither computes metrics nor calls the summarizer.
func (r *Reporter) Run(ctx context.Context, posts []domain.RecentPost) Result {
	res := Result{Posts: len(posts)}
	observability.ReportPosts.Set(float64(len(posts)))

	if len(posts) == 0 {
		r.logger.Info().Msg("no matching posts, publishing notice")
		now := r.now()

		r.publish(ctx, BuildNotice(English, now), &res)
		r.publish(ctx, BuildNotice(Finnish, now), &res)

		return res
	}

	res.Summary = r.summarizer.Summarize(ctx, posts)
	res.Metrics = r.metrics(posts)

	r.publish(ctx, BuildReport(English, RewriteCitations(res.Summary, posts, r.link), res.Metrics, r.now()), &res)

	res.Translation = r.translator.Translate(ctx, res.Summary)

	r.publish(ctx, BuildReport(Finnish, RewriteCitations(res.Translation, posts, r.link), res.Metrics, r.now()), &res)

	return res
}

func (r *Reporter) publish(ctx context.Context, doc Document, res *Result) {
	if err := r.publisher.Publish(ctx, doc); err != nil {
		res.Failed++
		observability.ReportsPublished.WithLabelValues(doc.Language, statusFailed).Inc()
		r.logger.Error().Err(err).Str("language", doc.Language).Msg("failed to publish report")

		return
	}

	res.Published++
	observability.ReportsPublished.WithLabelValues(doc.Language, statusOK).Inc()
	r.logger.Info().Str("language", doc.Language).Msg("report published")
}
