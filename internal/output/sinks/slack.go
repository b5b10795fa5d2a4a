// Package sinks delivers report documents to chat services.
package sinks

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/teleflash/teleflash/internal/output/report"
)

// slackSectionLimit is the maximum length of a section's text object.
const slackSectionLimit = 3000

type Slack struct {
	client    *slack.Client
	channelID string
	logger    *zerolog.Logger
}

// NewSlack posts as the bot identified by token. Extra options are passed
// to the Slack client, e.g. slack.OptionAPIURL in tests.
func NewSlack(token, channelID string, logger *zerolog.Logger, opts ...slack.Option) *Slack {
	return &Slack{
		client:    slack.New(token, opts...),
		channelID: channelID,
		logger:    logger,
	}
}

func (s *Slack) Publish(ctx context.Context, doc report.Document) error {
	opts := []slack.MsgOption{
		slack.MsgOptionBlocks(SlackBlocks(doc)...),
		slack.MsgOptionText(doc.Fallback, false),
	}

	if doc.Unfurl {
		opts = append(opts, slack.MsgOptionEnableLinkUnfurl())
	} else {
		opts = append(opts, slack.MsgOptionDisableLinkUnfurl())
	}

	_, ts, err := s.client.PostMessageContext(ctx, s.channelID, opts...)
	if err != nil {
		return fmt.Errorf("slack post message: %w", err)
	}

	s.logger.Debug().Str("channel", s.channelID).Str("ts", ts).Msg("slack message posted")

	return nil
}

// SlackBlocks converts a document to Block Kit. Long sections are split
// at paragraph breaks to stay within Slack's text limit.
func SlackBlocks(doc report.Document) []slack.Block {
	blocks := make([]slack.Block, 0, len(doc.Blocks))

	for _, b := range doc.Blocks {
		switch b.Kind {
		case report.BlockHeader:
			blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, b.Text, false, false)))
		case report.BlockContext:
			blocks = append(blocks, slack.NewContextBlock("", mrkdwn(b.Text)))
		case report.BlockDivider:
			blocks = append(blocks, slack.NewDividerBlock())
		case report.BlockSection:
			for _, chunk := range splitParagraphs(b.Text, slackSectionLimit) {
				blocks = append(blocks, slack.NewSectionBlock(mrkdwn(chunk), nil, nil))
			}
		case report.BlockFields:
			fields := make([]*slack.TextBlockObject, 0, len(b.Fields))
			for _, f := range b.Fields {
				fields = append(fields, mrkdwn(f))
			}

			blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
		}
	}

	return blocks
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

// splitParagraphs cuts text into chunks of at most limit runes, preferring
// blank lines, then newlines, then spaces.
func splitParagraphs(text string, limit int) []string {
	var out []string

	for len([]rune(text)) > limit {
		head := string([]rune(text)[:limit])

		cut := -1
		for _, sep := range []string{"\n\n", "\n", " "} {
			if i := strings.LastIndex(head, sep); i > 0 {
				cut = i

				break
			}
		}

		if cut < 0 {
			cut = len(head)
		}

		out = append(out, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}

	if text != "" || len(out) == 0 {
		out = append(out, text)
	}

	return out
}
