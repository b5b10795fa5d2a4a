package report

import "context"

// BlockKind is the layout role of a block.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockContext
	BlockDivider
	BlockSection
	// BlockFields is a row of side-by-side field groups.
	BlockFields
)

// Block holds one layout element. Text and Fields are Slack mrkdwn; the
// header text is plain.
type Block struct {
	Kind   BlockKind
	Text   string
	Fields []string
}

// Document is a sink-neutral chat message.
type Document struct {
	Language string
	Blocks   []Block
	// Fallback is the notification text shown where blocks are not rendered.
	Fallback string
	// Unfurl enables link and media previews.
	Unfurl bool
}

// Publisher delivers a document to a chat sink.
type Publisher interface {
	Publish(ctx context.Context, doc Document) error
}
