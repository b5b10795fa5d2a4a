package domain

import (
	"strconv"
	"time"
)

// TelegramBaseURL is the public permalink host for channel posts.
const TelegramBaseURL = "https://t.me/"

// Channel is a public broadcast source as stored in the channels table.
// ID and Date are fixed on first insert; every other field follows the
// latest fetch.
type Channel struct {
	ID                int64     // Telegram channel id
	Title             string    // Display title
	Username          string    // Public handle without the @ prefix
	About             string    // Channel description
	ParticipantsCount int       // Subscriber count at fetch time
	Pts               int       // Update sequence number
	PinnedMsgID       int       // Pinned post id, 0 if none
	LinkedChatID      int64     // Discussion group id, 0 if none
	Date              time.Time // Channel creation date
	Fake              bool      // Flagged as fake by Telegram
}

// Post is a single published item within a channel.
//
// Only ID, ChannelID, Date, Body, Views, Forwards and EditDate are persisted.
// The remaining fields are produced by ingestion and used for logging,
// entity extraction and mention tracking.
type Post struct {
	ID        int
	ChannelID int64
	Date      time.Time
	Body      *string // nil for media-only posts
	Views     int
	Forwards  int
	EditDate  *time.Time

	MediaType          string
	Media              Media
	PeerChannelID      int64
	ReplyToMsgID       int
	RepliesChannelID   int64
	FwdFromChannelID   int64
	FwdFromChannelPost int
	URLs               []string
}

// HasBody reports whether the post carries non-empty text.
func (p *Post) HasBody() bool {
	return p.Body != nil && *p.Body != ""
}

// PostEntity is a hyperlink extracted from a post's rich text.
type PostEntity struct {
	PostID    int
	ChannelID int64
	URL       string
}

// RecentPost is a row of the recency query: a post joined with its channel.
type RecentPost struct {
	MessageID       int
	Body            string
	Date            time.Time
	Views           int
	Forwards        int
	ChannelTitle    string
	ChannelUsername string
}

// Permalink returns the public link to the post, or an empty string when
// the channel has no handle.
func (p RecentPost) Permalink() string {
	return PostLink(p.ChannelUsername, p.MessageID)
}

// PostLink builds a t.me link for a channel post.
func PostLink(username string, messageID int) string {
	if username == "" {
		return ""
	}

	return TelegramBaseURL + username + "/" + strconv.Itoa(messageID)
}

// Summary is an archived report body.
type Summary struct {
	ID      int64
	Summary string
	Date    time.Time
}

// SummarySource links an archived summary to one cited post.
type SummarySource struct {
	SummaryID int64
	PostID    int
	PeerID    int64
	Source    string
}
