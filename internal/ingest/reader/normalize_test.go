package reader

import (
	"testing"
	"time"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teleflash/teleflash/internal/core/domain"
)

const testChannelID int64 = 1001234567

func TestMergeFullChannel(t *testing.T) {
	base := channelFromChat(&tg.Channel{ID: testChannelID, Title: "Yle", Username: "yle_news", Date: 1456790400})

	full := &tg.ChannelFull{About: "news", Pts: 42}
	full.SetParticipantsCount(1200)
	full.SetLinkedChatID(77)
	full.SetPinnedMsgID(5)

	ch, ok := mergeFullChannel(base, full)
	require.True(t, ok)
	assert.Equal(t, testChannelID, ch.ID)
	assert.Equal(t, "Yle", ch.Title)
	assert.Equal(t, "yle_news", ch.Username)
	assert.Equal(t, "news", ch.About)
	assert.Equal(t, 1200, ch.ParticipantsCount)
	assert.Equal(t, 42, ch.Pts)
	assert.Equal(t, int64(77), ch.LinkedChatID)
	assert.Equal(t, 5, ch.PinnedMsgID)
	assert.Equal(t, time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC), ch.Date)
}

func TestMergeFullChannelWithoutParticipants(t *testing.T) {
	_, ok := mergeFullChannel(domain.Channel{ID: 1}, &tg.ChannelFull{About: "x"})
	assert.False(t, ok)
}

func TestNormalizeMessage(t *testing.T) {
	text := "Read https://yle.fi/a and more"

	msg := &tg.Message{
		ID:      10,
		Date:    1700000000,
		Message: text,
		PeerID:  &tg.PeerChannel{ChannelID: testChannelID},
	}
	msg.SetViews(500)
	msg.SetForwards(12)
	msg.SetEditDate(1700000100)
	msg.SetEntities([]tg.MessageEntityClass{
		&tg.MessageEntityURL{Offset: 5, Length: 16},
		&tg.MessageEntityTextURL{Offset: 0, Length: 4, URL: "https://hs.fi/b"},
	})

	fwd := tg.MessageFwdHeader{}
	fwd.SetFromID(&tg.PeerChannel{ChannelID: 555})
	fwd.SetChannelPost(99)
	msg.SetFwdFrom(fwd)

	post, ok := normalizeMessage(msg, testChannelID)
	require.True(t, ok)
	require.NotNil(t, post.Body)
	assert.Equal(t, text, *post.Body)
	assert.Equal(t, 10, post.ID)
	assert.Equal(t, 500, post.Views)
	assert.Equal(t, 12, post.Forwards)
	require.NotNil(t, post.EditDate)
	assert.Equal(t, time.Unix(1700000100, 0).UTC(), *post.EditDate)
	assert.Equal(t, testChannelID, post.PeerChannelID)
	assert.Equal(t, int64(555), post.FwdFromChannelID)
	assert.Equal(t, 99, post.FwdFromChannelPost)
	assert.Equal(t, []string{"https://yle.fi/a", "https://hs.fi/b"}, post.URLs)
	assert.Nil(t, post.Media)
	assert.Empty(t, post.MediaType)
}

func TestNormalizeMessageEmptyText(t *testing.T) {
	post, ok := normalizeMessage(&tg.Message{ID: 3, Date: 1700000000}, testChannelID)
	require.True(t, ok)
	assert.Nil(t, post.Body)
	assert.False(t, post.HasBody())
}

func TestNormalizeMessageSkipsServiceMessages(t *testing.T) {
	_, ok := normalizeMessage(&tg.MessageService{ID: 4}, testChannelID)
	assert.False(t, ok)

	_, ok = normalizeMessage(&tg.MessageEmpty{ID: 5}, testChannelID)
	assert.False(t, ok)
}

func TestExtractURLsUsesUTF16Offsets(t *testing.T) {
	// The flag emoji takes four UTF-16 code units.
	text := "🇫🇮 https://yle.fi"
	urls := extractURLs(text, []tg.MessageEntityClass{
		&tg.MessageEntityURL{Offset: 5, Length: 14},
	})
	assert.Equal(t, []string{"https://yle.fi"}, urls)

	assert.Empty(t, extractURLs(text, []tg.MessageEntityClass{&tg.MessageEntityURL{Offset: 5, Length: 100}}))
	assert.Nil(t, extractURLs(text, nil))
}

func TestDecodeMedia(t *testing.T) {
	doc := &tg.MessageMediaDocument{}
	doc.SetDocument(&tg.Document{
		MimeType:   "video/mp4",
		Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeVideo{Duration: 12.5}},
	})

	results := tg.PollResults{}
	results.SetTotalVoters(40)

	tests := []struct {
		name  string
		media tg.MessageMediaClass
		want  domain.Media
	}{
		{
			name:  "web page",
			media: &tg.MessageMediaWebPage{Webpage: &tg.WebPage{URL: "https://www.yle.fi/news/1"}},
			want:  domain.MediaWebPage{URL: "https://www.yle.fi/news/1", Domain: "yle.fi"},
		},
		{
			name:  "pending web page",
			media: &tg.MessageMediaWebPage{Webpage: &tg.WebPagePending{}},
			want:  domain.MediaWebPage{},
		},
		{
			name:  "document",
			media: doc,
			want:  domain.MediaDocument{MimeType: "video/mp4", VideoDuration: 12.5},
		},
		{
			name: "poll",
			media: &tg.MessageMediaPoll{
				Poll:    tg.Poll{Question: tg.TextWithEntities{Text: "Sauna?"}},
				Results: results,
			},
			want: domain.MediaPoll{Question: "Sauna?", Results: 40},
		},
		{
			name:  "contact",
			media: &tg.MessageMediaContact{PhoneNumber: "+358401234567", FirstName: "Matti", LastName: "Meikäläinen", UserID: 9},
			want:  domain.MediaContact{PhoneNumber: "+358401234567", Name: "Matti Meikäläinen", UserID: 9},
		},
		{
			name:  "geo",
			media: &tg.MessageMediaGeo{Geo: &tg.GeoPoint{Lat: 60.17, Long: 24.94}},
			want:  domain.MediaGeo{Lat: 60.17, Lng: 24.94},
		},
		{
			name:  "venue",
			media: &tg.MessageMediaVenue{Geo: &tg.GeoPoint{Lat: 60.17, Long: 24.94}, Title: "Kauppatori", Address: "Helsinki"},
			want:  domain.MediaGeo{Lat: 60.17, Lng: 24.94, Title: "Kauppatori", Address: "Helsinki", Venue: true},
		},
		{
			name:  "photo",
			media: &tg.MessageMediaPhoto{},
			want:  domain.MediaPhoto{},
		},
		{
			name:  "other",
			media: &tg.MessageMediaDice{Value: 3, Emoticon: "🎲"},
			want:  domain.MediaOther{Tag: "MessageMediaDice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeMedia(tt.media))
		})
	}
}

func TestEntitiesFor(t *testing.T) {
	post := domain.Post{ID: 8, ChannelID: testChannelID, URLs: []string{"https://a", "https://a"}}

	assert.Equal(t, []domain.PostEntity{
		{PostID: 8, ChannelID: testChannelID, URL: "https://a"},
		{PostID: 8, ChannelID: testChannelID, URL: "https://a"},
	}, entitiesFor(post))
}
