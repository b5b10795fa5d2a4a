package reader

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/gotd/td/tg"

	"github.com/teleflash/teleflash/internal/core/domain"
)

// channelFromChat converts the allow-listed fields of a chat record.
func channelFromChat(c *tg.Channel) domain.Channel {
	return domain.Channel{
		ID:       c.ID,
		Title:    c.Title,
		Username: c.Username,
		Date:     unixTime(c.Date),
		Fake:     c.Fake,
	}
}

// mergeFullChannel copies the full-chat fields onto a channel record.
// ok is false when the full chat carries no participant count.
func mergeFullChannel(ch domain.Channel, full *tg.ChannelFull) (domain.Channel, bool) {
	count, ok := full.GetParticipantsCount()
	if !ok {
		return ch, false
	}

	ch.ParticipantsCount = count
	ch.About = full.About
	ch.Pts = full.Pts

	if linked, ok := full.GetLinkedChatID(); ok {
		ch.LinkedChatID = linked
	}

	if pinned, ok := full.GetPinnedMsgID(); ok {
		ch.PinnedMsgID = pinned
	}

	return ch, true
}

// normalizeMessage flattens a history message into a post. Service and
// empty messages yield ok=false.
func normalizeMessage(m tg.MessageClass, channelID int64) (domain.Post, bool) {
	msg, ok := m.(*tg.Message)
	if !ok {
		return domain.Post{}, false
	}

	post := domain.Post{
		ID:        msg.ID,
		ChannelID: channelID,
		Date:      unixTime(msg.Date),
	}

	if msg.Message != "" {
		body := msg.Message
		post.Body = &body
	}

	if views, ok := msg.GetViews(); ok {
		post.Views = views
	}

	if forwards, ok := msg.GetForwards(); ok {
		post.Forwards = forwards
	}

	if edit, ok := msg.GetEditDate(); ok {
		t := unixTime(edit)
		post.EditDate = &t
	}

	if peer, ok := msg.PeerID.(*tg.PeerChannel); ok {
		post.PeerChannelID = peer.ChannelID
	}

	if reply, ok := msg.GetReplyTo(); ok {
		if hdr, ok := reply.(*tg.MessageReplyHeader); ok {
			if id, ok := hdr.GetReplyToMsgID(); ok {
				post.ReplyToMsgID = id
			}
		}
	}

	if replies, ok := msg.GetReplies(); ok {
		if id, ok := replies.GetChannelID(); ok {
			post.RepliesChannelID = id
		}
	}

	if fwd, ok := msg.GetFwdFrom(); ok {
		post.FwdFromChannelID, post.FwdFromChannelPost = forwardOrigin(fwd)
	}

	if media, ok := msg.GetMedia(); ok {
		post.Media = decodeMedia(media)
		post.MediaType = post.Media.Kind()
	}

	post.URLs = extractURLs(msg.Message, msg.Entities)

	return post, true
}

func forwardOrigin(fwd tg.MessageFwdHeader) (int64, int) {
	var channelID int64

	if from, ok := fwd.GetFromID(); ok {
		if peer, ok := from.(*tg.PeerChannel); ok {
			channelID = peer.ChannelID
		}
	}

	postID, _ := fwd.GetChannelPost()

	return channelID, postID
}

// decodeMedia turns an attachment into its domain variant once, at ingestion.
func decodeMedia(media tg.MessageMediaClass) domain.Media {
	switch m := media.(type) {
	case *tg.MessageMediaWebPage:
		page, ok := m.Webpage.(*tg.WebPage)
		if !ok {
			return domain.MediaWebPage{}
		}

		title, _ := page.GetTitle()
		description, _ := page.GetDescription()

		return domain.MediaWebPage{
			URL:         page.URL,
			Domain:      hostWithoutWWW(page.URL),
			Title:       title,
			Description: description,
		}
	case *tg.MessageMediaDocument:
		return decodeDocument(m)
	case *tg.MessageMediaPoll:
		results := 0
		if voters, ok := m.Results.GetTotalVoters(); ok {
			results = voters
		}

		return domain.MediaPoll{Question: m.Poll.Question.Text, Results: results}
	case *tg.MessageMediaContact:
		return domain.MediaContact{
			PhoneNumber: m.PhoneNumber,
			Name:        strings.TrimSpace(m.FirstName + " " + m.LastName),
			UserID:      m.UserID,
		}
	case *tg.MessageMediaGeo:
		geo := domain.MediaGeo{}
		if point, ok := m.Geo.(*tg.GeoPoint); ok {
			geo.Lat, geo.Lng = point.Lat, point.Long
		}

		return geo
	case *tg.MessageMediaVenue:
		geo := domain.MediaGeo{Title: m.Title, Address: m.Address, Venue: true}
		if point, ok := m.Geo.(*tg.GeoPoint); ok {
			geo.Lat, geo.Lng = point.Lat, point.Long
		}

		return geo
	case *tg.MessageMediaPhoto:
		return domain.MediaPhoto{}
	default:
		return domain.MediaOther{Tag: mediaTag(media.TypeName())}
	}
}

func decodeDocument(m *tg.MessageMediaDocument) domain.MediaDocument {
	out := domain.MediaDocument{}

	docClass, ok := m.GetDocument()
	if !ok {
		return out
	}

	doc, ok := docClass.(*tg.Document)
	if !ok {
		return out
	}

	out.MimeType = doc.MimeType

	for _, attr := range doc.Attributes {
		if video, ok := attr.(*tg.DocumentAttributeVideo); ok {
			out.VideoDuration = video.Duration
		}
	}

	return out
}

// mediaTag upper-cases a TL type name: messageMediaDice -> MessageMediaDice.
func mediaTag(typeName string) string {
	if typeName == "" {
		return ""
	}

	return strings.ToUpper(typeName[:1]) + typeName[1:]
}

func hostWithoutWWW(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(u.Host, "www.")
}

// extractURLs returns the hyperlink targets of a message: explicit
// text-URL spans and bare URLs cut out of the text. Entity offsets are in
// UTF-16 code units.
func extractURLs(text string, entities []tg.MessageEntityClass) []string {
	if len(entities) == 0 {
		return nil
	}

	var encoded []uint16

	var urls []string

	for _, e := range entities {
		switch ent := e.(type) {
		case *tg.MessageEntityTextURL:
			if ent.URL != "" {
				urls = append(urls, ent.URL)
			}
		case *tg.MessageEntityURL:
			if encoded == nil {
				encoded = utf16.Encode([]rune(text))
			}

			if s := utf16Slice(encoded, ent.Offset, ent.Length); s != "" {
				urls = append(urls, s)
			}
		}
	}

	return urls
}

func utf16Slice(encoded []uint16, offset, length int) string {
	if offset < 0 || length <= 0 || offset+length > len(encoded) {
		return ""
	}

	return string(utf16.Decode(encoded[offset : offset+length]))
}

func entitiesFor(post domain.Post) []domain.PostEntity {
	out := make([]domain.PostEntity, 0, len(post.URLs))
	for _, u := range post.URLs {
		out = append(out, domain.PostEntity{PostID: post.ID, ChannelID: post.ChannelID, URL: u})
	}

	return out
}

func unixTime(ts int) time.Time {
	if ts == 0 {
		return time.Time{}
	}

	return time.Unix(int64(ts), 0).UTC()
}
