package domain

// Media tags as reported by Telegram's TL schema.
const (
	MediaKindWebPage  = "MessageMediaWebPage"
	MediaKindDocument = "MessageMediaDocument"
	MediaKindPoll     = "MessageMediaPoll"
	MediaKindContact  = "MessageMediaContact"
	MediaKindGeo      = "MessageMediaGeo"
	MediaKindVenue    = "MessageMediaVenue"
	MediaKindPhoto    = "MessageMediaPhoto"
)

// Media is the decoded attachment of a post. Exactly one concrete variant
// exists per kind; unknown kinds decode to MediaOther.
type Media interface {
	Kind() string
}

// MediaWebPage is a link preview.
type MediaWebPage struct {
	URL         string
	Domain      string
	Title       string
	Description string
}

func (MediaWebPage) Kind() string { return MediaKindWebPage }

// MediaDocument is a file attachment; VideoDuration is set for videos.
type MediaDocument struct {
	MimeType      string
	VideoDuration float64
}

func (MediaDocument) Kind() string { return MediaKindDocument }

// MediaPoll is a poll with its total voter count.
type MediaPoll struct {
	Question string
	Results  int
}

func (MediaPoll) Kind() string { return MediaKindPoll }

// MediaContact is a shared phone contact.
type MediaContact struct {
	PhoneNumber string
	Name        string
	UserID      int64
}

func (MediaContact) Kind() string { return MediaKindContact }

// MediaGeo is a point on the map. Venue attachments fill Title and Address.
type MediaGeo struct {
	Lat     float64
	Lng     float64
	Title   string
	Address string
	Venue   bool
}

func (g MediaGeo) Kind() string {
	if g.Venue {
		return MediaKindVenue
	}

	return MediaKindGeo
}

// MediaPhoto is a photo attachment.
type MediaPhoto struct{}

func (MediaPhoto) Kind() string { return MediaKindPhoto }

// MediaOther carries the tag of a kind without a dedicated variant.
type MediaOther struct {
	Tag string
}

func (m MediaOther) Kind() string { return m.Tag }
