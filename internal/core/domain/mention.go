package domain

import "sort"

// MentionSource says how a channel was sighted.
type MentionSource int

const (
	// MentionFromMessages marks a channel seen in a history response,
	// typically as a forward origin.
	MentionFromMessages MentionSource = iota
	// MentionChannelRequest marks a channel returned by a full-channel
	// request, such as a linked discussion group.
	MentionChannelRequest
)

// Mention aggregates every sighting of one channel during a fetch batch.
type Mention struct {
	ChannelID      int64
	Username       string
	Count          int
	FromMessages   int
	ChannelRequest int
	TargetedBy     []string // handles whose full-channel request returned this channel
	Sources        []string // handles being fetched when the channel was seen
}

// MentionCounter tracks cross-channel mention provenance keyed by channel id.
// The zero value is not usable; call NewMentionCounter.
type MentionCounter struct {
	byID map[int64]*Mention
}

// NewMentionCounter creates an empty counter.
func NewMentionCounter() *MentionCounter {
	return &MentionCounter{byID: make(map[int64]*Mention)}
}

// Record registers a sighting. Channels without a handle are ignored.
// targetedBy is only kept for MentionChannelRequest sightings.
func (c *MentionCounter) Record(channelID int64, username string, kind MentionSource, source, targetedBy string) {
	if username == "" {
		return
	}

	m, ok := c.byID[channelID]
	if !ok {
		m = &Mention{ChannelID: channelID, Username: username}
		c.byID[channelID] = m
	}

	m.Count++

	switch kind {
	case MentionFromMessages:
		m.FromMessages++
	case MentionChannelRequest:
		m.ChannelRequest++

		if targetedBy != "" {
			m.TargetedBy = appendUnique(m.TargetedBy, targetedBy)
		}
	}

	if source != "" {
		m.Sources = appendUnique(m.Sources, source)
	}
}

// Get returns the aggregate for a channel id.
func (c *MentionCounter) Get(channelID int64) (Mention, bool) {
	m, ok := c.byID[channelID]
	if !ok {
		return Mention{}, false
	}

	return *m, true
}

// Len returns the number of distinct channels seen.
func (c *MentionCounter) Len() int {
	return len(c.byID)
}

// Top returns up to n mentions ordered by count, ties broken by handle.
// n <= 0 returns all of them.
func (c *MentionCounter) Top(n int) []Mention {
	out := make([]Mention, 0, len(c.byID))
	for _, m := range c.byID {
		out = append(out, *m)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Username < out[j].Username
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}

	return append(list, v)
}
