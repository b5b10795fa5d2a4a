package report

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/teleflash/teleflash/internal/core/domain"
)

// citationRegex finds parenthesized groups of word characters, commas and
// spaces. regexp2's \w is Unicode-aware, so Cyrillic handles match too.
var citationRegex = regexp2.MustCompile(`\(([\d\w, ]+)\)`, regexp2.None)

// LinkFunc formats a hyperlink in the sink's markup.
type LinkFunc func(url, label string) string

// SlackLink renders <url|label>.
func SlackLink(url, label string) string {
	return "<" + url + "|" + label + ">"
}

// RewriteCitations replaces message ids cited in parentheses with links to
// the posts, labelled with the channel handle. Other parenthesized text is
// kept, normalized to ", " separators.
func RewriteCitations(summary string, posts []domain.RecentPost, link LinkFunc) string {
	handles := citationIndex(posts)

	out, err := citationRegex.ReplaceFunc(summary, func(m regexp2.Match) string {
		groups := m.Groups()
		parts := strings.Split(groups[1].String(), ",")

		for i, part := range parts {
			part = strings.TrimSpace(part)
			parts[i] = part

			handle, ok := handles[part]
			if !ok || handle == "" {
				continue
			}

			parts[i] = link(domain.TelegramBaseURL+handle+"/"+part, handle)
		}

		return "(" + strings.Join(parts, ", ") + ")"
	}, -1, -1)
	if err != nil {
		return summary
	}

	return out
}

// CitedPosts returns the posts whose id is cited in summary, in input
// order.
func CitedPosts(summary string, posts []domain.RecentPost) []domain.RecentPost {
	cited := make(map[string]struct{})

	m, err := citationRegex.FindStringMatch(summary)
	for err == nil && m != nil {
		for _, part := range strings.Split(m.Groups()[1].String(), ",") {
			cited[strings.TrimSpace(part)] = struct{}{}
		}

		m, err = citationRegex.FindNextMatch(m)
	}

	var out []domain.RecentPost

	for _, p := range posts {
		if _, ok := cited[strconv.Itoa(p.MessageID)]; ok {
			out = append(out, p)
		}
	}

	return out
}

// citationIndex maps message ids to handles. Later posts win on collisions.
func citationIndex(posts []domain.RecentPost) map[string]string {
	idx := make(map[string]string, len(posts))
	for _, p := range posts {
		idx[strconv.Itoa(p.MessageID)] = p.ChannelUsername
	}

	return idx
}
