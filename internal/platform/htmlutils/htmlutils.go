// Package htmlutils converts report text to Telegram HTML.
//
// The package handles:
//   - UTF-16 length calculation (Telegram's native encoding)
//   - Slack mrkdwn to Telegram HTML conversion
//   - Splitting long HTML into message-sized parts without breaking tags
package htmlutils

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf16"
)

// utf16Len returns the number of UTF-16 code units needed to encode the string.
// Telegram counts message length in UTF-16 code units, not Unicode code points.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// utf16Slice returns the longest prefix of s that fits in maxUnits UTF-16 code units.
func utf16Slice(s string, maxUnits int) string {
	units := 0

	for i, r := range s {
		runeUnits := 1
		if r > 0xFFFF {
			runeUnits = 2 // Surrogate pair needed
		}

		if units+runeUnits > maxUnits {
			return s[:i]
		}

		units += runeUnits
	}

	return s
}

var (
	tagRegex = regexp.MustCompile(`<(/?)([a-zA-Z0-9-]+)([^>]*)>`)

	// <https://t.me/x/1|x> and <https://t.me/x/1>
	mrkdwnLinkRegex = regexp.MustCompile(`<(https?://[^|>\s]+)(?:\|([^>]*))?>`)

	// Emphasis markers only count at word edges, so handles like yle_news
	// stay intact.
	boldRegex   = regexp.MustCompile(`(^|[^\p{L}\p{N}_*])\*([^*\n]+)\*($|[^\p{L}\p{N}_*])`)
	italicRegex = regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^_\n]+)_($|[^\p{L}\p{N}_])`)
)

// FromMrkdwn converts Slack mrkdwn (links, *bold*, _italic_) to Telegram
// HTML. All other text is escaped.
func FromMrkdwn(text string) string {
	var sb strings.Builder

	last := 0

	for _, m := range mrkdwnLinkRegex.FindAllStringSubmatchIndex(text, -1) {
		sb.WriteString(emphasis(html.EscapeString(text[last:m[0]])))

		url := text[m[2]:m[3]]
		label := url

		if m[4] >= 0 && m[5] > m[4] {
			label = text[m[4]:m[5]]
		}

		sb.WriteString(`<a href="` + html.EscapeString(url) + `">` + html.EscapeString(label) + `</a>`)

		last = m[1]
	}

	sb.WriteString(emphasis(html.EscapeString(text[last:])))

	return sb.String()
}

func emphasis(s string) string {
	s = replaceAllRepeated(boldRegex, s, "$1<b>$2</b>$3")

	return replaceAllRepeated(italicRegex, s, "$1<i>$2</i>$3")
}

// replaceAllRepeated reapplies re until nothing changes. Adjacent spans
// share a boundary character, which a single pass consumes.
func replaceAllRepeated(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}

		s = next
	}
}

// splitAfter lists the preferred split points, strongest first. The
// separator stays with the current part.
var splitAfter = []string{
	"\n\n", // Paragraph break
	"\n",
}

// SplitHTML splits an HTML string into parts of at most limit UTF-16 code
// units of text. Tags open at a split are closed at the end of the part and
// reopened at the start of the next one.
func SplitHTML(text string, limit int) []string {
	tokens := tokenizeHTML(text)

	if calculateTotalTextLen(tokens) <= limit {
		return []string{text}
	}

	splitter := &htmlSplitter{limit: limit}
	for _, t := range tokens {
		if t.isTag {
			splitter.openTags = updateOpenTags(t.val, splitter.openTags)
			splitter.current.WriteString(t.val)

			continue
		}

		splitter.processTextToken(t.val)
	}

	splitter.flush()

	return splitter.parts
}

type htmlToken struct {
	val   string
	isTag bool
}

type htmlSplitter struct {
	parts      []string
	current    strings.Builder
	openTags   []string
	currentLen int
	limit      int
}

func tokenizeHTML(text string) []htmlToken {
	var tokens []htmlToken

	remaining := text
	for len(remaining) > 0 {
		loc := tagRegex.FindStringIndex(remaining)

		switch {
		case loc == nil:
			tokens = append(tokens, htmlToken{val: remaining})
			remaining = ""
		case loc[0] == 0:
			tokens = append(tokens, htmlToken{val: remaining[:loc[1]], isTag: true})
			remaining = remaining[loc[1]:]
		default:
			tokens = append(tokens, htmlToken{val: remaining[:loc[0]]})
			remaining = remaining[loc[0]:]
		}
	}

	return tokens
}

func calculateTotalTextLen(tokens []htmlToken) int {
	totalLen := 0

	for _, t := range tokens {
		if !t.isTag {
			totalLen += utf16Len(t.val)
		}
	}

	return totalLen
}

func (s *htmlSplitter) processTextToken(text string) {
	remaining := text

	for len(remaining) > 0 {
		canTake := s.limit - s.currentLen
		if canTake <= 0 {
			s.flush()
			canTake = s.limit
		}

		remainingLen := utf16Len(remaining)
		if remainingLen <= canTake {
			s.current.WriteString(remaining)
			s.currentLen += remainingLen

			return
		}

		toWrite, newRemaining := findBestSplit(remaining, canTake)
		s.current.WriteString(toWrite)
		s.currentLen += utf16Len(toWrite)
		remaining = strings.TrimLeft(newRemaining, " \t\n\r")

		if len(remaining) > 0 {
			s.flush()
		}
	}
}

func (s *htmlSplitter) flush() {
	if s.currentLen == 0 {
		return
	}

	content := strings.TrimRight(s.current.String(), " \t\n")

	for i := len(s.openTags) - 1; i >= 0; i-- {
		content += "</" + GetTagName(s.openTags[i]) + ">"
	}

	s.parts = append(s.parts, content)
	s.current.Reset()
	s.currentLen = 0

	for _, tag := range s.openTags {
		s.current.WriteString(tag)
	}
}

func findBestSplit(text string, maxUnits int) (toWrite, remainder string) {
	searchText := utf16Slice(text, maxUnits)

	for _, sep := range splitAfter {
		if pos := strings.LastIndex(searchText, sep); pos > 0 {
			splitAt := pos + len(sep)
			return searchText[:splitAt], text[splitAt:]
		}
	}

	if pos := strings.LastIndex(searchText, " "); pos > 0 {
		return searchText[:pos+1], text[pos+1:]
	}

	return searchText, text[len(searchText):]
}

// GetTagName returns the element name of an opening or closing tag.
func GetTagName(fullTag string) string {
	tag := strings.Trim(fullTag, "<>")

	parts := strings.Fields(tag)
	if len(parts) > 0 {
		return strings.TrimPrefix(parts[0], "/")
	}

	return ""
}

func updateOpenTags(tag string, openTags []string) []string {
	match := tagRegex.FindStringSubmatch(tag)
	if match == nil {
		return openTags
	}

	if match[1] != "/" {
		return append(openTags, match[0])
	}

	tagName := strings.ToLower(match[2])
	for i := len(openTags) - 1; i >= 0; i-- {
		if strings.ToLower(GetTagName(openTags[i])) == tagName {
			return openTags[:i]
		}
	}

	return openTags
}
