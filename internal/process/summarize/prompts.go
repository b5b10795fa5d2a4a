package summarize

import "strings"

const summarizeSystemPrompt = `You are an expert political analyst and journalist specializing in Finnish affairs capable of summarizing and finding commonalities in Russian-language messages about Finland or Finnish topics. Focus exclusively on newsworthy developments:
- Major policy decisions and governmental actions
- Economic and trade developments
- Security and defense matters
- Diplomatic relations
- Infrastructure and strategic developments
- Any other significant national developments

Exclude:
- Cultural events
- Social media discussions
- Entertainment news
- Human interest stories
- Anecdotal mentions
- Humor or entertainment

Writing requirements:
1. Write in clear journalistic style
2. Always cite message IDs in parentheses within sentences
3. Focus on factual reporting
4. If only no newsworthy content exists, state (without making any summary): "` + NothingNewsworthy + `"
5. Maintain neutral, objective tone`

// summarizeUserPrompt takes the joined post blocks.
const summarizeUserPrompt = `Analyze these Finland-related messages for newsworthy developments and produce a summary based on them:

%s

If newsworthy content exists, structure your response as follows:

Overview:
[Two newlines after title]
Brief summary of key developments.

Key Topics:
[Two newlines after title]
Detailed coverage of significant developments, with each development in its own paragraph.

If no newsworthy content exists at all, simply state (without making any summary):
"` + NothingNewsworthy + `"

Requirements:
1. Focus on verified developments
2. Always cite message IDs in parentheses
3. Maintain professional writing style and neutral tone while attributing claims to sources
4. Group related developments together
5. Only include significant developments
6. Present information as channel claims using phrases like but not limited to:
   - "(message ID) reported that..."
   - "According to (message ID)..."
   - "Several channels (message IDs) claimed that..."`

const postBlockFormat = "Message ID: %d\nChannel: %s (%s)\nDate: %s\nMessage: %s\nViews: %d, Forwards: %d\nLink: %s"

const translateSystemPrompt = "You are a professional translator specializing in English to Finnish translation. Translate the text while preserving all formatting, numbers, and special characters. Keep message IDs in their original form."

const translateUserPrompt = "Translate the following text to Finnish:\n\n%s"

// In-band results. Callers publish whatever string they get back.
const (
	NothingNewsworthy  = "Nothing newsworthy was mentioned the last day"
	NoMessagesResult   = "No messages found for summarization."
	RateLimitedResult  = "Error: Rate limit exceeded. Please try again later."
	apiErrorFormat     = "OpenAI API error: %v"
	genericErrorFormat = "Error generating summary: %v"

	NoSummaryToTranslate = "Ei yhteenvetoa käännettäväksi."
	translateErrorFormat = "Käännösvirhe: %v"
)

// Archivable reports whether a summary is real content rather than an
// in-band failure or the nothing-to-report sentinel.
func Archivable(summary string) bool {
	switch {
	case summary == "", summary == NothingNewsworthy, summary == NoMessagesResult, summary == RateLimitedResult:
		return false
	case strings.HasPrefix(summary, strings.TrimSuffix(apiErrorFormat, "%v")),
		strings.HasPrefix(summary, strings.TrimSuffix(genericErrorFormat, "%v")):
		return false
	}

	return true
}
