package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// Totals use comma thousands separators in both languages.
var numberPrinter = message.NewPrinter(language.English)

// BuildReport lays out a summary with its metrics. summary is expected to
// have its citations rewritten already.
func BuildReport(l Locale, summary string, m Metrics, now time.Time) Document {
	generated := now.Format(dateTimeLayout)
	period := m.FirstDate.UTC().Format(dateLayout) + " to " + m.LastDate.UTC().Format(dateLayout)

	return Document{
		Language: l.Language,
		Blocks: []Block{
			{Kind: BlockHeader, Text: l.Header},
			{Kind: BlockContext, Text: fmt.Sprintf("*%s:* %s | 🕒 %s: %s", l.Period, period, l.Generated, generated)},
			{Kind: BlockDivider},
			{Kind: BlockSection, Text: "*" + l.Intro + "*"},
			{Kind: BlockSection, Text: summary},
			{Kind: BlockDivider},
			{Kind: BlockFields, Fields: []string{basicGroup(l, m), averagesGroup(l, m)}},
			{Kind: BlockFields, Fields: []string{advancedGroup(l, m), distributionGroup(l, m)}},
			{Kind: BlockContext, Text: l.Footer},
		},
		Fallback: fmt.Sprintf(l.Fallback, generated),
		Unfurl:   true,
	}
}

// BuildNotice lays out the message sent when no post matched.
func BuildNotice(l Locale, now time.Time) Document {
	today := now.Format(dateLayout)

	return Document{
		Language: l.Language,
		Blocks: []Block{
			{Kind: BlockSection, Text: "*" + fmt.Sprintf(l.NoContent, today) + "*"},
			{Kind: BlockContext, Text: l.Generated + ": " + now.Format(dateTimeLayout)},
		},
		Fallback: fmt.Sprintf(l.NoContentFallback, today),
	}
}

func basicGroup(l Locale, m Metrics) string {
	return fieldGroup(l.BasicTitle,
		line(l.TotalPosts, fmt.Sprint(m.TotalPosts)),
		line(l.TotalViews, numberPrinter.Sprintf("%d", m.TotalViews)),
		line(l.TotalForwards, numberPrinter.Sprintf("%d", m.TotalForwards)),
	)
}

func averagesGroup(l Locale, m Metrics) string {
	return fieldGroup(l.AveragesTitle,
		hinted(l.AvgViews, oneDecimal(m.AvgViews)),
		hinted(l.AvgForwards, oneDecimal(m.AvgForwards)),
		hinted(l.Engagement, oneDecimal(m.EngagementRate)+"%"),
	)
}

func advancedGroup(l Locale, m Metrics) string {
	return fieldGroup(l.AdvancedTitle,
		hinted(l.ViewsPerForward, oneDecimal(m.ViewsPerForward)),
		hinted(l.Virality, oneDecimal(m.Virality)+"%"),
		hinted(l.UniqueChannels, fmt.Sprint(m.UniqueChannels)),
	)
}

func distributionGroup(l Locale, m Metrics) string {
	return fieldGroup(l.DistributionTitle,
		hinted(l.PostsPerDay, oneDecimal(m.PostsPerDay)),
		hinted(l.PeakDailyPosts, fmt.Sprint(m.PeakDailyPosts)),
		hinted(l.ActivityRatio, oneDecimal(m.ChannelActivityRatio)),
	)
}

func fieldGroup(title string, lines ...string) string {
	return "*" + title + "*\n" + strings.Join(lines, "\n")
}

func line(label, value string) string {
	return "• " + label + ": " + value
}

func hinted(l MetricLabel, value string) string {
	return line(l.Label, value) + " \n_" + l.Hint + "_"
}

func oneDecimal(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
