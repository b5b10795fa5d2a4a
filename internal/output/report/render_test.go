package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC)

func TestBuildReportEnglish(t *testing.T) {
	m := ComputeMetrics(metricPosts())
	m.TotalViews = 1234567

	doc := BuildReport(English, "Overview:\n\nAll quiet.", m, testNow)

	assert.Equal(t, "en", doc.Language)
	assert.True(t, doc.Unfurl)
	assert.Equal(t, "Finland News Intelligence Report (2024-05-02 06:00)", doc.Fallback)
	require.Len(t, doc.Blocks, 9)

	assert.Equal(t, Block{Kind: BlockHeader, Text: "🇫🇮 Finland-Related Messages Summary"}, doc.Blocks[0])
	assert.Equal(t, "*Analysis Period:* 2024-05-01 to 2024-05-02 | 🕒 Generated: 2024-05-02 06:00", doc.Blocks[1].Text)
	assert.Equal(t, BlockDivider, doc.Blocks[2].Kind)
	assert.Equal(t, "*🔍 Analysis of Messages about Finland and Generated Summary:*", doc.Blocks[3].Text)
	assert.Equal(t, "Overview:\n\nAll quiet.", doc.Blocks[4].Text)
	assert.Equal(t, "💡 _Message IDs are clickable links to original posts_", doc.Blocks[8].Text)

	require.Equal(t, BlockFields, doc.Blocks[6].Kind)
	assert.Equal(t, "*📊 Basic Metrics*\n"+
		"• Total Messages Analyzed (related to Finland): 3\n"+
		"• Total Views: 1,234,567\n"+
		"• Total Forwards: 40", doc.Blocks[6].Fields[0])
	assert.Equal(t, "*📈 Average Metrics*\n"+
		"• Avg Views/Post: 2000.0 \n_(how many views each post related to Finland gets on average)_\n"+
		"• Avg Forwards/Post: 13.3 \n_(how many times each post related to Finland is shared on average)_\n"+
		"• Base Engagement: 0.7% \n_(how many viewers share the content about Finland)_", doc.Blocks[6].Fields[1])

	require.Equal(t, BlockFields, doc.Blocks[7].Kind)
	assert.Equal(t, "*🔄 Advanced Engagement*\n"+
		"• Views/Forwards Ratio: 150.0 \n_(how many people view before someone shares)_\n"+
		"• Virality Score: 8.9% \n_(how likely content is to spread: forwards/post ÷ views/forwards×100)_\n"+
		"• Unique Channels: 2 \n_(number of different channels posting about Finland)_", doc.Blocks[7].Fields[0])
	assert.Equal(t, "*📊 Distribution Patterns*\n"+
		"• Posts/Day: 1.5 \n_(average number of posts each day)_\n"+
		"• Peak Daily Posts: 2 \n_(highest number of posts in one day)_\n"+
		"• Channel Activity Ratio: 1.5 \n_(average posts about Finland per channel)_", doc.Blocks[7].Fields[1])
}

func TestBuildReportFinnish(t *testing.T) {
	doc := BuildReport(Finnish, "Yleiskatsaus", ComputeMetrics(metricPosts()), testNow)

	assert.Equal(t, "fi", doc.Language)
	assert.Equal(t, "🇫🇮 Suomeen liittyvien viestien yhteenveto", doc.Blocks[0].Text)
	assert.Equal(t, "*Analyysiajanjakso:* 2024-05-01 to 2024-05-02 | 🕒 Luotu: 2024-05-02 06:00", doc.Blocks[1].Text)
	assert.Equal(t, "Suomeen Liittyvien Viestien Yhteenveto (sama kuin edellinen suomeksi) (2024-05-02 06:00)", doc.Fallback)
	assert.Contains(t, doc.Blocks[6].Fields[0], "• Näyttökerrat yhteensä: 6,000")
	assert.Contains(t, doc.Blocks[7].Fields[1], "• Kanava-aktiivisuussuhde: 1.5 \n_(Suomea koskevien viestien keskiarvo per kanava)_")
}

func TestBuildNotice(t *testing.T) {
	en := BuildNotice(English, testNow)

	assert.False(t, en.Unfurl)
	assert.Equal(t, "No messages about Finland found 2024-05-02", en.Fallback)
	assert.Equal(t, []Block{
		{Kind: BlockSection, Text: "*Today (2024-05-02) no messages about Finland 🇫🇮 found in the selected channels!*"},
		{Kind: BlockContext, Text: "Generated: 2024-05-02 06:00"},
	}, en.Blocks)

	fi := BuildNotice(Finnish, testNow)

	assert.Equal(t, "Ei Suomeen liittyviä viestejä 2024-05-02", fi.Fallback)
	assert.Equal(t, "*Tänään (2024-05-02) valituista kanavista ei löytynyt Suomeen 🇫🇮 liittyviä viestejä!*", fi.Blocks[0].Text)
	assert.Equal(t, "Luotu: 2024-05-02 06:00", fi.Blocks[1].Text)
}
