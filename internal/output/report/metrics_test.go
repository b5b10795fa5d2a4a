package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teleflash/teleflash/internal/core/domain"
)

func metricPosts() []domain.RecentPost {
	return []domain.RecentPost{
		{MessageID: 1, Views: 1000, Forwards: 10, ChannelUsername: "yle_news", Date: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		{MessageID: 2, Views: 3000, Forwards: 30, ChannelUsername: "yle_news", Date: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{MessageID: 3, Views: 2000, Forwards: 0, ChannelUsername: "hs_fi", Date: time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC)},
	}
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(metricPosts())

	assert.Equal(t, 3, m.TotalPosts)
	assert.Equal(t, 6000, m.TotalViews)
	assert.Equal(t, 40, m.TotalForwards)
	assert.InDelta(t, 2000, m.AvgViews, 1e-9)
	assert.InDelta(t, 13.3333, m.AvgForwards, 1e-4)
	assert.InDelta(t, 0.6667, m.EngagementRate, 1e-4)
	assert.InDelta(t, 150, m.ViewsPerForward, 1e-9)
	assert.InDelta(t, 8.8889, m.Virality, 1e-4)
	assert.Equal(t, 2, m.UniqueChannels)
	assert.InDelta(t, 1.5, m.PostsPerDay, 1e-9)
	assert.Equal(t, 2, m.PeakDailyPosts)
	assert.InDelta(t, 1.5, m.ChannelActivityRatio, 1e-9)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), m.FirstDate)
	assert.Equal(t, time.Date(2024, 5, 2, 6, 0, 0, 0, time.UTC), m.LastDate)
}

func TestComputeMetricsZeroDenominators(t *testing.T) {
	m := ComputeMetrics([]domain.RecentPost{
		{MessageID: 1, ChannelUsername: "yle_news", Date: time.Now()},
	})

	assert.Equal(t, 1, m.TotalPosts)
	assert.Zero(t, m.EngagementRate)
	assert.Zero(t, m.ViewsPerForward)
	assert.Zero(t, m.Virality)
	assert.InDelta(t, 1, m.PostsPerDay, 1e-9)
	assert.InDelta(t, 1, m.ChannelActivityRatio, 1e-9)

	m = ComputeMetrics([]domain.RecentPost{
		{MessageID: 1, Views: 50, ChannelUsername: "yle_news", Date: time.Now()},
	})
	assert.Zero(t, m.ViewsPerForward)
	assert.Zero(t, m.Virality)
}

func TestComputeMetricsEmpty(t *testing.T) {
	assert.Equal(t, Metrics{}, ComputeMetrics(nil))
}
