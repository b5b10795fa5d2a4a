package report

import (
	"time"

	"github.com/teleflash/teleflash/internal/core/domain"
)

const percent = 100

// Metrics are the engagement statistics printed under a report.
type Metrics struct {
	TotalPosts    int
	TotalViews    int
	TotalForwards int

	AvgViews    float64
	AvgForwards float64
	// EngagementRate is forwards per hundred views.
	EngagementRate float64
	// ViewsPerForward is how many views precede one share.
	ViewsPerForward float64
	// Virality is forwards-per-post divided by views-per-forward, times 100.
	Virality float64

	UniqueChannels       int
	PostsPerDay          float64
	PeakDailyPosts       int
	ChannelActivityRatio float64

	FirstDate time.Time
	LastDate  time.Time
}

// ComputeMetrics aggregates posts. Every ratio with a zero denominator is 0.
// Days are UTC calendar dates.
func ComputeMetrics(posts []domain.RecentPost) Metrics {
	var m Metrics

	if len(posts) == 0 {
		return m
	}

	channels := make(map[string]struct{})
	days := make(map[string]int)

	m.FirstDate, m.LastDate = posts[0].Date, posts[0].Date

	for _, p := range posts {
		m.TotalPosts++
		m.TotalViews += p.Views
		m.TotalForwards += p.Forwards

		channels[p.ChannelUsername] = struct{}{}

		day := p.Date.UTC().Format(dateLayout)
		days[day]++

		if days[day] > m.PeakDailyPosts {
			m.PeakDailyPosts = days[day]
		}

		if p.Date.Before(m.FirstDate) {
			m.FirstDate = p.Date
		}

		if p.Date.After(m.LastDate) {
			m.LastDate = p.Date
		}
	}

	total := float64(m.TotalPosts)
	views := float64(m.TotalViews)
	forwards := float64(m.TotalForwards)

	m.AvgViews = views / total
	m.AvgForwards = forwards / total
	m.EngagementRate = ratio(forwards, views) * percent
	m.ViewsPerForward = ratio(views, forwards)
	m.Virality = ratio(m.AvgForwards, m.ViewsPerForward) * percent
	m.UniqueChannels = len(channels)
	m.PostsPerDay = ratio(total, float64(len(days)))
	m.ChannelActivityRatio = ratio(total, float64(m.UniqueChannels))

	return m
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
