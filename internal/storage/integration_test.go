package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teleflash/teleflash/internal/core/domain"
)

const testChannelID int64 = 1001234567

// openTestDB connects to TEST_POSTGRES_DSN, migrates and empties the tables.
// Tests using it are skipped when the variable is unset.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	database, err := New(ctx, dsn, &logger)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.Migrate(ctx))

	_, err = database.Pool.Exec(ctx, `TRUNCATE summary_sources, summaries, post_entities, post_texts, channels`)
	require.NoError(t, err)

	return database
}

func testChannel(title string) domain.Channel {
	return domain.Channel{
		ID:                testChannelID,
		Title:             title,
		Username:          "yle_news",
		About:             "news",
		ParticipantsCount: 1200,
		Pts:               5,
		Date:              time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestIntegration_UpsertChannelIdempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	outcome, err := database.UpsertChannel(ctx, testChannel("Yle"))
	require.NoError(t, err)
	assert.Equal(t, UpsertInserted, outcome)

	first, err := database.GetChannel(ctx, testChannelID)
	require.NoError(t, err)

	outcome, err = database.UpsertChannel(ctx, testChannel("Yle"))
	require.NoError(t, err)
	assert.Equal(t, UpsertUpdated, outcome)

	second, err := database.GetChannel(ctx, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed := testChannel("Yle Uutiset")
	changed.Date = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	changed.ParticipantsCount = 1500

	_, err = database.UpsertChannel(ctx, changed)
	require.NoError(t, err)

	third, err := database.GetChannel(ctx, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, "Yle Uutiset", third.Title)
	assert.Equal(t, 1500, third.ParticipantsCount)
	assert.Equal(t, testChannelID, third.ID)
	assert.True(t, first.Date.Equal(third.Date), "creation date must not change")
}

func TestIntegration_EnsureChannelDoesNotUpdate(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.EnsureChannel(ctx, testChannel("Yle"))
	require.NoError(t, err)

	outcome, err := database.EnsureChannel(ctx, testChannel("Renamed"))
	require.NoError(t, err)
	assert.Equal(t, UpsertUnchanged, outcome)

	ch, err := database.GetChannel(ctx, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, "Yle", ch.Title)

	outcome, err = database.EnsureChannel(ctx, domain.Channel{ID: 42, Title: "no handle"})
	require.NoError(t, err)
	assert.Equal(t, UpsertSkipped, outcome)
}

func TestIntegration_InsertPostIfAbsentKeepsFirstCounters(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.UpsertChannel(ctx, testChannel("Yle"))
	require.NoError(t, err)

	body := "Finland signed a deal"
	post := domain.Post{ID: 7, ChannelID: testChannelID, Date: time.Now().Add(-time.Hour), Body: &body, Views: 100, Forwards: 3}

	inserted, err := database.InsertPostIfAbsent(ctx, post)
	require.NoError(t, err)
	assert.True(t, inserted)

	post.Views = 999
	inserted, err = database.InsertPostIfAbsent(ctx, post)
	require.NoError(t, err)
	assert.False(t, inserted)

	recent, err := database.RecentPosts(ctx, []string{"yle_news"}, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 100, recent[0].Views)
	assert.Equal(t, body, recent[0].Body)

	latest, err := database.LatestPostID(ctx, testChannelID)
	require.NoError(t, err)
	assert.Equal(t, 7, latest)

	require.NoError(t, database.AppendPostEntities(ctx, []domain.PostEntity{
		{PostID: 7, ChannelID: testChannelID, URL: "https://yle.fi/a"},
		{PostID: 7, ChannelID: testChannelID, URL: "https://yle.fi/a"},
	}))

	var count int
	require.NoError(t, database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM post_entities`).Scan(&count))
	assert.Equal(t, 2, count, "entities are appended without dedup")

	id, err := database.SaveSummary(ctx, domain.Summary{Summary: "Overview", Date: time.Now()}, []domain.SummarySource{
		{PostID: 7, PeerID: testChannelID, Source: "https://t.me/yle_news/7"},
		{PostID: 8, PeerID: testChannelID, Source: "https://t.me/yle_news/8"},
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	require.NoError(t, database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM summary_sources`).Scan(&count))
	assert.Equal(t, 1, count, "unknown cited posts are skipped")
}

func TestIntegration_RecentPostsWindowAndOrder(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.UpsertChannel(ctx, testChannel("Yle"))
	require.NoError(t, err)

	now := time.Now()
	for i, age := range []time.Duration{30 * time.Hour, 2 * time.Hour, time.Hour} {
		_, err := database.InsertPostIfAbsent(ctx, domain.Post{ID: i + 1, ChannelID: testChannelID, Date: now.Add(-age)})
		require.NoError(t, err)
	}

	recent, err := database.RecentPosts(ctx, []string{"yle_news"}, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].MessageID)
	assert.Equal(t, 2, recent[1].MessageID)
	assert.Empty(t, recent[0].Body)

	none, err := database.RecentPosts(ctx, []string{"other"}, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}
