package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/notifier"
	"github.com/mauv0809/hoopsheet/internal/pubsub"
	"github.com/mauv0809/hoopsheet/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// seededStore returns a store mock holding one owner's roster, two games and
// one training.
func seededStore() *team.MockStore {
	store := team.NewMock()
	day := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	events := map[string]domain.Event{
		"g1": {ID: "g1", Title: "Game 1", Type: domain.EventGame, Date: day, OwnerID: "owner",
			TeamScore: intPtr(60), OpponentScore: intPtr(55), Result: domain.ResultWin},
		"g2": {ID: "g2", Title: "Game 2", Type: domain.EventGame, Date: day.AddDate(0, 0, 7), OwnerID: "owner"},
		"t1": {ID: "t1", Title: "Practice", Type: domain.EventTraining, Date: day.AddDate(0, 0, 2), OwnerID: "owner"},
	}
	statistics := []domain.StatisticRecord{
		{ID: "s1", EventID: "g1", PlayerID: "p1", Points: 20, OwnerID: "owner"},
		{ID: "s2", EventID: "g1", PlayerID: "p2", Points: 10, OwnerID: "owner"},
		{ID: "s3", EventID: "g2", PlayerID: "p1", Points: 14, OwnerID: "owner"},
	}

	store.GetEventFunc = func(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
		e, ok := events[eventID]
		if !ok {
			return nil, team.ErrNotFound
		}
		return &e, nil
	}
	store.ListEventsFunc = func(ctx context.Context, ownerID string, filter domain.EventFilter) ([]domain.Event, error) {
		var out []domain.Event
		for _, id := range []string{"g1", "t1", "g2"} {
			if filter.Type == "" || events[id].Type == filter.Type {
				out = append(out, events[id])
			}
		}
		return out, nil
	}
	store.GetProfileFunc = func(ctx context.Context, userID string) (*domain.Profile, error) {
		if userID != "owner" {
			return nil, team.ErrNotFound
		}
		return &domain.Profile{ID: "owner", Username: "Coach", SlackChannelID: strPtr("C0OWNER")}, nil
	}
	store.ListPlayersFunc = func(ctx context.Context, ownerID string) ([]domain.Player, error) {
		return []domain.Player{
			{ID: "p1", Name: "Ann", OwnerID: "owner"},
			{ID: "p2", Name: "Bea", OwnerID: "owner"},
		}, nil
	}
	store.ListStatisticsFunc = func(ctx context.Context, ownerID string, filter domain.StatisticFilter) ([]domain.StatisticRecord, error) {
		var out []domain.StatisticRecord
		for _, s := range statistics {
			if filter.EventID == "" || s.EventID == filter.EventID {
				out = append(out, s)
			}
		}
		return out, nil
	}
	return store
}

func TestProcessor_HandleStatsRecorded(t *testing.T) {
	t.Run("game produces exactly one recap", func(t *testing.T) {
		// Setup
		store := seededStore()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(store, notif, metr, pubsub.NewMock())

		// Execute
		err := p.HandleStatsRecorded(context.Background(), pubsub.StatsRecorded{OwnerID: "owner", EventID: "g1"}, false)

		// Assert
		require.NoError(t, err)
		require.Len(t, notif.SendGameRecapCalls, 1, "A recap should be sent")
		recap := notif.SendGameRecapCalls[0].Recap
		assert.False(t, notif.SendGameRecapCalls[0].DryRun)
		assert.Equal(t, "C0OWNER", recap.ChannelID, "recaps go to the owner's channel")
		assert.Equal(t, "Game 1", recap.Event.Title)
		require.Len(t, recap.BoxScore, 2)
		assert.Equal(t, "Ann", recap.BoxScore[0].PlayerName)
		assert.Equal(t, 20, recap.BoxScore[0].Points)
		assert.Equal(t, 2, recap.Team.GamesPlayed)
		assert.Equal(t, 22.0, recap.Team.Points)
		assert.Equal(t, 1, metr.RecapsProcessed())
	})

	t.Run("training is skipped", func(t *testing.T) {
		store := seededStore()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(store, notif, metr, pubsub.NewMock())

		err := p.HandleStatsRecorded(context.Background(), pubsub.StatsRecorded{OwnerID: "owner", EventID: "t1"}, false)

		require.NoError(t, err)
		assert.Empty(t, notif.SendGameRecapCalls)
		assert.Zero(t, metr.RecapsProcessed())
	})

	t.Run("owner without a channel is skipped", func(t *testing.T) {
		store := seededStore()
		store.GetProfileFunc = func(ctx context.Context, userID string) (*domain.Profile, error) {
			return &domain.Profile{ID: userID, Username: "Coach"}, nil
		}
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(store, notif, metr, pubsub.NewMock())

		err := p.HandleStatsRecorded(context.Background(), pubsub.StatsRecorded{OwnerID: "owner", EventID: "g1"}, false)

		require.NoError(t, err)
		assert.Empty(t, notif.SendGameRecapCalls)
		assert.Zero(t, metr.RecapsProcessed())
	})

	t.Run("unknown event is an error", func(t *testing.T) {
		notif := notifier.NewMock()
		p := New(seededStore(), notif, metrics.NewMock(), pubsub.NewMock())

		err := p.HandleStatsRecorded(context.Background(), pubsub.StatsRecorded{OwnerID: "owner", EventID: "nope"}, false)

		assert.ErrorIs(t, err, team.ErrNotFound)
		assert.Empty(t, notif.SendGameRecapCalls)
	})

	t.Run("notifier failure is reported and not counted", func(t *testing.T) {
		notif := notifier.NewMock()
		notif.SendGameRecapFunc = func(recap *notifier.Recap, dryRun bool) error {
			return errors.New("slack down")
		}
		metr := metrics.NewMock()
		p := New(seededStore(), notif, metr, pubsub.NewMock())

		err := p.HandleStatsRecorded(context.Background(), pubsub.StatsRecorded{OwnerID: "owner", EventID: "g2"}, true)

		require.Error(t, err)
		require.Len(t, notif.SendGameRecapCalls, 1)
		assert.True(t, notif.SendGameRecapCalls[0].DryRun)
		assert.Zero(t, metr.RecapsProcessed())
	})
}

func TestProcessor_PublishStatsRecorded(t *testing.T) {
	ps := pubsub.NewMock()
	p := New(seededStore(), notifier.NewMock(), metrics.NewMock(), ps)

	require.NoError(t, p.PublishStatsRecorded(context.Background(), "owner", "g1", true))
	assert.Empty(t, ps.SendMessageCalls, "dry run publishes nothing")

	require.NoError(t, p.PublishStatsRecorded(context.Background(), "owner", "g1", false))
	require.Len(t, ps.SendMessageCalls, 1)
	assert.Equal(t, pubsub.EventStatsRecorded, ps.SendMessageCalls[0].Topic)
	assert.Equal(t, pubsub.StatsRecorded{OwnerID: "owner", EventID: "g1"}, ps.SendMessageCalls[0].Data)
}
