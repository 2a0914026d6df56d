package stats

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/metrics"
)

// Store is the read side of the team store needed to build views.
type Store interface {
	ListPlayers(ctx context.Context, ownerID string) ([]domain.Player, error)
	ListEvents(ctx context.Context, ownerID string, filter domain.EventFilter) ([]domain.Event, error)
	ListStatistics(ctx context.Context, ownerID string, filter domain.StatisticFilter) ([]domain.StatisticRecord, error)
}

// Service loads owner snapshots and runs the aggregator over them.
type Service struct {
	store   Store
	metrics metrics.Metrics
}

// NewService creates a new stats Service.
func NewService(store Store, metrics metrics.Metrics) *Service {
	return &Service{store: store, metrics: metrics}
}

// Snapshot reads the owner's players, games and statistics.
func (s *Service) Snapshot(ctx context.Context, ownerID string) (Snapshot, error) {
	players, err := s.store.ListPlayers(ctx, ownerID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list players: %w", err)
	}
	games, err := s.store.ListEvents(ctx, ownerID, domain.EventFilter{Type: domain.EventGame})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list games: %w", err)
	}
	statistics, err := s.store.ListStatistics(ctx, ownerID, domain.StatisticFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list statistics: %w", err)
	}
	snap := Snapshot{OwnerID: ownerID, Players: players, Games: games, Statistics: statistics}
	return snap.Scoped(), nil
}

// Scoped drops every record that does not belong to the snapshot owner.
func (snap Snapshot) Scoped() Snapshot {
	owner := snap.OwnerID
	out := Snapshot{OwnerID: owner}
	for _, p := range snap.Players {
		if p.OwnerID == owner {
			out.Players = append(out.Players, p)
		} else {
			log.Warn("Dropping player from foreign owner", "owner", owner, "playerID", p.ID)
		}
	}
	for _, e := range snap.Games {
		if e.OwnerID == owner {
			out.Games = append(out.Games, e)
		} else {
			log.Warn("Dropping event from foreign owner", "owner", owner, "eventID", e.ID)
		}
	}
	for _, st := range snap.Statistics {
		if st.OwnerID == owner {
			out.Statistics = append(out.Statistics, st)
		} else {
			log.Warn("Dropping statistic from foreign owner", "owner", owner, "statisticID", st.ID)
		}
	}
	return out
}

// TeamAverages computes the owner's team averages over game events.
func (s *Service) TeamAverages(ctx context.Context, ownerID string) (TeamAverage, error) {
	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return TeamAverage{}, err
	}
	defer s.observe("team_averages", time.Now())
	return TeamAverages(snap.Statistics, snap.Games), nil
}

// PlayerAverages computes per-player averages for the owner's roster.
func (s *Service) PlayerAverages(ctx context.Context, ownerID string) ([]PlayerAverage, error) {
	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defer s.observe("player_averages", time.Now())
	return PlayerAverages(snap.Players, snap.Statistics), nil
}

// PlayerSeries returns the player's game lines in chronological order.
func (s *Service) PlayerSeries(ctx context.Context, ownerID, playerID string) ([]GameLine, error) {
	statistics, err := s.store.ListStatistics(ctx, ownerID, domain.StatisticFilter{PlayerID: playerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list statistics: %w", err)
	}
	events, err := s.store.ListEvents(ctx, ownerID, domain.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer s.observe("player_series", time.Now())
	sortByEventDate(statistics, events)
	return PlayerSeries(playerID, statistics, events), nil
}

// EventSeries returns the box score of one event.
func (s *Service) EventSeries(ctx context.Context, ownerID, eventID string) ([]PlayerLine, error) {
	statistics, err := s.store.ListStatistics(ctx, ownerID, domain.StatisticFilter{EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to list statistics: %w", err)
	}
	players, err := s.store.ListPlayers(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer s.observe("event_series", time.Now())
	return EventSeries(eventID, statistics, players), nil
}

func (s *Service) observe(view string, start time.Time) {
	s.metrics.ObserveAggregationDuration(view, time.Since(start).Seconds())
}

// sortByEventDate orders statistics by the date of their event. Records whose
// event is unknown keep their relative order at the end.
func sortByEventDate(statistics []domain.StatisticRecord, events []domain.Event) {
	dates := make(map[string]time.Time, len(events))
	for _, e := range events {
		dates[e.ID] = e.Date
	}
	slices.SortStableFunc(statistics, func(a, b domain.StatisticRecord) int {
		da, okA := dates[a.EventID]
		db, okB := dates[b.EventID]
		switch {
		case okA && okB:
			return da.Compare(db)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}
