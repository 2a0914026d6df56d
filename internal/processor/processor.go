package processor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/notifier"
	"github.com/mauv0809/hoopsheet/internal/pubsub"
	"github.com/mauv0809/hoopsheet/internal/stats"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		stats:    stats.NewService(store, metrics),
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// PublishStatsRecorded announces that the box score of eventID was saved.
func (p *Processor) PublishStatsRecorded(ctx context.Context, ownerID, eventID string, dryRun bool) error {
	msg := pubsub.StatsRecorded{OwnerID: ownerID, EventID: eventID}
	if dryRun {
		log.Info("[Dry Run] Would publish stats-recorded event", "eventID", eventID)
		return nil
	}
	if err := p.pubsub.SendMessage(ctx, pubsub.EventStatsRecorded, msg); err != nil {
		return fmt.Errorf("failed to publish stats-recorded event: %w", err)
	}
	return nil
}

// HandleStatsRecorded builds the recap of a game and sends it to the owner's
// recap channel. Events that are not games, and owners without a channel, are skipped.
func (p *Processor) HandleStatsRecorded(ctx context.Context, msg pubsub.StatsRecorded, dryRun bool) error {
	log.Info("Processing stats-recorded event", "eventID", msg.EventID, "owner", msg.OwnerID)

	recap, err := p.BuildRecap(ctx, msg.OwnerID, msg.EventID)
	if err != nil {
		return err
	}
	if recap.Event.Type != domain.EventGame {
		log.Info("Skipping recap for non-game event", "eventID", msg.EventID, "type", recap.Event.Type)
		return nil
	}
	if recap.ChannelID == "" {
		log.Info("Skipping recap, owner has no recap channel", "eventID", msg.EventID, "owner", msg.OwnerID)
		return nil
	}

	if err := p.notifier.SendGameRecap(ctx, recap, dryRun); err != nil {
		log.Error("Failed to send game recap", "error", err, "eventID", msg.EventID)
		return fmt.Errorf("failed to send game recap: %w", err)
	}
	p.metrics.IncRecapsProcessed()
	log.Info("Game recap sent", "eventID", msg.EventID, "lines", len(recap.BoxScore))
	return nil
}

// BuildRecap assembles the event, its box score, the owner's team averages and
// the owner's recap channel.
func (p *Processor) BuildRecap(ctx context.Context, ownerID, eventID string) (*notifier.Recap, error) {
	event, err := p.store.GetEvent(ctx, ownerID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	boxScore, err := p.stats.EventSeries(ctx, ownerID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to build box score: %w", err)
	}
	team, err := p.stats.TeamAverages(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute team averages: %w", err)
	}
	profile, err := p.store.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	recap := &notifier.Recap{Event: *event, BoxScore: boxScore, Team: team}
	if profile.SlackChannelID != nil {
		recap.ChannelID = *profile.SlackChannelID
	}
	return recap, nil
}
