package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/notifier"
	"github.com/mauv0809/hoopsheet/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// ErrNoChannel is returned for a recap without a destination channel.
var ErrNoChannel = errors.New("no slack channel")

// Notifier handles sending notifications to Slack. Every owner posts to the
// channel on their profile, so the notifier itself holds only the bot token.
type Notifier struct {
	api     slackClient
	metrics metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:     api,
		metrics: metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:     api,
		metrics: metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, channelID string, message slack.Message, dryRun bool) (string, string, error) {
	if channelID == "" {
		return "", "", ErrNoChannel
	}
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channel, timestamp, err := s.api.PostMessageContext(
		ctx,
		channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionText(message.Text, false),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channel, "timestamp", timestamp)
	return channel, timestamp, nil
}

// SendGameRecap posts the recap of one game to recap.ChannelID.
func (s *Notifier) SendGameRecap(ctx context.Context, recap *notifier.Recap, dryRun bool) error {
	msg := s.formatGameRecap(recap)
	_, _, err := s.sendMessage(ctx, recap.ChannelID, msg, dryRun)
	return err
}

// formatGameRecap creates the Slack message for a game recap using Block Kit.
func (s *Notifier) formatGameRecap(recap *notifier.Recap) slack.Message {
	event := recap.Event
	blocks := make([]slack.Block, 0, 5)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏀 %s", event.Title), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	details := []string{event.Date.Format("Monday 02 Jan 2006, 15:04")}
	if event.Opponent != nil {
		details = append(details, "Opponent: "+*event.Opponent)
	}
	if event.Location != nil {
		details = append(details, "Location: "+*event.Location)
	}
	if score := formatScore(event); score != "" {
		details = append(details, score)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(details, "\n"), false, false), nil, nil))

	// Box score
	if len(recap.BoxScore) > 0 {
		table := "```\n" + formatBoxScore(recap.BoxScore) + "```"
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", table, false, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No statistics recorded.", false, false), nil, nil))
	}

	// Context - top scorer and team averages on single lines.
	var contextElements []slack.MixedElement
	if top, ok := recap.TopScorer(); ok && top.Points > 0 {
		contextElements = append(contextElements, slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("⭐ Top scorer: *%s* with %d points", top.PlayerName, top.Points), false, false))
	}
	contextElements = append(contextElements, slack.NewTextBlockObject("mrkdwn", formatTeamAverages(recap.Team), false, false))
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	msg := slack.NewBlockMessage(blocks...)
	msg.Text = fmt.Sprintf("Game recap: %s", event.Title)
	return msg
}

func formatScore(event domain.Event) string {
	if event.TeamScore == nil || event.OpponentScore == nil {
		return ""
	}
	label := map[domain.GameResult]string{
		domain.ResultWin:  "✅ Win",
		domain.ResultLoss: "❌ Loss",
		domain.ResultDraw: "🤝 Draw",
	}[event.Result]
	return fmt.Sprintf("*%s %d-%d*", label, *event.TeamScore, *event.OpponentScore)
}

func formatBoxScore(lines []stats.PlayerLine) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPLAYER\tPTS\tREB\tAST\tSTL\tBLK")
	for _, l := range lines {
		number := "-"
		if l.JerseyNumber != nil {
			number = fmt.Sprint(*l.JerseyNumber)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n", number, l.PlayerName, l.Points, l.Rebounds, l.Assists, l.Steals, l.Blocks)
	}
	w.Flush()
	return sb.String()
}

func formatTeamAverages(avg stats.TeamAverage) string {
	return fmt.Sprintf("Team averages over %d games: %.1f PTS · %.1f REB · %.1f AST · %.1f STL · %.1f BLK",
		avg.GamesPlayed, avg.Points, avg.Rebounds, avg.Assists, avg.Steals, avg.Blocks)
}
