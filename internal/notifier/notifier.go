package notifier

import (
	"context"

	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about team events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For games whose box score was just saved
	SendGameRecap(ctx context.Context, recap *Recap, dryRun bool) error
}

// Recap is the summary of one game: the game itself, its box score and the
// team averages after it. ChannelID is the owner's recap channel.
type Recap struct {
	ChannelID string
	Event     domain.Event
	BoxScore  []stats.PlayerLine
	Team      stats.TeamAverage
}

// TopScorer returns the box-score line with the most points, or false for an
// empty box score. Ties go to the earlier line.
func (r *Recap) TopScorer() (stats.PlayerLine, bool) {
	if len(r.BoxScore) == 0 {
		return stats.PlayerLine{}, false
	}
	top := r.BoxScore[0]
	for _, line := range r.BoxScore[1:] {
		if line.Points > top.Points {
			top = line
		}
	}
	return top, true
}
