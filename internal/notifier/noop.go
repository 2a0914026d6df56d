package notifier

import (
	"context"

	"github.com/charmbracelet/log"
)

var _ Notifier = Noop{}

// Noop is used when no notification provider is configured.
type Noop struct{}

func (Noop) SendGameRecap(ctx context.Context, recap *Recap, dryRun bool) error {
	log.Debug("Notifications disabled, skipping game recap", "eventID", recap.Event.ID)
	return nil
}
