package processor

import (
	"context"

	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/notifier"
	"github.com/mauv0809/hoopsheet/internal/stats"
)

// Store defines the database operations required by the processor.
type Store interface {
	stats.Store
	GetEvent(ctx context.Context, ownerID, eventID string) (*domain.Event, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
