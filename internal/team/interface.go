package team

import (
	"context"

	"github.com/mauv0809/hoopsheet/internal/domain"
)

// TeamStore defines the interface for interacting with an owner's team data.
// Every method is scoped to ownerID; records of other owners are invisible.
type TeamStore interface {
	ListPlayers(ctx context.Context, ownerID string) ([]domain.Player, error)
	GetPlayer(ctx context.Context, ownerID, playerID string) (*domain.Player, error)
	CreatePlayer(ctx context.Context, ownerID string, input PlayerInput) (*domain.Player, error)
	UpdatePlayer(ctx context.Context, ownerID, playerID string, input PlayerInput) (*domain.Player, error)
	DeletePlayer(ctx context.Context, ownerID, playerID string) error

	ListEvents(ctx context.Context, ownerID string, filter domain.EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, ownerID, eventID string) (*domain.Event, error)
	CreateEvent(ctx context.Context, ownerID string, input EventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, ownerID, eventID string, input EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, ownerID, eventID string) error

	ListAttendance(ctx context.Context, ownerID string, filter domain.AttendanceFilter) ([]domain.AttendanceRecord, error)
	UpsertAttendance(ctx context.Context, ownerID string, input AttendanceInput) (*domain.AttendanceRecord, error)
	UpsertAttendanceBatch(ctx context.Context, ownerID, eventID string, inputs []AttendanceInput) ([]domain.AttendanceRecord, error)

	ListStatistics(ctx context.Context, ownerID string, filter domain.StatisticFilter) ([]domain.StatisticRecord, error)
	UpsertStatistic(ctx context.Context, ownerID string, input StatisticInput) (*domain.StatisticRecord, error)
	UpsertStatisticsBatch(ctx context.Context, ownerID, eventID string, inputs []StatisticInput) ([]domain.StatisticRecord, error)

	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, error)
}
