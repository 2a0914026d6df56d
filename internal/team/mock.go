package team

import (
	"context"
	"sync"

	"github.com/mauv0809/hoopsheet/internal/domain"
)

var _ TeamStore = (*MockStore)(nil)

// MockStore is a mock implementation of the TeamStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ListPlayersFunc           func(ctx context.Context, ownerID string) ([]domain.Player, error)
	GetPlayerFunc             func(ctx context.Context, ownerID, playerID string) (*domain.Player, error)
	CreatePlayerFunc          func(ctx context.Context, ownerID string, input PlayerInput) (*domain.Player, error)
	UpdatePlayerFunc          func(ctx context.Context, ownerID, playerID string, input PlayerInput) (*domain.Player, error)
	DeletePlayerFunc          func(ctx context.Context, ownerID, playerID string) error
	ListEventsFunc            func(ctx context.Context, ownerID string, filter domain.EventFilter) ([]domain.Event, error)
	GetEventFunc              func(ctx context.Context, ownerID, eventID string) (*domain.Event, error)
	CreateEventFunc           func(ctx context.Context, ownerID string, input EventInput) (*domain.Event, error)
	UpdateEventFunc           func(ctx context.Context, ownerID, eventID string, input EventInput) (*domain.Event, error)
	DeleteEventFunc           func(ctx context.Context, ownerID, eventID string) error
	ListAttendanceFunc        func(ctx context.Context, ownerID string, filter domain.AttendanceFilter) ([]domain.AttendanceRecord, error)
	UpsertAttendanceFunc      func(ctx context.Context, ownerID string, input AttendanceInput) (*domain.AttendanceRecord, error)
	UpsertAttendanceBatchFunc func(ctx context.Context, ownerID, eventID string, inputs []AttendanceInput) ([]domain.AttendanceRecord, error)
	ListStatisticsFunc        func(ctx context.Context, ownerID string, filter domain.StatisticFilter) ([]domain.StatisticRecord, error)
	UpsertStatisticFunc       func(ctx context.Context, ownerID string, input StatisticInput) (*domain.StatisticRecord, error)
	UpsertStatisticsBatchFunc func(ctx context.Context, ownerID, eventID string, inputs []StatisticInput) ([]domain.StatisticRecord, error)
	GetProfileFunc            func(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfileFunc         func(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, error)

	// Call records
	DeletePlayerCalls          []string
	DeleteEventCalls           []string
	UpsertAttendanceBatchCalls []struct {
		EventID string
		Inputs  []AttendanceInput
	}
	UpsertStatisticsBatchCalls []struct {
		EventID string
		Inputs  []StatisticInput
	}
	ListStatisticsCalls []domain.StatisticFilter
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = nil
	m.DeleteEventCalls = nil
	m.UpsertAttendanceBatchCalls = nil
	m.UpsertStatisticsBatchCalls = nil
	m.ListStatisticsCalls = nil
}

func (m *MockStore) ListPlayers(ctx context.Context, ownerID string) ([]domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, ownerID, playerID string) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, ownerID, playerID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreatePlayer(ctx context.Context, ownerID string, input PlayerInput) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(ctx, ownerID, input)
	}
	return &domain.Player{ID: "mock-player", Name: input.Name, Position: input.Position, JerseyNumber: input.JerseyNumber, OwnerID: ownerID}, nil
}

func (m *MockStore) UpdatePlayer(ctx context.Context, ownerID, playerID string, input PlayerInput) (*domain.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(ctx, ownerID, playerID, input)
	}
	return &domain.Player{ID: playerID, Name: input.Name, Position: input.Position, JerseyNumber: input.JerseyNumber, OwnerID: ownerID}, nil
}

func (m *MockStore) DeletePlayer(ctx context.Context, ownerID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(ctx, ownerID, playerID)
	}
	return nil
}

func (m *MockStore) ListEvents(ctx context.Context, ownerID string, filter domain.EventFilter) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx, ownerID, filter)
	}
	return nil, nil
}

func (m *MockStore) GetEvent(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEventFunc != nil {
		return m.GetEventFunc(ctx, ownerID, eventID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreateEvent(ctx context.Context, ownerID string, input EventInput) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, ownerID, input)
	}
	return nil, nil
}

func (m *MockStore) UpdateEvent(ctx context.Context, ownerID, eventID string, input EventInput) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateEventFunc != nil {
		return m.UpdateEventFunc(ctx, ownerID, eventID, input)
	}
	return nil, nil
}

func (m *MockStore) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteEventCalls = append(m.DeleteEventCalls, eventID)
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(ctx, ownerID, eventID)
	}
	return nil
}

func (m *MockStore) ListAttendance(ctx context.Context, ownerID string, filter domain.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListAttendanceFunc != nil {
		return m.ListAttendanceFunc(ctx, ownerID, filter)
	}
	return nil, nil
}

func (m *MockStore) UpsertAttendance(ctx context.Context, ownerID string, input AttendanceInput) (*domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertAttendanceFunc != nil {
		return m.UpsertAttendanceFunc(ctx, ownerID, input)
	}
	return nil, nil
}

func (m *MockStore) UpsertAttendanceBatch(ctx context.Context, ownerID, eventID string, inputs []AttendanceInput) ([]domain.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertAttendanceBatchCalls = append(m.UpsertAttendanceBatchCalls, struct {
		EventID string
		Inputs  []AttendanceInput
	}{eventID, inputs})
	if m.UpsertAttendanceBatchFunc != nil {
		return m.UpsertAttendanceBatchFunc(ctx, ownerID, eventID, inputs)
	}
	return nil, nil
}

func (m *MockStore) ListStatistics(ctx context.Context, ownerID string, filter domain.StatisticFilter) ([]domain.StatisticRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListStatisticsCalls = append(m.ListStatisticsCalls, filter)
	if m.ListStatisticsFunc != nil {
		return m.ListStatisticsFunc(ctx, ownerID, filter)
	}
	return nil, nil
}

func (m *MockStore) UpsertStatistic(ctx context.Context, ownerID string, input StatisticInput) (*domain.StatisticRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertStatisticFunc != nil {
		return m.UpsertStatisticFunc(ctx, ownerID, input)
	}
	return nil, nil
}

func (m *MockStore) UpsertStatisticsBatch(ctx context.Context, ownerID, eventID string, inputs []StatisticInput) ([]domain.StatisticRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertStatisticsBatchCalls = append(m.UpsertStatisticsBatchCalls, struct {
		EventID string
		Inputs  []StatisticInput
	}{eventID, inputs})
	if m.UpsertStatisticsBatchFunc != nil {
		return m.UpsertStatisticsBatchFunc(ctx, ownerID, eventID, inputs)
	}
	return nil, nil
}

func (m *MockStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, input)
	}
	return nil, nil
}
