package notifier

import (
	"context"
	"sync"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendGameRecapFunc func(recap *Recap, dryRun bool) error

	// Call records
	SendGameRecapCalls []struct {
		Recap  *Recap
		DryRun bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameRecapCalls = nil
}

func (m *Mock) SendGameRecap(ctx context.Context, recap *Recap, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameRecapCalls = append(m.SendGameRecapCalls, struct {
		Recap  *Recap
		DryRun bool
	}{recap, dryRun})
	if m.SendGameRecapFunc != nil {
		return m.SendGameRecapFunc(recap, dryRun)
	}
	return nil
}
