package team

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/hoopsheet/internal/domain"
)

func (s *store) ListAttendance(ctx context.Context, ownerID string, filter domain.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, event_id, player_id, present, owner_id FROM attendance WHERE owner_id = ?"
	args := []any{ownerID}
	if filter.EventID != "" {
		query += " AND event_id = ?"
		args = append(args, filter.EventID)
	}
	query += " ORDER BY event_id, player_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query attendance", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := []domain.AttendanceRecord{}
	for rows.Next() {
		var r domain.AttendanceRecord
		if err := rows.Scan(&r.ID, &r.EventID, &r.PlayerID, &r.Present, &r.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// UpsertAttendance sets the presence flag for one (event, player) pair.
func (s *store) UpsertAttendance(ctx context.Context, ownerID string, input AttendanceInput) (*domain.AttendanceRecord, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var record *domain.AttendanceRecord
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		record, err = upsertAttendance(ctx, tx, ownerID, input)
		return err
	})
	if err := s.track(collectionAttendance, err); err != nil {
		return nil, err
	}
	return record, nil
}

// UpsertAttendanceBatch writes the attendance of several players for one event
// in a single transaction.
func (s *store) UpsertAttendanceBatch(ctx context.Context, ownerID, eventID string, inputs []AttendanceInput) ([]domain.AttendanceRecord, error) {
	for i := range inputs {
		if inputs[i].EventID == "" {
			inputs[i].EventID = eventID
		}
		if inputs[i].EventID != eventID {
			return nil, fmt.Errorf("%w: attendance for event %s in batch for event %s", ErrInvalidInput, inputs[i].EventID, eventID)
		}
		if err := inputs[i].validate(); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.AttendanceRecord, 0, len(inputs))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, input := range inputs {
			record, err := upsertAttendance(ctx, tx, ownerID, input)
			if err != nil {
				return err
			}
			records = append(records, *record)
		}
		return nil
	})
	if err := s.track(collectionAttendance, err); err != nil {
		return nil, err
	}
	log.Info("Saved attendance", "eventID", eventID, "count", len(records))
	return records, nil
}

func upsertAttendance(ctx context.Context, tx *sql.Tx, ownerID string, input AttendanceInput) (*domain.AttendanceRecord, error) {
	if err := checkOwnership(ctx, tx, ownerID, input.EventID, input.PlayerID); err != nil {
		return nil, err
	}
	// The unique (event_id, player_id, owner_id) index makes this a single
	// atomic write; concurrent saves of the same pair cannot duplicate it.
	_, err := tx.ExecContext(ctx, `
		INSERT INTO attendance (id, event_id, player_id, present, owner_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(event_id, player_id, owner_id) DO UPDATE SET
			present = excluded.present
	`, uuid.NewString(), input.EventID, input.PlayerID, input.Present, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	var r domain.AttendanceRecord
	err = tx.QueryRowContext(ctx, `
		SELECT id, event_id, player_id, present, owner_id FROM attendance
		WHERE event_id = ? AND player_id = ? AND owner_id = ?
	`, input.EventID, input.PlayerID, ownerID).Scan(&r.ID, &r.EventID, &r.PlayerID, &r.Present, &r.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back attendance: %w", err)
	}
	return &r, nil
}

// checkOwnership ensures both the event and the player belong to ownerID.
func checkOwnership(ctx context.Context, q querier, ownerID, eventID, playerID string) error {
	var eventOK, playerOK bool
	err := q.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM events WHERE id = ? AND owner_id = ?),
			EXISTS(SELECT 1 FROM players WHERE id = ? AND owner_id = ?)
	`, eventID, ownerID, playerID, ownerID).Scan(&eventOK, &playerOK)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !eventOK {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if !playerOK {
		return fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	return nil
}
