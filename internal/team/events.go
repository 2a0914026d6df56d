package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/stats"
)

const eventColumns = "id, title, type, date, location, opponent, team_score, opponent_score, result, owner_id"

func (s *store) ListEvents(ctx context.Context, ownerID string, filter domain.EventFilter) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + eventColumns + " FROM events WHERE owner_id = ?"
	args := []any{ownerID}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query events", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *store) GetEvent(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getEvent(ctx, s.db, ownerID, eventID)
}

func (s *store) getEvent(ctx context.Context, q querier, ownerID, eventID string) (*domain.Event, error) {
	row := q.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ? AND owner_id = ?", eventID, ownerID)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// CreateEvent stores a new event. The result is derived from the scores.
func (s *store) CreateEvent(ctx context.Context, ownerID string, input EventInput) (*domain.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	event := eventFromInput(uuid.NewString(), ownerID, input)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.Title, event.Type, event.Date.Unix(), nullString(event.Location), nullString(event.Opponent),
		nullInt(event.TeamScore), nullInt(event.OpponentScore), nullResult(event.Result), ownerID)
	if err := s.track(collectionEvents, err); err != nil {
		log.Error("Failed to create event", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	log.Info("Created event", "eventID", event.ID, "type", event.Type, "result", event.Result)
	return event, nil
}

// UpdateEvent replaces the event and re-derives its result.
func (s *store) UpdateEvent(ctx context.Context, ownerID, eventID string, input EventInput) (*domain.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	event := eventFromInput(eventID, ownerID, input)
	res, err := s.db.ExecContext(ctx, `
		UPDATE events SET title = ?, type = ?, date = ?, location = ?, opponent = ?,
			team_score = ?, opponent_score = ?, result = ?
		WHERE id = ? AND owner_id = ?
	`, event.Title, event.Type, event.Date.Unix(), nullString(event.Location), nullString(event.Opponent),
		nullInt(event.TeamScore), nullInt(event.OpponentScore), nullResult(event.Result), eventID, ownerID)
	if err := s.track(collectionEvents, err); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if err := requireAffected(res, "event", eventID); err != nil {
		return nil, err
	}
	log.Info("Updated event", "eventID", eventID, "result", event.Result)
	return event, nil
}

// DeleteEvent removes the event together with its statistics and attendance.
func (s *store) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM statistics WHERE event_id = ? AND owner_id = ?", eventID, ownerID); err != nil {
			return fmt.Errorf("failed to delete event statistics: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE event_id = ? AND owner_id = ?", eventID, ownerID); err != nil {
			return fmt.Errorf("failed to delete event attendance: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ? AND owner_id = ?", eventID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return requireAffected(res, "event", eventID)
	})
	if err := s.track(collectionEvents, err); err != nil {
		return err
	}
	log.Info("Deleted event", "eventID", eventID)
	return nil
}

func eventFromInput(id, ownerID string, input EventInput) *domain.Event {
	return &domain.Event{
		ID:            id,
		Title:         input.Title,
		Type:          input.Type,
		Date:          input.Date.UTC().Truncate(time.Second),
		Location:      input.Location,
		Opponent:      input.Opponent,
		TeamScore:     input.TeamScore,
		OpponentScore: input.OpponentScore,
		Result:        stats.DeriveGameResult(input.TeamScore, input.OpponentScore),
		OwnerID:       ownerID,
	}
}

// scanEvent scans a single event row. The stored result is ignored in favour
// of one derived from the stored scores.
func scanEvent(scanner interface{ Scan(...any) error }) (*domain.Event, error) {
	var (
		e                        domain.Event
		date                     int64
		location, opponent       sql.NullString
		teamScore, opponentScore sql.NullInt64
		result                   sql.NullString
	)
	err := scanner.Scan(&e.ID, &e.Title, &e.Type, &date, &location, &opponent, &teamScore, &opponentScore, &result, &e.OwnerID)
	if err != nil {
		return nil, err
	}
	e.Date = time.Unix(date, 0).UTC()
	e.Location = stringPtr(location)
	e.Opponent = stringPtr(opponent)
	e.TeamScore = intPtr(teamScore)
	e.OpponentScore = intPtr(opponentScore)
	e.Result = stats.DeriveGameResult(e.TeamScore, e.OpponentScore)
	if result.String != string(e.Result) {
		log.Warn("Stored event result is stale", "eventID", e.ID, "stored", result.String, "derived", e.Result)
	}
	return &e, nil
}

func nullResult(r domain.GameResult) sql.NullString {
	if r == domain.ResultNone {
		return sql.NullString{}
	}
	return sql.NullString{String: string(r), Valid: true}
}
