package team

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/hoopsheet/internal/domain"
)

const statisticColumns = "id, event_id, player_id, points, rebounds, assists, steals, blocks, owner_id"

func (s *store) ListStatistics(ctx context.Context, ownerID string, filter domain.StatisticFilter) ([]domain.StatisticRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + statisticColumns + " FROM statistics WHERE owner_id = ?"
	args := []any{ownerID}
	if filter.EventID != "" {
		query += " AND event_id = ?"
		args = append(args, filter.EventID)
	}
	if filter.PlayerID != "" {
		query += " AND player_id = ?"
		args = append(args, filter.PlayerID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query statistics", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	records := []domain.StatisticRecord{}
	for rows.Next() {
		r, err := scanStatistic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statistic row: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// UpsertStatistic sets the box-score line for one (event, player) pair.
func (s *store) UpsertStatistic(ctx context.Context, ownerID string, input StatisticInput) (*domain.StatisticRecord, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var record *domain.StatisticRecord
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		record, err = upsertStatistic(ctx, tx, ownerID, input)
		return err
	})
	if err := s.track(collectionStatistics, err); err != nil {
		return nil, err
	}
	return record, nil
}

// UpsertStatisticsBatch writes the box score of one event in a single transaction.
func (s *store) UpsertStatisticsBatch(ctx context.Context, ownerID, eventID string, inputs []StatisticInput) ([]domain.StatisticRecord, error) {
	for i := range inputs {
		if inputs[i].EventID == "" {
			inputs[i].EventID = eventID
		}
		if inputs[i].EventID != eventID {
			return nil, fmt.Errorf("%w: statistic for event %s in batch for event %s", ErrInvalidInput, inputs[i].EventID, eventID)
		}
		if err := inputs[i].validate(); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.StatisticRecord, 0, len(inputs))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, input := range inputs {
			record, err := upsertStatistic(ctx, tx, ownerID, input)
			if err != nil {
				return err
			}
			records = append(records, *record)
		}
		return nil
	})
	if err := s.track(collectionStatistics, err); err != nil {
		return nil, err
	}
	log.Info("Saved statistics", "eventID", eventID, "count", len(records))
	return records, nil
}

func upsertStatistic(ctx context.Context, tx *sql.Tx, ownerID string, input StatisticInput) (*domain.StatisticRecord, error) {
	if err := checkOwnership(ctx, tx, ownerID, input.EventID, input.PlayerID); err != nil {
		return nil, err
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO statistics (`+statisticColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id, player_id, owner_id) DO UPDATE SET
			points = excluded.points,
			rebounds = excluded.rebounds,
			assists = excluded.assists,
			steals = excluded.steals,
			blocks = excluded.blocks
	`, uuid.NewString(), input.EventID, input.PlayerID, input.Points, input.Rebounds, input.Assists, input.Steals, input.Blocks, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert statistic: %w", err)
	}

	row := tx.QueryRowContext(ctx, "SELECT "+statisticColumns+` FROM statistics
		WHERE event_id = ? AND player_id = ? AND owner_id = ?`, input.EventID, input.PlayerID, ownerID)
	r, err := scanStatistic(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back statistic: %w", err)
	}
	return r, nil
}

func scanStatistic(scanner interface{ Scan(...any) error }) (*domain.StatisticRecord, error) {
	var r domain.StatisticRecord
	err := scanner.Scan(&r.ID, &r.EventID, &r.PlayerID, &r.Points, &r.Rebounds, &r.Assists, &r.Steals, &r.Blocks, &r.OwnerID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
