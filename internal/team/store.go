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
	"github.com/mauv0809/hoopsheet/internal/metrics"
)

const (
	collectionPlayers    = "players"
	collectionEvents     = "events"
	collectionAttendance = "attendance"
	collectionStatistics = "statistics"
	collectionProfiles   = "profiles"
)

// New creates a new TeamStore.
func New(db *sql.DB, metrics metrics.Metrics) TeamStore {
	return &store{
		db:      db,
		metrics: metrics,
	}
}

// track records the outcome of a write against collection and passes err through.
func (s *store) track(collection string, err error) error {
	if err != nil {
		s.metrics.IncStoreWriteFailures(collection)
		return err
	}
	s.metrics.IncStoreWrites(collection)
	return nil
}

func (s *store) ListPlayers(ctx context.Context, ownerID string) ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, position, jersey_number, owner_id, created_at
		FROM players
		WHERE owner_id = ?
		ORDER BY name COLLATE NOCASE, id
	`, ownerID)
	if err != nil {
		log.Error("Failed to query players", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := []domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) GetPlayer(ctx context.Context, ownerID, playerID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayer(ctx, s.db, ownerID, playerID)
}

func (s *store) getPlayer(ctx context.Context, q querier, ownerID, playerID string) (*domain.Player, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, name, position, jersey_number, owner_id, created_at
		FROM players
		WHERE id = ? AND owner_id = ?
	`, playerID, ownerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (s *store) CreatePlayer(ctx context.Context, ownerID string, input PlayerInput) (*domain.Player, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	player := &domain.Player{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		OwnerID:      ownerID,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, position, jersey_number, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, player.ID, player.Name, nullString(player.Position), nullInt(player.JerseyNumber), ownerID, player.CreatedAt.Unix())
	if err := s.track(collectionPlayers, err); err != nil {
		log.Error("Failed to create player", "error", err, "owner", ownerID)
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	log.Info("Created player", "playerID", player.ID, "name", player.Name)
	return player, nil
}

func (s *store) UpdatePlayer(ctx context.Context, ownerID, playerID string, input PlayerInput) (*domain.Player, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE players SET name = ?, position = ?, jersey_number = ?
		WHERE id = ? AND owner_id = ?
	`, input.Name, nullString(input.Position), nullInt(input.JerseyNumber), playerID, ownerID)
	if err := s.track(collectionPlayers, err); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	if err := requireAffected(res, "player", playerID); err != nil {
		return nil, err
	}
	log.Info("Updated player", "playerID", playerID)
	return s.getPlayer(ctx, s.db, ownerID, playerID)
}

// DeletePlayer removes the player together with its statistics and attendance.
func (s *store) DeletePlayer(ctx context.Context, ownerID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM statistics WHERE player_id = ? AND owner_id = ?", playerID, ownerID); err != nil {
			return fmt.Errorf("failed to delete player statistics: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE player_id = ? AND owner_id = ?", playerID, ownerID); err != nil {
			return fmt.Errorf("failed to delete player attendance: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = ? AND owner_id = ?", playerID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to delete player: %w", err)
		}
		return requireAffected(res, "player", playerID)
	})
	if err := s.track(collectionPlayers, err); err != nil {
		return err
	}
	log.Info("Deleted player", "playerID", playerID)
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*domain.Player, error) {
	var (
		p         domain.Player
		position  sql.NullString
		jersey    sql.NullInt64
		createdAt int64
	)
	if err := scanner.Scan(&p.ID, &p.Name, &position, &jersey, &p.OwnerID, &createdAt); err != nil {
		return nil, err
	}
	p.Position = stringPtr(position)
	p.JerseyNumber = intPtr(jersey)
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
