package team

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/metrics"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// store handles all database operations for the team.
type store struct {
	db      *sql.DB
	metrics metrics.Metrics
	mu      sync.RWMutex
}

// PlayerInput is the writable part of a player.
type PlayerInput struct {
	Name         string  `json:"name"`
	Position     *string `json:"position,omitempty"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
}

// EventInput is the writable part of an event. The result is always derived
// from the two scores.
type EventInput struct {
	Title         string           `json:"title"`
	Type          domain.EventType `json:"type"`
	Date          time.Time        `json:"date"`
	Location      *string          `json:"location,omitempty"`
	Opponent      *string          `json:"opponent,omitempty"`
	TeamScore     *int             `json:"team_score,omitempty"`
	OpponentScore *int             `json:"opponent_score,omitempty"`
}

// AttendanceInput sets the presence of one player at one event.
type AttendanceInput struct {
	EventID  string `json:"event_id"`
	PlayerID string `json:"player_id"`
	Present  bool   `json:"present"`
}

// StatisticInput sets one player's box-score line for one event.
type StatisticInput struct {
	EventID  string `json:"event_id"`
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
	Rebounds int    `json:"rebounds"`
	Assists  int    `json:"assists"`
	Steals   int    `json:"steals"`
	Blocks   int    `json:"blocks"`
}

// ProfileInput is the writable part of a profile.
type ProfileInput struct {
	Username       string  `json:"username"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	SlackChannelID *string `json:"slack_channel_id,omitempty"`
}
