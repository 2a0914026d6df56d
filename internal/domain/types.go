package domain

import "time"

// EventType distinguishes trainings from games.
type EventType string

const (
	EventTraining EventType = "training"
	EventGame     EventType = "game"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return t == EventTraining || t == EventGame
}

// GameResult is the outcome of a game from the team's point of view.
// The zero value means no result, which is the case whenever a score is missing.
type GameResult string

const (
	ResultNone GameResult = ""
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
	ResultDraw GameResult = "draw"
)

// Player is a member of the owner's roster.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Position     *string   `json:"position,omitempty"`
	JerseyNumber *int      `json:"jersey_number,omitempty"`
	OwnerID      string    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Event is a training session or a game.
type Event struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Type          EventType  `json:"type"`
	Date          time.Time  `json:"date"`
	Location      *string    `json:"location,omitempty"`
	Opponent      *string    `json:"opponent,omitempty"`
	TeamScore     *int       `json:"team_score,omitempty"`
	OpponentScore *int       `json:"opponent_score,omitempty"`
	Result        GameResult `json:"result,omitempty"`
	OwnerID       string     `json:"owner_id"`
}

// AttendanceRecord marks whether a player was present at an event.
type AttendanceRecord struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	PlayerID string `json:"player_id"`
	Present  bool   `json:"present"`
	OwnerID  string `json:"owner_id"`
}

// StatisticRecord is one player's box-score line for one event.
type StatisticRecord struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
	Rebounds int    `json:"rebounds"`
	Assists  int    `json:"assists"`
	Steals   int    `json:"steals"`
	Blocks   int    `json:"blocks"`
	OwnerID  string `json:"owner_id"`
}

// Profile holds the display settings of a user.
type Profile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	// SlackChannelID receives the owner's game recaps. Nil disables them.
	SlackChannelID *string   `json:"slack_channel_id,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EventFilter narrows an event listing. Zero values match everything.
type EventFilter struct {
	Type EventType
}

// AttendanceFilter narrows an attendance listing.
type AttendanceFilter struct {
	EventID string
}

// StatisticFilter narrows a statistics listing.
type StatisticFilter struct {
	EventID  string
	PlayerID string
}
