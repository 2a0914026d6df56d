package stats

import "github.com/mauv0809/hoopsheet/internal/domain"

const (
	// UnknownEventTitle labels a series line whose event could not be resolved.
	UnknownEventTitle = "unknown event"
	// UnknownPlayerName labels a box-score line whose player could not be resolved.
	UnknownPlayerName = "unknown player"

	dateLayout = "2006-01-02"
)

// TeamAverage is the per-game average of the whole team.
type TeamAverage struct {
	Points   float64 `json:"points"`
	Rebounds float64 `json:"rebounds"`
	Assists  float64 `json:"assists"`
	Steals   float64 `json:"steals"`
	Blocks   float64 `json:"blocks"`
	// GamesPlayed is the denominator used. It is 1 when there are no games.
	GamesPlayed    int `json:"games_played"`
	StatisticCount int `json:"statistic_count"`
}

// PlayerAverage is the per-game average of one player.
type PlayerAverage struct {
	PlayerID     string  `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	Position     *string `json:"position,omitempty"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	Points       float64 `json:"points"`
	Rebounds     float64 `json:"rebounds"`
	Assists      float64 `json:"assists"`
	Steals       float64 `json:"steals"`
	Blocks       float64 `json:"blocks"`
	GamesPlayed  int     `json:"games_played"`
}

// GameLine is one row of a player's series.
type GameLine struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	EventDate  string `json:"event_date"`
	Points     int    `json:"points"`
	Rebounds   int    `json:"rebounds"`
	Assists    int    `json:"assists"`
	Steals     int    `json:"steals"`
	Blocks     int    `json:"blocks"`
}

// PlayerLine is one row of an event's box score.
type PlayerLine struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
	Points       int    `json:"points"`
	Rebounds     int    `json:"rebounds"`
	Assists      int    `json:"assists"`
	Steals       int    `json:"steals"`
	Blocks       int    `json:"blocks"`
}

// Snapshot is everything the aggregator needs for one owner.
type Snapshot struct {
	OwnerID    string
	Players    []domain.Player
	Games      []domain.Event
	Statistics []domain.StatisticRecord
}

// totals accumulates the five box-score counters.
type totals struct {
	points, rebounds, assists, steals, blocks int
}

func (t *totals) add(s domain.StatisticRecord) {
	t.points += s.Points
	t.rebounds += s.Rebounds
	t.assists += s.Assists
	t.steals += s.Steals
	t.blocks += s.Blocks
}
