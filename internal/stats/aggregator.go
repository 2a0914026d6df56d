package stats

import (
	"math"

	"github.com/mauv0809/hoopsheet/internal/domain"
)

// TeamAverages divides the team's summed counters by the number of games.
// With no games the denominator falls back to 1, so the averages are all zero
// and GamesPlayed reports 1.
func TeamAverages(statistics []domain.StatisticRecord, games []domain.Event) TeamAverage {
	var sum totals
	for _, s := range statistics {
		sum.add(s)
	}
	n := max(1, len(games))
	return TeamAverage{
		Points:         average(sum.points, n),
		Rebounds:       average(sum.rebounds, n),
		Assists:        average(sum.assists, n),
		Steals:         average(sum.steals, n),
		Blocks:         average(sum.blocks, n),
		GamesPlayed:    n,
		StatisticCount: len(statistics),
	}
}

// PlayerAverages returns one entry per player with at least one statistic record,
// in the order of players. Each record counts as one game played. A player id
// listed twice is reported once, at its first position.
func PlayerAverages(players []domain.Player, statistics []domain.StatisticRecord) []PlayerAverage {
	type acc struct {
		sum   totals
		games int
	}
	byPlayer := make(map[string]*acc, len(players))
	for _, p := range players {
		byPlayer[p.ID] = &acc{}
	}
	for _, s := range statistics {
		a, ok := byPlayer[s.PlayerID]
		if !ok {
			continue
		}
		a.sum.add(s)
		a.games++
	}

	averages := make([]PlayerAverage, 0, len(players))
	emitted := make(map[string]bool, len(players))
	for _, p := range players {
		a := byPlayer[p.ID]
		if a.games == 0 || emitted[p.ID] {
			continue
		}
		emitted[p.ID] = true
		n := max(1, a.games)
		averages = append(averages, PlayerAverage{
			PlayerID:     p.ID,
			PlayerName:   p.Name,
			Position:     p.Position,
			JerseyNumber: p.JerseyNumber,
			Points:       average(a.sum.points, n),
			Rebounds:     average(a.sum.rebounds, n),
			Assists:      average(a.sum.assists, n),
			Steals:       average(a.sum.steals, n),
			Blocks:       average(a.sum.blocks, n),
			GamesPlayed:  a.games,
		})
	}
	return averages
}

// PlayerSeries projects a player's statistic records onto their events,
// keeping the order of statistics.
func PlayerSeries(playerID string, statistics []domain.StatisticRecord, events []domain.Event) []GameLine {
	byID := make(map[string]domain.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	lines := []GameLine{}
	for _, s := range statistics {
		if s.PlayerID != playerID {
			continue
		}
		line := GameLine{
			EventID:    s.EventID,
			EventTitle: UnknownEventTitle,
			Points:     s.Points,
			Rebounds:   s.Rebounds,
			Assists:    s.Assists,
			Steals:     s.Steals,
			Blocks:     s.Blocks,
		}
		if e, ok := byID[s.EventID]; ok {
			line.EventTitle = e.Title
			line.EventDate = e.Date.Format(dateLayout)
		}
		lines = append(lines, line)
	}
	return lines
}

// EventSeries is the box score of one event, keeping the order of statistics.
func EventSeries(eventID string, statistics []domain.StatisticRecord, players []domain.Player) []PlayerLine {
	byID := make(map[string]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	lines := []PlayerLine{}
	for _, s := range statistics {
		if s.EventID != eventID {
			continue
		}
		line := PlayerLine{
			PlayerID:   s.PlayerID,
			PlayerName: UnknownPlayerName,
			Points:     s.Points,
			Rebounds:   s.Rebounds,
			Assists:    s.Assists,
			Steals:     s.Steals,
			Blocks:     s.Blocks,
		}
		if p, ok := byID[s.PlayerID]; ok {
			line.PlayerName = p.Name
			line.JerseyNumber = p.JerseyNumber
		}
		lines = append(lines, line)
	}
	return lines
}

// DeriveGameResult compares the two scores. A missing score yields ResultNone.
func DeriveGameResult(teamScore, opponentScore *int) domain.GameResult {
	if teamScore == nil || opponentScore == nil {
		return domain.ResultNone
	}
	switch {
	case *teamScore > *opponentScore:
		return domain.ResultWin
	case *teamScore < *opponentScore:
		return domain.ResultLoss
	default:
		return domain.ResultDraw
	}
}

// average rounds sum/n to one decimal, half away from zero.
func average(sum, n int) float64 {
	return roundOne(float64(sum) / float64(n))
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
