package team

import (
	"fmt"
	"strings"
)

func (in *PlayerInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if in.JerseyNumber != nil && *in.JerseyNumber < 0 {
		return fmt.Errorf("%w: jersey number must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in *EventInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, in.Type)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}
	if in.TeamScore != nil && *in.TeamScore < 0 {
		return fmt.Errorf("%w: team score must not be negative", ErrInvalidInput)
	}
	if in.OpponentScore != nil && *in.OpponentScore < 0 {
		return fmt.Errorf("%w: opponent score must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in AttendanceInput) validate() error {
	if in.EventID == "" || in.PlayerID == "" {
		return fmt.Errorf("%w: event_id and player_id are required", ErrInvalidInput)
	}
	return nil
}

func (in StatisticInput) validate() error {
	if in.EventID == "" || in.PlayerID == "" {
		return fmt.Errorf("%w: event_id and player_id are required", ErrInvalidInput)
	}
	counts := []struct {
		name  string
		value int
	}{
		{"points", in.Points},
		{"rebounds", in.Rebounds},
		{"assists", in.Assists},
		{"steals", in.Steals},
		{"blocks", in.Blocks},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, c.name)
		}
	}
	return nil
}

func (in *ProfileInput) validate() error {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if in.SlackChannelID != nil {
		channel := strings.TrimSpace(*in.SlackChannelID)
		if channel == "" {
			in.SlackChannelID = nil
		} else {
			in.SlackChannelID = &channel
		}
	}
	return nil
}
