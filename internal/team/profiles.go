package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/domain"
)

func (s *store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfile(ctx, userID)
}

func (s *store) getProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var (
		p         domain.Profile
		avatarURL sql.NullString
		channelID sql.NullString
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, "SELECT id, username, avatar_url, slack_channel_id, updated_at FROM profiles WHERE id = ?", userID).
		Scan(&p.ID, &p.Username, &avatarURL, &channelID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.AvatarURL = stringPtr(avatarURL)
	p.SlackChannelID = stringPtr(channelID)
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &p, nil
}

func (s *store) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE profiles SET username = ?, avatar_url = ?, slack_channel_id = ?, updated_at = ? WHERE id = ?",
		input.Username, nullString(input.AvatarURL), nullString(input.SlackChannelID), time.Now().Unix(), userID)
	if err := s.track(collectionProfiles, err); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := requireAffected(res, "profile", userID); err != nil {
		return nil, err
	}
	log.Info("Updated profile", "userID", userID)
	return s.getProfile(ctx, userID)
}
