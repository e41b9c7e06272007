package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
)

const recentAnnouncementLimit = 20

// NotificationService persists announcements and fans them out live over
// the academy's Redis channel, where the websocket hub picks them up.
type NotificationService struct {
	announcements *repository.AnnouncementRepository
	rdb           *redis.Client
	log           zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(announcements *repository.AnnouncementRepository, rdb *redis.Client, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		announcements: announcements,
		rdb:           rdb,
		log:           log.With().Str("component", "notification_service").Logger(),
	}
}

// Announce stores an announcement and publishes it to the academy channel.
// A failed publish is logged only; subscribers catch up from the stored
// list on their next connect.
func (s *NotificationService) Announce(ctx context.Context, academyID, authorID int, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		AcademyID: academyID,
		AuthorID:  authorID,
		Title:     req.Title,
		Body:      req.Body,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(a)
	channel := config.CacheKey.AcademyNotifyChannel(academyID)
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Error().Err(err).Int("academy_id", academyID).Msg("Announcement publish failed")
	}

	s.log.Info().Int64("announcement_id", a.ID).Int("academy_id", academyID).Msg("Announcement posted")
	return a, nil
}

// Recent retrieves the latest announcements for an academy.
func (s *NotificationService) Recent(ctx context.Context, academyID int) ([]model.Announcement, error) {
	list, err := s.announcements.ListRecent(ctx, academyID, recentAnnouncementLimit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Announcement{}
	}
	return list, nil
}

// Subscribe opens a Redis subscription on an academy's announcement
// channel. The caller owns the subscription and must close it.
func (s *NotificationService) Subscribe(ctx context.Context, academyID int) *redis.PubSub {
	return s.rdb.Subscribe(ctx, config.CacheKey.AcademyNotifyChannel(academyID))
}
