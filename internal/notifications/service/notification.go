package service

import (
	"context"
	"errors"
	"strings"

	notificationserrors "medizy/internal/notifications/errors"
	"medizy/internal/notifications/repository"
	"medizy/pkg/config"
	apperrors "medizy/pkg/errors"
	"medizy/pkg/kafka"
	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	// HandleEvent stores one in-app notification delivered over Kafka.
	HandleEvent(ctx context.Context, msg kafka.Message) error
	ListForActor(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, actor model.Actor, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	cfg  *config.Config
}

func NewNotificationService(repo repository.NotificationRepository, cfg *config.Config) NotificationService {
	return &notificationService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *notificationService) HandleEvent(ctx context.Context, msg kafka.Message) error {
	var event model.NotificationEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}

	if event.EventID == "" {
		event.EventID = msg.GetEventID()
	}
	event.UserID = strings.TrimSpace(event.UserID)
	if event.UserID == "" || strings.TrimSpace(event.Title) == "" {
		return kafka.NewPermanentError("notification event is missing user_id or title", kafka.ErrInvalidMessage)
	}

	notification := &model.Notification{
		EventID:   event.EventID,
		UserID:    event.UserID,
		Title:     event.Title,
		Body:      event.Body,
		Data:      event.Data,
		CreatedAt: event.OccurredAt,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		if errors.Is(err, notificationserrors.ErrDuplicateEvent) {
			s.cfg.Log.Debug("Skipping redelivered notification event", "event_id", event.EventID, "user_id", event.UserID)
			return nil
		}
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return kafka.NewTransientError("failed to store notification", err)
		}
		return err
	}

	s.cfg.Log.Debug("Stored notification", "id", notification.ID, "event_id", event.EventID, "user_id", event.UserID)
	return nil
}

func (s *notificationService) ListForActor(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Notification, int64, error) {
	notifications, err := s.repo.FindByUser(ctx, actor.ID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list notifications", "user_id", actor.ID, "error", err)
		return nil, 0, apperrors.Internal("Failed to list notifications", err)
	}

	total, err := s.repo.CountByUser(ctx, actor.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to count notifications", "user_id", actor.ID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count notifications", err)
	}
	return notifications, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor model.Actor, id string) error {
	err := s.repo.MarkRead(ctx, id, actor.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, notificationserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid notification ID format").WithField("id")
	case errors.Is(err, notificationserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Notification", id)
	default:
		s.cfg.Log.Error("Failed to mark notification read", "id", id, "user_id", actor.ID, "error", err)
		return apperrors.Internal("Failed to mark notification read", err)
	}
}
