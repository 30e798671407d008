package services

import (
	"errors"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/pkg/metrics"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const notificationListLimit = 20

type NotificationIn struct {
	UserID  uint    `json:"userId"`
	Title   string  `json:"title" binding:"required"`
	Message string  `json:"message" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	OrderID *uint   `json:"orderId"`
	Link    *string `json:"link"`
}

// NotificationService stores notifications for polling clients. Nothing is pushed.
type NotificationService struct {
	Repo     *repository.NotificationRepository
	UserRepo *repository.UserRepository
	log      *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, ur *repository.UserRepository) *NotificationService {
	return &NotificationService{Repo: repo, UserRepo: ur, log: logger.Named("notification")}
}

func (s *NotificationService) Create(in NotificationIn) (*entity.Notification, error) {
	n := &entity.Notification{
		UserID:  in.UserID,
		Title:   in.Title,
		Message: in.Message,
		Type:    in.Type,
		OrderID: in.OrderID,
		Link:    in.Link,
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(in.Type).Inc()
	return n, nil
}

// ListForUser returns the 20 most recent notifications.
func (s *NotificationService) ListForUser(userID uint) ([]entity.Notification, error) {
	return s.Repo.ListForUser(userID, notificationListLimit)
}

func (s *NotificationService) MarkRead(id uint) (*entity.Notification, error) {
	if err := s.Repo.MarkRead(id); err != nil {
		return nil, err
	}
	n, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	return n, err
}

// MarkReadForUser marks a notification read only when it belongs to userID.
// Someone else's notification looks the same as a missing one.
func (s *NotificationService) MarkReadForUser(userID, id uint) (*entity.Notification, error) {
	n, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	return s.MarkRead(id)
}

// MarkAllRead returns how many unread notifications were flipped.
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return s.Repo.MarkAllRead(userID)
}

// NotifyAdmins creates one notification per admin, one after another. A failed
// insert does not undo or stop the others; the first error is returned.
func (s *NotificationService) NotifyAdmins(in NotificationIn) error {
	admins, err := s.UserRepo.FindAdmins()
	if err != nil {
		return err
	}
	var first error
	for _, a := range admins {
		in.UserID = a.ID
		if _, err := s.Create(in); err != nil {
			s.log.Warn("admin notification failed", zap.Uint("adminId", a.ID), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
