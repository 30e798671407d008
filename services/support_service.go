package services

import (
	"errors"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Publisher pushes stored support messages to live subscribers.
type Publisher interface {
	Publish(msg *entity.SupportMessage)
}

// SupportService keeps one conversation per user. Staff replies are stored
// in the user's conversation with IsAdmin set.
type SupportService struct {
	Repo      *repository.SupportRepository
	UserRepo  *repository.UserRepository
	Publisher Publisher
	log       *zap.Logger
}

func NewSupportService(repo *repository.SupportRepository, ur *repository.UserRepository) *SupportService {
	return &SupportService{Repo: repo, UserRepo: ur, log: logger.Named("support")}
}

// Send stores a message from the user into their own conversation.
func (s *SupportService) Send(userID uint, message string) (*entity.SupportMessage, error) {
	return s.store(userID, message, false)
}

// Reply stores a staff message into the conversation of userID.
func (s *SupportService) Reply(userID uint, message string) (*entity.SupportMessage, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.store(userID, message, true)
}

func (s *SupportService) Messages(userID uint) ([]entity.SupportMessage, error) {
	return s.Repo.ListForUser(userID)
}

// Conversations returns the latest message of every conversation.
func (s *SupportService) Conversations() ([]entity.SupportMessage, error) {
	return s.Repo.LatestPerUser()
}

func (s *SupportService) store(userID uint, message string, isAdmin bool) (*entity.SupportMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	m := &entity.SupportMessage{UserID: userID, Message: message, IsAdmin: isAdmin}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	if s.Publisher != nil {
		s.Publisher.Publish(m)
	}
	s.log.Debug("support message stored", zap.Uint("userId", userID), zap.Bool("isAdmin", isAdmin))
	return m, nil
}
