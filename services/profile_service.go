package services

import (
	"errors"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB          *gorm.DB
	UserRepo    *repository.UserRepository
	OrderRepo   *repository.OrderRepository
	CartRepo    *repository.CartRepository
	NotifRepo   *repository.NotificationRepository
	RatingRepo  *repository.RatingRepository
	LikeRepo    *repository.LikeRepository
	SupportRepo *repository.SupportRepository
	Ratings     *RatingService
	log         *zap.Logger
}

func NewProfileService(
	db *gorm.DB,
	ur *repository.UserRepository,
	or *repository.OrderRepository,
	cr *repository.CartRepository,
	nr *repository.NotificationRepository,
	rr *repository.RatingRepository,
	lr *repository.LikeRepository,
	sr *repository.SupportRepository,
	ratings *RatingService,
) *ProfileService {
	return &ProfileService{
		DB:          db,
		UserRepo:    ur,
		OrderRepo:   or,
		CartRepo:    cr,
		NotifRepo:   nr,
		RatingRepo:  rr,
		LikeRepo:    lr,
		SupportRepo: sr,
		Ratings:     ratings,
		log:         logger.Named("profile"),
	}
}

type ProfileUpdateIn struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type ProfileStats struct {
	LoyaltyPoints     int             `json:"loyaltyPoints"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	ActiveOrders      int             `json:"activeOrders"`
	TotalAcquisitions int             `json:"totalAcquisitions"`
	TotalOrders       int             `json:"totalOrders"`
}

func (s *ProfileService) Get(userID uint) (*entity.User, error) {
	u, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Update changes name and email only. A new email must not belong to someone else.
func (s *ProfileService) Update(userID uint, in ProfileUpdateIn) (*entity.User, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != "" && email != u.Email {
			n, err := s.UserRepo.CountByEmail(email)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				return nil, ErrEmailTaken
			}
			updates["email"] = email
		}
	}
	if len(updates) > 0 {
		if err := s.UserRepo.Update(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(userID)
}

func (s *ProfileService) ListUsers() ([]entity.User, error) {
	return s.UserRepo.ListAll()
}

// Stats counts an order as active until it is both paid and delivered.
func (s *ProfileService) Stats(userID uint) (*ProfileStats, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.OrderRepo.ListPlainForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	st := &ProfileStats{LoyaltyPoints: u.LoyaltyPoints, TotalSpent: decimal.Zero, TotalOrders: len(orders)}
	for _, o := range orders {
		if !o.IsPaid() || o.DeliveryStatus != entity.DeliveryDelivered {
			st.ActiveOrders++
		}
		if o.IsPaid() {
			st.TotalAcquisitions++
			st.TotalSpent = st.TotalSpent.Add(o.TotalPrice)
		}
	}
	return st, nil
}

// Delete removes the account and everything hanging off it. Accounts with
// paid orders are kept so sales history stays intact.
func (s *ProfileService) Delete(userID uint) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		orders, err := s.OrderRepo.ListPlainForUser(tx, userID)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.IsPaid() {
				return ErrHasPaidOrders
			}
		}

		rated, err := s.RatingRepo.MaterialIDsForUser(tx, userID)
		if err != nil {
			return err
		}
		if err := s.RatingRepo.DeleteForUser(tx, userID); err != nil {
			return err
		}
		for _, mid := range rated {
			if err := s.Ratings.RefreshStatsTx(tx, mid); err != nil {
				return err
			}
		}

		steps := []func(*gorm.DB, uint) error{
			s.CartRepo.DeleteForUser,
			s.NotifRepo.DeleteForUser,
			s.LikeRepo.DeleteForUser,
			s.SupportRepo.DeleteForUser,
			s.OrderRepo.DeleteUnpaidForUser,
			s.UserRepo.Delete,
		}
		for _, step := range steps {
			if err := step(tx, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("account deleted", zap.Uint("userId", userID))
	return nil
}
