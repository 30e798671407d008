package services

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"gorm.io/gorm"
)

// CartService keeps one cart per user. Absent carts and lines are never an error.
type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr}
}

// AddItem increments the existing line for the material or creates one with quantity 1.
// The material is not checked for existence here.
func (s *CartService) AddItem(userID, materialID uint) (*entity.CartItem, error) {
	c, err := s.CartRepo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	it, err := s.CartRepo.FindItem(c.ID, materialID)
	if err != nil {
		return nil, err
	}
	if it != nil {
		if err := s.CartRepo.SetQuantity(it, it.Quantity+1); err != nil {
			return nil, err
		}
		return it, nil
	}

	it = &entity.CartItem{CartID: c.ID, MaterialID: materialID, Quantity: 1}
	if err := s.CartRepo.CreateItem(it); err != nil {
		return nil, err
	}
	return it, nil
}

// DecrementItem lowers the quantity by one and drops the line at zero.
// It returns the updated line, or nil when the line is gone or never existed.
func (s *CartService) DecrementItem(userID, materialID uint) (*entity.CartItem, error) {
	it, err := s.findLine(userID, materialID)
	if err != nil || it == nil {
		return nil, err
	}
	if it.Quantity > 1 {
		if err := s.CartRepo.SetQuantity(it, it.Quantity-1); err != nil {
			return nil, err
		}
		return it, nil
	}
	return nil, s.CartRepo.DeleteItem(it.ID)
}

// RemoveItem deletes the line whatever its quantity. The removed line is returned.
func (s *CartService) RemoveItem(userID, materialID uint) (*entity.CartItem, error) {
	it, err := s.findLine(userID, materialID)
	if err != nil || it == nil {
		return nil, err
	}
	if err := s.CartRepo.DeleteItem(it.ID); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *CartService) GetCart(userID uint) (*entity.Cart, error) {
	return s.CartRepo.GetCartWithItems(s.DB, userID)
}

func (s *CartService) Clear(userID uint) error {
	return s.ClearTx(s.DB, userID)
}

// ClearTx empties the cart inside the caller's transaction.
func (s *CartService) ClearTx(tx *gorm.DB, userID uint) error {
	return s.CartRepo.ClearCart(tx, userID)
}

func (s *CartService) findLine(userID, materialID uint) (*entity.CartItem, error) {
	c, err := s.CartRepo.FindByUser(s.DB, userID)
	if err != nil || c == nil {
		return nil, err
	}
	return s.CartRepo.FindItem(c.ID, materialID)
}
