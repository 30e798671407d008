package repository

import (
	"errors"

	"github.com/Fenet-Ab/fen-one-shop/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// FindByUser returns the first cart of the user, or nil when there is none.
func (r *CartRepository) FindByUser(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).Order("id ASC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCartWithItems loads lines with material and category; nil when no cart.
func (r *CartRepository) GetCartWithItems(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Material").
		Preload("Items.Material.Category").
		Order("id ASC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) GetOrCreateCart(userID uint) (*entity.Cart, error) {
	c, err := r.FindByUser(r.DB, userID)
	if err != nil || c != nil {
		return c, err
	}
	c = &entity.Cart{UserID: userID}
	if err := r.DB.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// FindItem returns the line for (cart, material) or nil.
func (r *CartRepository) FindItem(cartID, materialID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.DB.Where("cart_id = ? AND material_id = ?", cartID, materialID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) CreateItem(it *entity.CartItem) error {
	return r.DB.Create(it).Error
}

func (r *CartRepository) SetQuantity(it *entity.CartItem, qty int) error {
	it.Quantity = qty
	return r.DB.Model(it).Update("quantity", qty).Error
}

func (r *CartRepository) DeleteItem(id uint) error {
	return r.DB.Delete(&entity.CartItem{}, id).Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	c, err := r.FindByUser(tx, userID)
	if err != nil || c == nil {
		return err
	}
	return tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error
}

// DeleteForUser removes every cart of the user with its lines.
func (r *CartRepository) DeleteForUser(tx *gorm.DB, userID uint) error {
	sub := tx.Model(&entity.Cart{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("cart_id IN (?)", sub).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&entity.Cart{}).Error
}
