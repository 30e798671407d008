package repository

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrder inserts the order and its Items in one statement batch.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.Material")
}

func (r *OrderRepository) GetOrderWithItems(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := withItems(r.DB).First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := withItems(r.DB).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListAll() ([]entity.Order, error) {
	var out []entity.Order
	err := withItems(r.DB).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// DeleteOrder removes the items first, then the order.
func (r *OrderRepository) DeleteOrder(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Order{}, orderID).Error
}

func (r *OrderRepository) UpdateDeliveryStatus(orderID uint, status string) (int64, error) {
	res := r.DB.Model(&entity.Order{}).Where("id = ?", orderID).Update("delivery_status", status)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetTxRef(orderID uint, ref string) (int64, error) {
	res := r.DB.Model(&entity.Order{}).Where("id = ?", orderID).Update("tx_ref", ref)
	return res.RowsAffected, res.Error
}

// MarkPaid is idempotent: an already paid order is simply set to PAID again.
func (r *OrderRepository) MarkPaid(orderID uint) (int64, error) {
	res := r.DB.Model(&entity.Order{}).Where("id = ?", orderID).Update("payment_status", entity.PaymentPaid)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) ListPlainForUser(tx *gorm.DB, userID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := tx.Where("user_id = ?", userID).Find(&out).Error
	return out, err
}

// DeleteUnpaidForUser removes the user's unpaid orders and their items.
func (r *OrderRepository) DeleteUnpaidForUser(tx *gorm.DB, userID uint) error {
	sub := tx.Model(&entity.Order{}).Select("id").
		Where("user_id = ? AND payment_status <> ?", userID, entity.PaymentPaid)
	if err := tx.Where("order_id IN (?)", sub).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ? AND payment_status <> ?", userID, entity.PaymentPaid).
		Delete(&entity.Order{}).Error
}

type CategoryRevenue struct {
	Category string
	Revenue  decimal.Decimal
}

// PaidRevenueByCategory sums price * quantity of paid order lines per
// category. Lines are summed in decimal; SQL arithmetic on these columns
// goes through floats on some drivers. Rows come back ordered by category.
func (r *OrderRepository) PaidRevenueByCategory() ([]CategoryRevenue, error) {
	var lines []struct {
		Category string
		Price    decimal.Decimal
		Quantity int64
	}
	err := r.DB.Table("order_items AS oi").
		Select("c.name AS category, oi.price AS price, oi.quantity AS quantity").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN materials m ON m.id = oi.material_id").
		Joins("JOIN categories c ON c.id = m.category_id").
		Where("o.payment_status = ?", entity.PaymentPaid).
		Order("c.name ASC, oi.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	var out []CategoryRevenue
	for _, l := range lines {
		amount := l.Price.Mul(decimal.NewFromInt(l.Quantity))
		if n := len(out); n > 0 && out[n-1].Category == l.Category {
			out[n-1].Revenue = out[n-1].Revenue.Add(amount)
			continue
		}
		out = append(out, CategoryRevenue{Category: l.Category, Revenue: amount})
	}
	return out, nil
}
