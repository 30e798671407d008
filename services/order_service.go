package services

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/pkg/metrics"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	UserRepo *repository.UserRepository
	Notifier *NotificationService
	log      *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
) *OrderService {
	return &OrderService{
		DB:       db,
		Repo:     repo,
		CartRepo: cartRepo,
		UserRepo: userRepo,
		Notifier: notifier,
		log:      logger.Named("order"),
	}
}

type CheckoutIn struct {
	ShippingAddress string `json:"shippingAddress"`
}

type MarketShare struct {
	Label      string          `json:"label"`
	Percentage int64           `json:"percentage"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// Checkout turns the cart into an order priced at current catalog prices.
// Order, items and the cart wipe commit together; admins are notified afterwards.
func (s *OrderService) Checkout(userID uint, shippingAddress string) (*entity.Order, error) {
	var order *entity.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetCartWithItems(tx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		items := make([]entity.OrderItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			if it.Material == nil {
				return fmt.Errorf("cart line %d: %w", it.ID, ErrMaterialNotFound)
			}
			line := entity.OrderItem{
				MaterialID: it.MaterialID,
				Quantity:   it.Quantity,
				Price:      it.Material.Price,
			}
			total = total.Add(line.LineTotal())
			items = append(items, line)
		}

		order = &entity.Order{
			UserID:          userID,
			TotalPrice:      total,
			ShippingAddress: strings.TrimSpace(shippingAddress),
			PaymentStatus:   entity.PaymentPending,
			DeliveryStatus:  entity.DeliveryNotDelivered,
			Items:           items,
		}
		if err := s.Repo.CreateOrder(tx, order); err != nil {
			return err
		}
		return s.CartRepo.ClearCart(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	metrics.CheckoutsTotal.Inc()
	s.log.Info("order placed",
		zap.Uint("orderId", order.ID),
		zap.Uint("userId", userID),
		zap.String("total", order.TotalPrice.String()))

	s.notifyNewOrder(order)
	return s.Repo.GetOrderWithItems(order.ID)
}

func (s *OrderService) notifyNewOrder(o *entity.Order) {
	name := fmt.Sprintf("#%d", o.UserID)
	if u, err := s.UserRepo.FindByID(o.UserID); err == nil {
		name = u.Name
	}
	link := fmt.Sprintf("/admin/orders/%d", o.ID)
	orderID := o.ID
	err := s.Notifier.NotifyAdmins(NotificationIn{
		Title:   "New Order Received",
		Message: fmt.Sprintf("User %s has placed a new order #%d worth %s ETB.", name, o.ID, o.TotalPrice.String()),
		Type:    entity.NotificationNewOrder,
		OrderID: &orderID,
		Link:    &link,
	})
	if err != nil {
		s.log.Warn("notify admins failed", zap.Uint("orderId", o.ID), zap.Error(err))
	}
}

func (s *OrderService) ListForUser(userID uint) ([]entity.Order, error) {
	return s.Repo.ListForUser(userID)
}

func (s *OrderService) ListAll() ([]entity.Order, error) {
	return s.Repo.ListAll()
}

// GetByID does not check ownership.
func (s *OrderService) GetByID(orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderWithItems(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// DeleteOrder removes an unpaid order of the caller.
func (s *OrderService) DeleteOrder(userID, orderID uint) error {
	o, err := s.Repo.GetOrder(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrNotOrderOwner
	}
	if o.IsPaid() {
		return ErrOrderPaid
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.DeleteOrder(tx, orderID)
	}); err != nil {
		return err
	}
	s.log.Info("order deleted", zap.Uint("orderId", orderID), zap.Uint("userId", userID))
	return nil
}

// UpdateDeliveryStatus stores status as given and tells the owner about it.
func (s *OrderService) UpdateDeliveryStatus(orderID uint, status string) (*entity.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, ErrInvalidStatus
	}
	rows, err := s.Repo.UpdateDeliveryStatus(orderID, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrOrderNotFound
	}
	o, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("/orders/%d", o.ID)
	id := o.ID
	if _, err := s.Notifier.Create(NotificationIn{
		UserID:  o.UserID,
		Title:   "Order Status Updated",
		Message: fmt.Sprintf("Your order #%d status has been updated to %s.", o.ID, status),
		Type:    entity.NotificationOrderUpdate,
		OrderID: &id,
		Link:    &link,
	}); err != nil {
		s.log.Warn("notify owner failed", zap.Uint("orderId", o.ID), zap.Error(err))
	}
	return o, nil
}

// MarketShareByCategory splits paid revenue across categories. Shares are
// rounded to whole percents and sorted from largest to smallest.
func (s *OrderService) MarketShareByCategory() ([]MarketShare, error) {
	rows, err := s.Repo.PaidRevenueByCategory()
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}
	out := make([]MarketShare, 0, len(rows))
	if !total.IsPositive() {
		return out, nil
	}

	hundred := decimal.NewFromInt(100)
	for _, r := range rows {
		if !r.Revenue.IsPositive() {
			continue
		}
		out = append(out, MarketShare{
			Label:      r.Category,
			Percentage: r.Revenue.Mul(hundred).Div(total).Round(0).IntPart(),
			Revenue:    r.Revenue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Label < out[j].Label
	})
	return out, nil
}

// ExportXLSX writes all orders, newest first, as a spreadsheet.
func (s *OrderService) ExportXLSX(w io.Writer) error {
	orders, err := s.Repo.ListAll()
	if err != nil {
		return err
	}
	headers := []string{"ID", "Customer", "Email", "Total", "Payment", "Delivery", "Items", "TxRef", "ShippingAddress", "CreatedAt"}
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		var name, email, ref string
		if o.User != nil {
			name, email = o.User.Name, o.User.Email
		}
		if o.TxRef != nil {
			ref = *o.TxRef
		}
		qty := 0
		for _, it := range o.Items {
			qty += it.Quantity
		}
		rows = append(rows, []any{
			o.ID, name, email, o.TotalPrice.StringFixed(2),
			o.PaymentStatus, o.DeliveryStatus, qty, ref, o.ShippingAddress,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return writeSheet(w, "Orders", headers, rows)
}
