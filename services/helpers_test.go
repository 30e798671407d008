package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Fenet-Ab/fen-one-shop/configs"
	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/repository"
	"github.com/Fenet-Ab/fen-one-shop/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. A single connection keeps
// every statement on the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

type shop struct {
	db *gorm.DB

	users     *repository.UserRepository
	materials *repository.MaterialRepository
	carts     *repository.CartRepository
	orders    *repository.OrderRepository

	notif  *services.NotificationService
	cart   *services.CartService
	order  *services.OrderService
	rating *services.RatingService
}

func newShop(t *testing.T) *shop {
	db := newTestDB(t)
	s := &shop{
		db:        db,
		users:     repository.NewUserRepository(db),
		materials: repository.NewMaterialRepository(db),
		carts:     repository.NewCartRepository(db),
		orders:    repository.NewOrderRepository(db),
	}
	s.notif = services.NewNotificationService(repository.NewNotificationRepository(db), s.users)
	s.cart = services.NewCartService(db, s.carts)
	s.order = services.NewOrderService(db, s.orders, s.carts, s.users, s.notif)
	s.rating = services.NewRatingService(db, repository.NewRatingRepository(db), s.materials)
	return s
}

func (s *shop) user(t *testing.T, name, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *shop) material(t *testing.T, category, title, price string) *entity.Material {
	t.Helper()
	var c entity.Category
	require.NoError(t, s.db.FirstOrCreate(&c, entity.Category{Name: category}).Error)
	m := &entity.Material{Title: title, Price: decimal.RequireFromString(price), CategoryID: c.ID}
	require.NoError(t, s.db.Create(m).Error)
	return m
}

func (s *shop) add(t *testing.T, userID, materialID uint, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		_, err := s.cart.AddItem(userID, materialID)
		require.NoError(t, err)
	}
}

func (s *shop) markPaid(t *testing.T, orderID uint) {
	t.Helper()
	_, err := s.orders.MarkPaid(orderID)
	require.NoError(t, err)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
