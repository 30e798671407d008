package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/pkg/chapa"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/pkg/metrics"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	noReferenceMessage      = "No transaction reference found for this order. Please try paying again."
	foreignReferenceMessage = "Transaction reference does not belong to this order."
)

// PaymentGateway is the hosted-payment provider. *chapa.Client satisfies it.
type PaymentGateway interface {
	Initialize(ctx context.Context, in chapa.InitializeRequest) (map[string]any, error)
	Verify(ctx context.Context, txRef string) (map[string]any, error)
}

type PaymentConfig struct {
	Currency    string
	APIBaseURL  string
	FrontendURL string
}

type PaymentService struct {
	Repo     *repository.OrderRepository
	UserRepo *repository.UserRepository
	Gateway  PaymentGateway
	Config   PaymentConfig
	log      *zap.Logger
}

func NewPaymentService(repo *repository.OrderRepository, ur *repository.UserRepository, gw PaymentGateway, cfg PaymentConfig) *PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "ETB"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &PaymentService{Repo: repo, UserRepo: ur, Gateway: gw, Config: cfg, log: logger.Named("payment")}
}

// NewTxRef returns a reference unique per payment attempt.
func NewTxRef(orderID uint) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("FEN-%d-%s", orderID, id[:12])
}

// RefBelongsTo reports whether ref was issued by NewTxRef for orderID.
func RefBelongsTo(ref string, orderID uint) bool {
	return strings.HasPrefix(ref, fmt.Sprintf("FEN-%d-", orderID))
}

// Initialize opens a hosted checkout for an order of userID. The fresh
// reference is stored on the order before the provider is called and stays
// there even if the provider rejects the request.
func (s *PaymentService) Initialize(ctx context.Context, orderID, userID uint) (map[string]any, error) {
	order, err := s.Repo.GetOrder(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	if order.IsPaid() {
		return nil, ErrAlreadyPaid
	}
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	ref := NewTxRef(order.ID)
	if _, err := s.Repo.SetTxRef(order.ID, ref); err != nil {
		return nil, err
	}
	s.log.Info("payment reference stored", zap.Uint("orderId", order.ID), zap.String("txRef", ref))

	first, last := splitName(user.Name)
	res, err := s.Gateway.Initialize(ctx, chapa.InitializeRequest{
		Amount:      order.TotalPrice.StringFixed(2),
		Currency:    s.Config.Currency,
		Email:       user.Email,
		FirstName:   first,
		LastName:    last,
		TxRef:       ref,
		CallbackURL: fmt.Sprintf("%s/payment/verify/%d", s.Config.APIBaseURL, order.ID),
		ReturnURL: fmt.Sprintf("%s/orders?verify=%d&tx_ref=%s",
			s.Config.FrontendURL, order.ID, url.QueryEscape(ref)),
	})
	if err != nil {
		metrics.PaymentInitializations.WithLabelValues("failed").Inc()
		s.log.Error("payment initialization failed", zap.Uint("orderId", order.ID), zap.Error(err))
		var apiErr *chapa.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %s", ErrPaymentInit, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}
	metrics.PaymentInitializations.WithLabelValues("ok").Inc()
	return res, nil
}

// Verify asks the provider about txRef, or about the order's stored reference
// when txRef is empty. A reference issued for another order is refused
// without asking the provider. Provider and storage problems come back as a
// failed payload, never as an error. Verifying a paid order again just sets
// PAID again.
func (s *PaymentService) Verify(ctx context.Context, orderID uint, txRef string) (map[string]any, error) {
	ref := strings.TrimSpace(txRef)
	if ref != "" && !RefBelongsTo(ref, orderID) {
		metrics.PaymentVerifications.WithLabelValues("foreign_reference").Inc()
		s.log.Warn("reference does not match order", zap.Uint("orderId", orderID), zap.String("txRef", ref))
		return failed(foreignReferenceMessage), nil
	}
	if ref == "" {
		order, err := s.Repo.GetOrder(orderID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if order != nil && order.TxRef != nil {
			ref = *order.TxRef
		}
	}
	if ref == "" {
		metrics.PaymentVerifications.WithLabelValues("no_reference").Inc()
		return failed(noReferenceMessage), nil
	}

	body, err := s.Gateway.Verify(ctx, ref)
	if err != nil {
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
		s.log.Warn("payment verification failed", zap.Uint("orderId", orderID), zap.String("txRef", ref), zap.Error(err))
		return failed(err.Error()), nil
	}

	if !chapa.IsSuccess(body) {
		metrics.PaymentVerifications.WithLabelValues("pending").Inc()
		return body, nil
	}

	// the provider must report the same transaction we asked about
	if data, ok := body["data"].(map[string]any); ok {
		if got, ok := data["tx_ref"].(string); ok && got != "" && got != ref {
			metrics.PaymentVerifications.WithLabelValues("foreign_reference").Inc()
			return failed(foreignReferenceMessage), nil
		}
	}

	rows, err := s.Repo.MarkPaid(orderID)
	if err != nil {
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
		s.log.Error("mark order paid failed", zap.Uint("orderId", orderID), zap.String("txRef", ref), zap.Error(err))
		return failed(err.Error()), nil
	}
	if rows == 0 {
		metrics.PaymentVerifications.WithLabelValues("error").Inc()
		return failed("order not found"), nil
	}
	metrics.PaymentVerifications.WithLabelValues("success").Inc()
	s.log.Info("order paid", zap.Uint("orderId", orderID), zap.String("txRef", ref))

	return map[string]any{
		"status":  "success",
		"message": "Payment verified successfully",
		"data":    body["data"],
	}, nil
}

func failed(msg string) map[string]any {
	return map[string]any{"status": "failed", "message": msg}
}

func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	if first == "" {
		first = "User"
	}
	last = strings.TrimSpace(last)
	if last == "" {
		last = "FenStore"
	}
	return first, last
}

var _ PaymentGateway = (*chapa.Client)(nil)
