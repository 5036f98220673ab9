package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"onsen-store/internal/auth"
	"onsen-store/internal/broker"
	"onsen-store/internal/cartstore"
	"onsen-store/internal/metrics"
	"onsen-store/internal/model"
	"onsen-store/internal/pricing"
	"onsen-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern  = regexp.MustCompile(`^[0-9+\s-]{9,15}$`)
	postalPattern = regexp.MustCompile(`^[0-9]{5}$`)
)

// orderService implements the OrderService interface.
type orderService struct {
	orders    repository.OrderRepository
	carts     cartstore.Store
	locker    Locker
	publisher broker.Publisher
	policy    pricing.Policy
	lockTTL   time.Duration
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	carts cartstore.Store,
	locker Locker,
	publisher broker.Publisher,
	policy pricing.Policy,
	lockTTL time.Duration,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		carts:     carts,
		locker:    locker,
		publisher: publisher,
		policy:    policy,
		lockTTL:   lockTTL,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// validateCheckout checks the checkout form field by field so the
// client gets all failures at once.
func validateCheckout(req *model.CheckoutRequest) *model.ValidationError {
	v := model.NewValidationError()

	if len(strings.TrimSpace(req.CustomerName)) < 3 {
		v.Add("customer_name", "Name must be at least 3 characters")
	}
	if !emailPattern.MatchString(req.CustomerEmail) {
		v.Add("customer_email", "A valid email address is required")
	}
	if req.CustomerPhone != "" && !phonePattern.MatchString(req.CustomerPhone) {
		v.Add("customer_phone", "Phone number must be 9 to 15 digits")
	}
	if len(strings.TrimSpace(req.ShippingAddress)) < 10 {
		v.Add("shipping_address", "Address must be at least 10 characters")
	}
	if strings.TrimSpace(req.ShippingCity) == "" {
		v.Add("shipping_city", "City is required")
	}
	if !postalPattern.MatchString(req.ShippingPostalCode) {
		v.Add("shipping_postal_code", "Postal code must be 5 digits")
	}
	if strings.TrimSpace(req.ShippingCountry) == "" {
		v.Add("shipping_country", "Country is required")
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		v.Add("payment_method", "Unknown payment method")
	}

	if v.HasErrors() {
		return v
	}
	return nil
}

// Submit turns the session cart into an order.
//
// The preconditions are checked in a fixed sequence: authentication,
// cart presence, form validity, then the single-submission lock. The
// order header and its items are written in one transaction; the cart
// is cleared and the order event published only after commit.
func (s *orderService) Submit(ctx context.Context, sessionID string, session *auth.Session, req *model.CheckoutRequest) (*model.OrderConfirmation, error) {
	if session == nil {
		metrics.OrdersFailedTotal.WithLabelValues("not_authenticated").Inc()
		return nil, model.ErrNotAuthenticated
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("internal").Inc()
		return nil, err
	}
	if cart.IsEmpty() {
		metrics.OrdersFailedTotal.WithLabelValues("empty_cart").Inc()
		return nil, model.ErrEmptyCart
	}

	if verr := validateCheckout(req); verr != nil {
		metrics.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, verr
	}

	lockKey := fmt.Sprintf("checkout:%s", sessionID)
	acquired, err := s.locker.AcquireLock(ctx, lockKey, s.lockTTL)
	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("internal").Inc()
		return nil, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	if !acquired {
		metrics.OrdersFailedTotal.WithLabelValues("in_flight").Inc()
		return nil, model.ErrSubmissionInFlight
	}
	defer func() {
		if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to release checkout lock")
		}
	}()

	summary := cart.Summarize(s.policy.Shipping)
	now := time.Now().UTC()

	order := &model.Order{
		Status:             model.OrderStatusPending,
		Subtotal:           summary.Subtotal,
		ShippingCost:       summary.ShippingCost,
		Total:              summary.Total,
		CustomerName:       strings.TrimSpace(req.CustomerName),
		CustomerEmail:      strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:      strings.TrimSpace(req.CustomerPhone),
		ShippingAddress:    strings.TrimSpace(req.ShippingAddress),
		ShippingCity:       strings.TrimSpace(req.ShippingCity),
		ShippingPostalCode: strings.TrimSpace(req.ShippingPostalCode),
		ShippingCountry:    strings.TrimSpace(req.ShippingCountry),
		PaymentMethod:      req.PaymentMethod,
		PaymentStatus:      model.PaymentStatusPending,
		Notes:              strings.TrimSpace(req.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if session.UserID != "" {
		userID := session.UserID
		order.UserID = &userID
	}

	tx, err := s.orders.BeginTx(ctx)
	if err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("internal").Inc()
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.orders.CreateOrder(ctx, tx, order); err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("internal").Inc()
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, model.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := s.orders.CreateOrderItems(ctx, tx, items); err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("internal").Inc()
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("internal").Inc()
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	// The order is durable from here on. Cart cleanup and event
	// publication are best effort.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Int64("order_id", order.ID).Msg("failed to clear cart after checkout")
	}

	event := broker.OrderCreatedEvent{
		EventID:       uuid.NewString(),
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total,
		ItemCount:     len(items),
		CreatedAt:     now,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", order.ID).Msg("failed to publish order event")
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().
		Int64("order_id", order.ID).
		Str("customer_email", order.CustomerEmail).
		Float64("total", order.Total).
		Int("items", len(items)).
		Msg("order created")

	return &model.OrderConfirmation{
		Status:  "ok",
		OrderID: order.ID,
		Total:   order.Total,
	}, nil
}

// GetByID retrieves an order. Customers can only read orders placed
// with their own email; admins can read any.
func (s *orderService) GetByID(ctx context.Context, session *auth.Session, id int64) (*model.Order, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !session.IsAdmin() && !strings.EqualFold(order.CustomerEmail, session.Email) {
		return nil, model.ErrForbidden
	}

	return order, nil
}

// GetByEmail retrieves the order history for a customer email.
func (s *orderService) GetByEmail(ctx context.Context, session *auth.Session, email string) ([]model.Order, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}
	if !session.IsAdmin() && !strings.EqualFold(email, session.Email) {
		return nil, model.ErrForbidden
	}

	orders, err := s.orders.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by email: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// GetAll retrieves all orders.
func (s *orderService) GetAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateStatus updates an order's status and optional tracking number.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string, trackingNumber *string) error {
	if !model.ValidOrderStatus(status) {
		return model.ErrInvalidStatus
	}

	found, err := s.orders.UpdateStatus(ctx, id, status, trackingNumber)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !found {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Int64("order_id", id).Str("status", status).Msg("order status updated")
	return nil
}
