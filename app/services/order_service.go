// Package services holds the business logic between controllers and
// repositories.
package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/app/repositories"
	"github.com/anandicecream/storefront/pkg/cache"
	"github.com/anandicecream/storefront/pkg/event"
	"github.com/anandicecream/storefront/pkg/logger"
	"github.com/anandicecream/storefront/pkg/metrics"
	"github.com/anandicecream/storefront/pkg/workerpool"
)

// Event names fired by the order service. Listeners are attached at boot.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

const (
	orderCacheTTL    = 5 * time.Minute
	orderCachePrefix = "order:"
)

// Notifier receives a copy of every accepted order. Implementations must
// not block: OrderReceived runs on a background worker and its errors are
// the implementation's own problem.
type Notifier interface {
	OrderReceived(order *models.Order)
}

// OrderService implements order intake, lookup and status transitions.
type OrderService struct {
	repo     *repositories.OrderRepository
	pool     *workerpool.Pool
	notifier Notifier
	flight   singleflight.Group
}

// NewOrderService wires the service. pool and notifier may be nil, in
// which case accepted orders simply skip notification (used in tests).
func NewOrderService(repo *repositories.OrderRepository, pool *workerpool.Pool, notifier Notifier) *OrderService {
	return &OrderService{repo: repo, pool: pool, notifier: notifier}
}

// Create validates and persists an order draft. On success the returned
// order carries the server-assigned order ID and defaulted fields. The
// admin notification is handed to the worker pool after the insert
// commits; its outcome never affects the returned error.
func (s *OrderService) Create(draft *models.OrderDraft) (*models.Order, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := time.Now()
	orderDate := now
	if draft.OrderDate != nil {
		orderDate = *draft.OrderDate
	}
	status := draft.Status
	if status == "" {
		status = models.StatusPending
	}
	paymentStatus := draft.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}

	order := &models.Order{
		OrderID:           GenerateOrderID(),
		FullName:          draft.CustomerInfo.FullName,
		Email:             draft.CustomerInfo.Email,
		Phone:             draft.CustomerInfo.Phone,
		DeliveryAddress:   draft.CustomerInfo.DeliveryAddress,
		Pincode:           draft.CustomerInfo.Pincode,
		AlternatePhone:    draft.CustomerInfo.AlternatePhone,
		Items:             draft.Items,
		TotalAmount:       draft.TotalAmount,
		PaymentScreenshot: draft.PaymentScreenshot,
		PaymentStatus:     paymentStatus,
		OrderDate:         orderDate,
		Status:            status,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	logger.Info("order accepted", "order_id", order.OrderID, "total", order.TotalAmount, "items", len(order.Items))

	s.dispatchNotification(order)
	event.FireAsync(EventOrderCreated, order)

	return order, nil
}

// dispatchNotification hands the admin email to the worker pool. A full
// pool drops the notification; order acceptance is already committed.
func (s *OrderService) dispatchNotification(order *models.Order) {
	if s.pool == nil || s.notifier == nil {
		return
	}
	snapshot := *order
	if err := s.pool.Submit(func() { s.notifier.OrderReceived(&snapshot) }); err != nil {
		logger.Warn("order notification dropped", "order_id", order.OrderID, "error", err)
	}
}

// List returns all orders, newest first.
func (s *OrderService) List() ([]models.Order, error) {
	return s.repo.AllNewestFirst()
}

// Find returns the order with the given public ID. Lookups go through a
// Redis read-through cache; concurrent misses for the same ID collapse
// into a single database query.
func (s *OrderService) Find(orderID string) (*models.Order, error) {
	key := orderCachePrefix + orderID

	var cached models.Order
	if cache.Get(key, &cached) {
		return &cached, nil
	}

	v, err, _ := s.flight.Do(orderID, func() (interface{}, error) {
		order, err := s.repo.FindByOrderID(orderID)
		if err != nil {
			return nil, err
		}
		if err := cache.Set(key, order, orderCacheTTL); err != nil {
			logger.Warn("order cache write failed", "order_id", orderID, "error", err)
		}
		return order, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Order), nil
}

// UpdateStatus moves an order to a new status, invalidates its cache
// entry and fires the status-changed event so the customer can be told.
func (s *OrderService) UpdateStatus(orderID, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, intakeErr(KindInvalidStatus,
			fmt.Sprintf("unknown status %q; expected one of pending, confirmed, processing, delivered, cancelled", status))
	}

	order, err := s.repo.UpdateStatus(orderID, status)
	if err != nil {
		return nil, err
	}

	if err := cache.Del(orderCachePrefix + orderID); err != nil {
		logger.Warn("order cache invalidation failed", "order_id", orderID, "error", err)
	}

	logger.Info("order status changed", "order_id", orderID, "status", status)
	event.FireAsync(EventOrderStatusChanged, order)

	return order, nil
}

// Health reports whether the persistence layer is reachable.
func (s *OrderService) Health() error {
	return s.repo.Ping()
}

// validateDraft enforces the intake contract. The checks run in a fixed
// order so a draft with several problems reports a deterministic kind.
func validateDraft(draft *models.OrderDraft) error {
	if draft.CustomerInfo == nil || draft.Items == nil || draft.TotalAmount == 0 {
		return intakeErr(KindMissingFields,
			"customerInfo, items and totalAmount are required")
	}

	c := draft.CustomerInfo
	missing := []string{}
	for _, f := range []struct{ name, value string }{
		{"fullName", c.FullName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"deliveryAddress", c.DeliveryAddress},
		{"pincode", c.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return intakeErr(KindIncompleteCustomerInfo,
			"missing customer fields: "+strings.Join(missing, ", "))
	}

	if len(draft.Items) == 0 {
		return intakeErr(KindInvalidItems, "items must be a non-empty list")
	}

	return nil
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderID builds a human-scannable unique order identifier:
// ORD-<base36 millisecond timestamp>-<5 random base36 chars>, uppercase.
// Uniqueness is probabilistic; no collision check is made against the
// database.
func GenerateOrderID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}

	return "ORD-" + ts + "-" + string(suffix)
}
