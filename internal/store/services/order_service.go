package services

import (
	"fmt"

	catalogmodels "github.com/architect/backoffice/internal/catalog/models"
	catalogrepo "github.com/architect/backoffice/internal/catalog/repository"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/metrics"
	"github.com/architect/backoffice/internal/store/models"
	"github.com/architect/backoffice/internal/store/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService creates orders from catalog prices and moves them through the
// status progression pending → processing → shipped → delivered, with
// cancellation allowed before shipment.
type OrderService struct {
	orders      *repository.OrderRepository
	products    *catalogrepo.ProductRepository
	coupons     *CouponService
	transitions *audit.Transitioner
	clock       audit.Clock
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders *repository.OrderRepository,
	products *catalogrepo.ProductRepository,
	coupons *CouponService,
	transitions *audit.Transitioner,
	clock audit.Clock,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		coupons:     coupons,
		transitions: transitions,
		clock:       clock,
		logger:      logger,
	}
}

// CreateOrder prices the requested items from the catalog and creates a
// pending order. Unit prices are captured at creation time.
func (s *OrderService) CreateOrder(req models.CreateOrderRequest, actorID uuid.UUID) (*models.Order, error) {
	order := &models.Order{
		Number:     s.nextOrderNumber(),
		CustomerID: req.CustomerID,
		Status:     models.OrderStatusPending,
		Shipping:   req.Shipping,
		Tax:        req.Tax,
		Notes:      req.Notes,
	}
	order.CreatedBy = &actorID

	// Quantities are aggregated per product so a product repeated across
	// lines cannot pass the stock check line by line
	products := make(map[uuid.UUID]*catalogmodels.Product)
	needed := make(map[uuid.UUID]int)
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			var err error
			product, err = s.products.Get(line.ProductID)
			if err != nil {
				return nil, err
			}
			if !product.IsActive || product.IsBlocked() {
				return nil, errors.Validation(fmt.Sprintf("product %s is not available", product.SKU), "")
			}
			products[line.ProductID] = product
		}
		needed[line.ProductID] += line.Quantity
		if needed[line.ProductID] > product.Stock {
			return nil, errors.Validation(fmt.Sprintf("insufficient stock for %s", product.SKU), "")
		}

		item := models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		}
		order.Items = append(order.Items, item)
		order.Subtotal += item.LineTotal()
	}
	order.RecomputeTotal()

	// The order insert and the stock reservation commit or roll back
	// together; the guarded decrement catches stock consumed since the
	// pricing pass
	err := s.orders.Transaction(func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).Create(order); err != nil {
			return err
		}
		txProducts := s.products.WithTx(tx)
		for productID, quantity := range needed {
			reserved, err := txProducts.DecrementStock(productID, quantity)
			if err != nil {
				return err
			}
			if !reserved {
				return errors.Validation(
					fmt.Sprintf("insufficient stock for %s", products[productID].SKU), "")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("number", order.Number),
		zap.String("customer_id", order.CustomerID.String()),
		zap.Float64("total", order.Total))

	return order, nil
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	return s.orders.Get(id)
}

// ListOrders returns all orders
func (s *OrderService) ListOrders() ([]*models.Order, error) {
	return s.orders.List()
}

// ListCustomerOrders returns the orders of a customer
func (s *OrderService) ListCustomerOrders(customerID uuid.UUID) ([]*models.Order, error) {
	return s.orders.ListByCustomer(customerID)
}

// ApplyCoupon redeems a coupon against a pending order and recomputes the
// totals. Only one coupon can be attached to an order.
func (s *OrderService) ApplyCoupon(orderID uuid.UUID, code string) (*models.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, errors.Validation("coupons can only be applied to pending orders", "")
	}
	if order.CouponID != nil {
		return nil, errors.Validation("order already has a coupon", "")
	}

	coupon, discount, err := s.coupons.Quote(code, order.Subtotal)
	if err != nil {
		return nil, err
	}

	order.CouponID = &coupon.ID
	order.Discount = discount
	order.RecomputeTotal()

	// The coupon use is only consumed when the order update commits
	err = s.orders.Transaction(func(tx *gorm.DB) error {
		if err := s.coupons.ConsumeUse(tx, coupon); err != nil {
			return err
		}
		return s.orders.WithTx(tx).UpdateFields(order, map[string]interface{}{
			"coupon_id": coupon.ID,
			"discount":  order.Discount,
			"total":     order.Total,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// MarkAsPaid stamps the payment time on a pending order and moves it to
// processing
func (s *OrderService) MarkAsPaid(orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, errors.Validation("only pending orders can be marked as paid", "")
	}
	if order.IsPaid() {
		return nil, errors.Validation("order is already paid", "")
	}

	now := s.clock.Now()
	order.PaidAt = &now
	order.Status = models.OrderStatusProcessing

	err = s.orders.UpdateFields(order, map[string]interface{}{
		"paid_at": now,
		"status":  order.Status,
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// MarkAsShipped stamps the shipment time and tracking number on a paid order
func (s *OrderService) MarkAsShipped(orderID uuid.UUID, trackingNumber string) (*models.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusProcessing {
		return nil, errors.Validation("only processing orders can be shipped", "")
	}

	now := s.clock.Now()
	order.ShippedAt = &now
	order.TrackingNumber = trackingNumber
	order.Status = models.OrderStatusShipped

	err = s.orders.UpdateFields(order, map[string]interface{}{
		"shipped_at":      now,
		"tracking_number": trackingNumber,
		"status":          order.Status,
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// MarkAsDelivered closes a shipped order
func (s *OrderService) MarkAsDelivered(orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusShipped {
		return nil, errors.Validation("only shipped orders can be delivered", "")
	}

	order.Status = models.OrderStatusDelivered
	err = s.orders.UpdateFields(order, map[string]interface{}{
		"status": order.Status,
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel cancels an order that has not shipped yet and returns the reserved
// stock to the catalog
func (s *OrderService) Cancel(orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, errors.Validation("order can no longer be cancelled", "")
	}

	order.Status = models.OrderStatusCancelled
	err = s.orders.UpdateFields(order, map[string]interface{}{
		"status": order.Status,
	})
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		product, err := s.products.Get(item.ProductID)
		if err != nil {
			s.logger.Warn("failed to return stock",
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err))
			continue
		}
		product.Stock += item.Quantity
		if err := s.products.UpdateStock(product); err != nil {
			s.logger.Warn("failed to return stock",
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err))
		}
	}

	return order, nil
}

// SoftDeleteOrder logically deletes an order, attributing the actor
func (s *OrderService) SoftDeleteOrder(id uuid.UUID, actorID uuid.UUID) error {
	order, err := s.orders.Get(id)
	if err != nil {
		return err
	}
	if err := s.transitions.SoftDelete(order, actorID); err != nil {
		return errors.Internal("failed to delete order", err.Error())
	}
	metrics.LifecycleTransitions.WithLabelValues("soft_delete", "order").Inc()
	return nil
}

func (s *OrderService) nextOrderNumber() string {
	now := s.clock.Now()
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
