package models

import (
	"time"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Coupon discount types
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon grants a discount over an order total inside a validity window
type Coupon struct {
	audit.Fields
	Code          string    `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Description   string    `gorm:"size:250" json:"description,omitempty"`
	Type          string    `gorm:"not null;size:20" json:"type"`
	Value         float64   `gorm:"not null" json:"value"`
	MinOrderTotal float64   `gorm:"default:0" json:"min_order_total"`
	MaxUses       int       `gorm:"default:0" json:"max_uses"`
	UsedCount     int       `gorm:"default:0" json:"used_count"`
	ValidFrom     time.Time `gorm:"not null" json:"valid_from"`
	ValidUntil    time.Time `gorm:"not null" json:"valid_until"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
}

// IsValidAt reports whether the coupon can be applied at the given instant
func (cp *Coupon) IsValidAt(now time.Time) bool {
	if !cp.IsActive || cp.IsDeleted() || cp.IsBlocked() {
		return false
	}
	if now.Before(cp.ValidFrom) || now.After(cp.ValidUntil) {
		return false
	}
	if cp.MaxUses > 0 && cp.UsedCount >= cp.MaxUses {
		return false
	}
	return true
}

// DiscountFor computes the discount amount over a subtotal. A percentage
// coupon takes its share of the subtotal; a fixed coupon never discounts
// more than the subtotal itself.
func (cp *Coupon) DiscountFor(subtotal float64) float64 {
	switch cp.Type {
	case CouponTypePercentage:
		return subtotal * cp.Value / 100
	case CouponTypeFixed:
		if cp.Value > subtotal {
			return subtotal
		}
		return cp.Value
	}
	return 0
}

// Order is a customer purchase moving through a fixed status progression
type Order struct {
	audit.Fields
	Number         string      `gorm:"uniqueIndex;not null;size:30" json:"number"`
	CustomerID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status         string      `gorm:"not null;default:pending;index" json:"status"`
	Subtotal       float64     `gorm:"default:0" json:"subtotal"`
	Discount       float64     `gorm:"default:0" json:"discount"`
	Shipping       float64     `gorm:"default:0" json:"shipping"`
	Tax            float64     `gorm:"default:0" json:"tax"`
	Total          float64     `gorm:"default:0" json:"total"`
	CouponID       *uuid.UUID  `gorm:"type:uuid" json:"coupon_id,omitempty"`
	Coupon         *Coupon     `json:"coupon,omitempty"`
	PaidAt         *time.Time  `json:"paid_at,omitempty"`
	ShippedAt      *time.Time  `json:"shipped_at,omitempty"`
	TrackingNumber string      `gorm:"size:100" json:"tracking_number,omitempty"`
	Notes          string      `gorm:"size:500" json:"notes,omitempty"`
	Items          []OrderItem `json:"items,omitempty"`
}

// IsPaid reports whether the order has been paid
func (o *Order) IsPaid() bool {
	return o.PaidAt != nil
}

// CanCancel reports whether the order may still be cancelled
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// RecomputeTotal derives the order total from its components
func (o *Order) RecomputeTotal() {
	total := o.Subtotal - o.Discount + o.Shipping + o.Tax
	if total < 0 {
		total = 0
	}
	o.Total = total
}

// OrderItem is a line of an order; UnitPrice is captured at purchase time
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// LineTotal returns the line amount
func (i *OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// BeforeCreate assigns the item ID
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CreateCouponRequest is the payload for creating a coupon
type CreateCouponRequest struct {
	Code          string    `json:"code" binding:"required,max=50"`
	Description   string    `json:"description" binding:"max=250"`
	Type          string    `json:"type" binding:"required,oneof=percentage fixed"`
	Value         float64   `json:"value" binding:"required,gt=0"`
	MinOrderTotal float64   `json:"min_order_total" binding:"gte=0"`
	MaxUses       int       `json:"max_uses" binding:"gte=0"`
	ValidFrom     time.Time `json:"valid_from" binding:"required"`
	ValidUntil    time.Time `json:"valid_until" binding:"required"`
}

// CreateOrderItemRequest is one line of a new order
type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the payload for creating an order
type CreateOrderRequest struct {
	CustomerID uuid.UUID                `json:"customer_id" binding:"required"`
	Shipping   float64                  `json:"shipping" binding:"gte=0"`
	Tax        float64                  `json:"tax" binding:"gte=0"`
	Notes      string                   `json:"notes" binding:"max=500"`
	Items      []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ApplyCouponRequest is the payload for applying a coupon to an order
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ShipOrderRequest is the payload for marking an order as shipped
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,max=100"`
}
