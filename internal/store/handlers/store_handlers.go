package handlers

import (
	"net/http"

	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/architect/backoffice/internal/store/models"
	"github.com/architect/backoffice/internal/store/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoreHandler serves the order and coupon endpoints
type StoreHandler struct {
	orders  *services.OrderService
	coupons *services.CouponService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(orders *services.OrderService, coupons *services.CouponService) *StoreHandler {
	return &StoreHandler{orders: orders, coupons: coupons}
}

// CreateCoupon creates a coupon
func (h *StoreHandler) CreateCoupon(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid coupon payload"))
		return
	}

	coupon, err := h.coupons.CreateCoupon(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// ListCoupons lists all coupons
func (h *StoreHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.coupons.ListCoupons()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// CreateOrder creates a pending order priced from the catalog
func (h *StoreHandler) CreateOrder(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order payload"))
		return
	}

	order, err := h.orders.CreateOrder(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder retrieves an order with its items
func (h *StoreHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	order, err := h.orders.GetOrder(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders lists all orders
func (h *StoreHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ApplyCoupon applies a coupon code to a pending order
func (h *StoreHandler) ApplyCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid coupon payload"))
		return
	}

	order, err := h.orders.ApplyCoupon(id, req.Code)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PayOrder marks an order as paid
func (h *StoreHandler) PayOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	order, err := h.orders.MarkAsPaid(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ShipOrder marks an order as shipped with a tracking number
func (h *StoreHandler) ShipOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	var req models.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid shipment payload"))
		return
	}

	order, err := h.orders.MarkAsShipped(id, req.TrackingNumber)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeliverOrder closes a shipped order
func (h *StoreHandler) DeliverOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	order, err := h.orders.MarkAsDelivered(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder cancels an order that has not shipped
func (h *StoreHandler) CancelOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	order, err := h.orders.Cancel(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder soft deletes an order
func (h *StoreHandler) DeleteOrder(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid order id"))
		return
	}

	if err := h.orders.SoftDeleteOrder(id, actorID); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
