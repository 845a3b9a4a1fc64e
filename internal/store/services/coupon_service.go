package services

import (
	"strings"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/store/models"
	"github.com/architect/backoffice/internal/store/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponService manages discount coupons
type CouponService struct {
	coupons *repository.CouponRepository
	clock   audit.Clock
}

// NewCouponService creates a new CouponService
func NewCouponService(coupons *repository.CouponRepository, clock audit.Clock) *CouponService {
	return &CouponService{coupons: coupons, clock: clock}
}

// CreateCoupon creates a coupon. Codes are stored uppercase; percentage
// values must stay within 0-100.
func (s *CouponService) CreateCoupon(req models.CreateCouponRequest, actorID uuid.UUID) (*models.Coupon, error) {
	if req.Type == models.CouponTypePercentage && req.Value > 100 {
		return nil, errors.Validation("percentage value cannot exceed 100", "")
	}
	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, errors.Validation("valid_until must be after valid_from", "")
	}

	coupon := &models.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:   req.Description,
		Type:          req.Type,
		Value:         req.Value,
		MinOrderTotal: req.MinOrderTotal,
		MaxUses:       req.MaxUses,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		IsActive:      true,
	}
	coupon.CreatedBy = &actorID

	if err := s.coupons.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// GetCoupon retrieves a coupon by code
func (s *CouponService) GetCoupon(code string) (*models.Coupon, error) {
	return s.coupons.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
}

// ListCoupons returns all coupons
func (s *CouponService) ListCoupons() ([]*models.Coupon, error) {
	return s.coupons.List()
}

// Quote validates a coupon against an order subtotal without consuming a
// use. The returned amount is the discount to apply.
func (s *CouponService) Quote(code string, subtotal float64) (*models.Coupon, float64, error) {
	coupon, err := s.GetCoupon(code)
	if err != nil {
		return nil, 0, err
	}

	if !coupon.IsValidAt(s.clock.Now()) {
		return nil, 0, errors.Validation("coupon is not valid", "")
	}
	if subtotal < coupon.MinOrderTotal {
		return nil, 0, errors.Validation("order total is below the coupon minimum", "")
	}

	return coupon, coupon.DiscountFor(subtotal), nil
}

// ConsumeUse records one use of a coupon inside the caller's transaction, so
// the use count and whatever the coupon was applied to commit together
func (s *CouponService) ConsumeUse(tx *gorm.DB, coupon *models.Coupon) error {
	return s.coupons.WithTx(tx).IncrementUsage(coupon)
}
