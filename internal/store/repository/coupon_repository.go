package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/store/models"
	"gorm.io/gorm"
)

// CouponRepository implements coupon persistence using GORM
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new CouponRepository instance
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *CouponRepository) WithTx(tx *gorm.DB) *CouponRepository {
	return &CouponRepository{db: tx}
}

// Create inserts a new coupon
func (r *CouponRepository) Create(coupon *models.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("coupon code already exists")
		}
		return errors.Internal("failed to create coupon", err.Error())
	}
	return nil
}

// GetByCode retrieves a coupon by its code
func (r *CouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.Scopes(audit.NotDeleted).First(&coupon, "code = ?", code).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("coupon")
		}
		return nil, errors.Internal("failed to fetch coupon", err.Error())
	}
	return &coupon, nil
}

// List retrieves all coupons
func (r *CouponRepository) List() ([]*models.Coupon, error) {
	var coupons []*models.Coupon
	err := r.db.Scopes(audit.NotDeleted).Order("created_at DESC").Find(&coupons).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch coupons", err.Error())
	}
	return coupons, nil
}

// IncrementUsage bumps the used-count column by one
func (r *CouponRepository) IncrementUsage(coupon *models.Coupon) error {
	err := r.db.Model(coupon).
		Update("used_count", gorm.Expr("used_count + 1")).Error
	if err != nil {
		return errors.Internal("failed to update coupon usage", err.Error())
	}
	coupon.UsedCount++
	return nil
}
