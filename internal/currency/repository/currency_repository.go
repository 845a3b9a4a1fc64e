package repository

import (
	stderrors "errors"

	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/currency/models"
	"gorm.io/gorm"
)

// CurrencyRepository implements currency catalog persistence
type CurrencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a new CurrencyRepository instance
func NewCurrencyRepository(db *gorm.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// Create inserts a new currency
func (r *CurrencyRepository) Create(currency *models.CurrencyType) error {
	if err := r.db.Create(currency).Error; err != nil {
		return errors.Internal("failed to create currency", err.Error())
	}
	return nil
}

// Get retrieves a currency by code
func (r *CurrencyRepository) Get(code string) (*models.CurrencyType, error) {
	var currency models.CurrencyType
	if err := r.db.First(&currency, "code = ?", code).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("currency")
		}
		return nil, errors.Internal("failed to fetch currency", err.Error())
	}
	return &currency, nil
}

// List retrieves all active currencies
func (r *CurrencyRepository) List() ([]*models.CurrencyType, error) {
	var currencies []*models.CurrencyType
	err := r.db.Where("is_active = ?", true).Order("code ASC").Find(&currencies).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch currencies", err.Error())
	}
	return currencies, nil
}

// GetBaseCurrency retrieves the system's base currency
func (r *CurrencyRepository) GetBaseCurrency() (*models.CurrencyType, error) {
	var currency models.CurrencyType
	err := r.db.First(&currency, "is_base_currency = ?", true).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("base currency")
		}
		return nil, errors.Internal("failed to fetch base currency", err.Error())
	}
	return &currency, nil
}

// CountBaseCurrencies counts currencies flagged as base, excluding a code
func (r *CurrencyRepository) CountBaseCurrencies(excludeCode string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CurrencyType{}).
		Where("is_base_currency = ? AND code <> ?", true, excludeCode).
		Count(&count).Error
	if err != nil {
		return 0, errors.Internal("failed to count base currencies", err.Error())
	}
	return count, nil
}

// RateRepository implements exchange-rate persistence
type RateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a new RateRepository instance
func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

// Create inserts a new exchange rate
func (r *RateRepository) Create(rate *models.ExchangeRate) error {
	if err := r.db.Create(rate).Error; err != nil {
		return errors.Internal("failed to create exchange rate", err.Error())
	}
	return nil
}

// LatestForPair retrieves the most recent rate for a currency pair
func (r *RateRepository) LatestForPair(from, to string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.Scopes(audit.NotDeleted).
		Where("from_currency = ? AND to_currency = ?", from, to).
		Order("date DESC").
		First(&rate).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("exchange rate")
		}
		return nil, errors.Internal("failed to fetch exchange rate", err.Error())
	}
	return &rate, nil
}

// ListForPair retrieves rates for a pair within a date range
func (r *RateRepository) ListForPair(from, to string) ([]*models.ExchangeRate, error) {
	var rates []*models.ExchangeRate
	err := r.db.Scopes(audit.NotDeleted).
		Where("from_currency = ? AND to_currency = ?", from, to).
		Order("date DESC").
		Find(&rates).Error
	if err != nil {
		return nil, errors.Internal("failed to fetch exchange rates", err.Error())
	}
	return rates, nil
}
