package services

import (
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/currency/models"
	"github.com/architect/backoffice/internal/currency/repository"
	"github.com/google/uuid"
)

// CurrencyService holds the currency catalog rules: a single base currency,
// latest-rate lookup and amount conversion through the mid rate.
type CurrencyService struct {
	currencies *repository.CurrencyRepository
	rates      *repository.RateRepository
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(currencies *repository.CurrencyRepository, rates *repository.RateRepository) *CurrencyService {
	return &CurrencyService{currencies: currencies, rates: rates}
}

// CreateCurrency registers a currency, enforcing the single-base constraint
func (s *CurrencyService) CreateCurrency(req models.CreateCurrencyRequest) (*models.CurrencyType, error) {
	if req.IsBaseCurrency {
		count, err := s.currencies.CountBaseCurrencies(req.Code)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.Validation("only one currency can be marked as base currency", "")
		}
	}

	multiplier := req.RateMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	currency := &models.CurrencyType{
		Code:           req.Code,
		Description:    req.Description,
		Symbol:         req.Symbol,
		DecimalPlaces:  req.DecimalPlaces,
		RateMultiplier: multiplier,
		IsBaseCurrency: req.IsBaseCurrency,
		IsCrypto:       req.IsCrypto,
		IsActive:       true,
	}
	if err := s.currencies.Create(currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// ListCurrencies returns all active currencies
func (s *CurrencyService) ListCurrencies() ([]*models.CurrencyType, error) {
	return s.currencies.List()
}

// RegisterRate records an exchange rate for a known currency pair. The mid
// rate is derived from buy and sell when not provided.
func (s *CurrencyService) RegisterRate(req models.CreateRateRequest, actorID uuid.UUID) (*models.ExchangeRate, error) {
	if req.FromCurrency == req.ToCurrency {
		return nil, errors.Validation("from and to currencies must differ", "")
	}
	if _, err := s.currencies.Get(req.FromCurrency); err != nil {
		return nil, err
	}
	if _, err := s.currencies.Get(req.ToCurrency); err != nil {
		return nil, err
	}

	rate := &models.ExchangeRate{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Date:         req.Date,
		BuyRate:      req.BuyRate,
		SellRate:     req.SellRate,
		MidRate:      (req.BuyRate + req.SellRate) / 2,
		Source:       req.Source,
		IsOfficial:   req.IsOfficial,
	}
	rate.CreatedBy = &actorID

	if err := s.rates.Create(rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// LatestRate returns the most recent rate for a pair. Identity for the same
// currency on both sides.
func (s *CurrencyService) LatestRate(from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}
	rate, err := s.rates.LatestForPair(from, to)
	if err != nil {
		return 0, err
	}
	return rate.MidRate, nil
}

// Convert converts an amount between currencies using the latest mid rate
func (s *CurrencyService) Convert(amount float64, from, to string) (*models.ConversionResult, error) {
	rate, err := s.LatestRate(from, to)
	if err != nil {
		return nil, err
	}

	return &models.ConversionResult{
		FromCurrency: from,
		ToCurrency:   to,
		Amount:       amount,
		Converted:    amount * rate,
		Rate:         rate,
	}, nil
}
