package models

import (
	"fmt"
	"time"

	"github.com/architect/backoffice/internal/common/audit"
)

// CurrencyType is a catalog entry for a currency used in financial
// operations. The ISO 4217 code is the primary key.
type CurrencyType struct {
	Code           string    `gorm:"primaryKey;size:3" json:"code"`
	Description    string    `gorm:"not null;size:250" json:"description"`
	Symbol         string    `gorm:"size:10" json:"symbol,omitempty"`
	DecimalPlaces  int       `gorm:"default:2" json:"decimal_places"`
	RateMultiplier float64   `gorm:"default:1" json:"rate_multiplier"`
	IsBaseCurrency bool      `gorm:"default:false" json:"is_base_currency"`
	IsCrypto       bool      `gorm:"default:false" json:"is_crypto"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName returns the code with its symbol when one is set
func (c *CurrencyType) DisplayName() string {
	if c.Symbol != "" {
		return fmt.Sprintf("%s (%s)", c.Symbol, c.Code)
	}
	return c.Code
}

// FormatAmount renders an amount with the currency symbol and decimals
func (c *CurrencyType) FormatAmount(amount float64) string {
	if c.Symbol != "" {
		return fmt.Sprintf("%s %.*f", c.Symbol, c.DecimalPlaces, amount)
	}
	return fmt.Sprintf("%.*f %s", c.DecimalPlaces, amount, c.Code)
}

// ExchangeRate is a dated quotation for a currency pair
type ExchangeRate struct {
	audit.Fields
	FromCurrency string    `gorm:"size:3;not null;index:idx_rate_pair" json:"from_currency"`
	ToCurrency   string    `gorm:"size:3;not null;index:idx_rate_pair" json:"to_currency"`
	Date         time.Time `gorm:"not null;index" json:"date"`
	BuyRate      float64   `gorm:"not null" json:"buy_rate"`
	SellRate     float64   `gorm:"not null" json:"sell_rate"`
	MidRate      float64   `gorm:"not null" json:"mid_rate"`
	Source       string    `gorm:"size:100" json:"source,omitempty"`
	IsOfficial   bool      `gorm:"default:false" json:"is_official"`
}

// CreateCurrencyRequest is the payload for creating a currency
type CreateCurrencyRequest struct {
	Code           string  `json:"code" binding:"required,len=3,uppercase"`
	Description    string  `json:"description" binding:"required,max=250"`
	Symbol         string  `json:"symbol" binding:"max=10"`
	DecimalPlaces  int     `json:"decimal_places" binding:"min=0,max=6"`
	RateMultiplier float64 `json:"rate_multiplier"`
	IsBaseCurrency bool    `json:"is_base_currency"`
	IsCrypto       bool    `json:"is_crypto"`
}

// CreateRateRequest is the payload for registering an exchange rate
type CreateRateRequest struct {
	FromCurrency string    `json:"from_currency" binding:"required,len=3"`
	ToCurrency   string    `json:"to_currency" binding:"required,len=3"`
	Date         time.Time `json:"date" binding:"required"`
	BuyRate      float64   `json:"buy_rate" binding:"required,gt=0"`
	SellRate     float64   `json:"sell_rate" binding:"required,gt=0"`
	Source       string    `json:"source" binding:"max=100"`
	IsOfficial   bool      `json:"is_official"`
}

// ConversionResult is returned by the conversion endpoint
type ConversionResult struct {
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	Amount       float64 `json:"amount"`
	Converted    float64 `json:"converted"`
	Rate         float64 `json:"rate"`
}
