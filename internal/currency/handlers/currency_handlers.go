package handlers

import (
	"net/http"
	"strconv"

	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/architect/backoffice/internal/currency/models"
	"github.com/architect/backoffice/internal/currency/services"
	"github.com/gin-gonic/gin"
)

// CurrencyHandler serves the currency catalog endpoints
type CurrencyHandler struct {
	currency *services.CurrencyService
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(currency *services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currency: currency}
}

// CreateCurrency registers a new currency
func (h *CurrencyHandler) CreateCurrency(c *gin.Context) {
	var req models.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid currency payload"))
		return
	}

	currency, err := h.currency.CreateCurrency(req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, currency)
}

// ListCurrencies lists active currencies
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.currency.ListCurrencies()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, currencies)
}

// RegisterRate records a new exchange rate
func (h *CurrencyHandler) RegisterRate(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid rate payload"))
		return
	}

	rate, err := h.currency.RegisterRate(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// Convert converts an amount between currencies
func (h *CurrencyHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid amount"))
		return
	}
	from := c.Query("from")
	to := c.Query("to")
	if len(from) != 3 || len(to) != 3 {
		middleware.JSONErrorResponse(c, errors.BadRequest("currencies must be 3-letter codes"))
		return
	}

	result, err := h.currency.Convert(amount, from, to)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
