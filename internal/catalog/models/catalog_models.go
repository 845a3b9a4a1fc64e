package models

import (
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/google/uuid"
)

// Category organizes products; categories form a tree through ParentID
type Category struct {
	audit.Fields
	Name        string     `gorm:"not null;size:100" json:"name"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"size:500" json:"description,omitempty"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
}

// IsRoot returns true for categories without a parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Tag labels products for filtering
type Tag struct {
	audit.Fields
	Name        string `gorm:"uniqueIndex;not null;size:50" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:250" json:"description,omitempty"`
	Color       string `gorm:"size:7;default:#007bff" json:"color"`
}

// Product stock states
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Product is a sellable catalog item
type Product struct {
	audit.Fields
	Name              string    `gorm:"not null;size:200" json:"name"`
	Slug              string    `gorm:"uniqueIndex;not null" json:"slug"`
	SKU               string    `gorm:"uniqueIndex;not null;size:50" json:"sku"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `gorm:"not null" json:"price"`
	ComparePrice      float64   `json:"compare_price,omitempty"`
	Cost              float64   `json:"cost,omitempty"`
	Stock             int       `gorm:"default:0" json:"stock"`
	LowStockThreshold int       `gorm:"default:5" json:"low_stock_threshold"`
	IsActive          bool      `gorm:"default:true;index" json:"is_active"`
	CategoryID        uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category          *Category `json:"category,omitempty"`
	Tags              []Tag     `gorm:"many2many:product_tags" json:"tags,omitempty"`
}

// IsInStock returns true when stock is above the low threshold
func (p *Product) IsInStock() bool {
	return p.Stock > p.LowStockThreshold
}

// IsLowStock returns true when stock is positive but at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}

// IsOutOfStock returns true when no stock remains
func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

// StockStatus summarizes the stock level
func (p *Product) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return StockStatusOutOfStock
	case p.IsLowStock():
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// DiscountPercentage derives the markdown from the compare price, 0 when
// there is no active discount
func (p *Product) DiscountPercentage() float64 {
	if p.ComparePrice <= 0 || p.ComparePrice <= p.Price {
		return 0
	}
	return (p.ComparePrice - p.Price) / p.ComparePrice * 100
}

// ProfitMargin derives the margin over cost, 0 when cost is unknown
func (p *Product) ProfitMargin() float64 {
	if p.Cost <= 0 || p.Price <= 0 {
		return 0
	}
	return (p.Price - p.Cost) / p.Price * 100
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Slug        string     `json:"slug" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// CreateTagRequest is the payload for creating a tag
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Slug        string `json:"slug" binding:"required,max=50"`
	Description string `json:"description" binding:"max=250"`
	Color       string `json:"color" binding:"max=7"`
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name              string    `json:"name" binding:"required,max=200"`
	Slug              string    `json:"slug" binding:"required,max=200"`
	SKU               string    `json:"sku" binding:"required,max=50"`
	Description       string    `json:"description"`
	Price             float64   `json:"price" binding:"required,gt=0"`
	ComparePrice      float64   `json:"compare_price" binding:"omitempty,gt=0"`
	Cost              float64   `json:"cost" binding:"omitempty,gte=0"`
	Stock             int       `json:"stock" binding:"gte=0"`
	LowStockThreshold int       `json:"low_stock_threshold" binding:"gte=0"`
	CategoryID        uuid.UUID `json:"category_id" binding:"required"`
}

// BulkActionRequest selects records for a bulk lifecycle transition
type BulkActionRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// BulkActionResponse reports the affected-row count
type BulkActionResponse struct {
	Affected int64 `json:"affected"`
}
