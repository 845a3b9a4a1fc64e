package handlers

import (
	"net/http"
	"strconv"

	"github.com/architect/backoffice/internal/catalog/models"
	"github.com/architect/backoffice/internal/catalog/services"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler serves the category, tag and product endpoints
type CatalogHandler struct {
	categories *services.CategoryService
	products   *services.ProductService
	tags       *services.TagService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	categories *services.CategoryService,
	products *services.ProductService,
	tags *services.TagService,
) *CatalogHandler {
	return &CatalogHandler{
		categories: categories,
		products:   products,
		tags:       tags,
	}
}

// CreateCategory creates a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid category payload"))
		return
	}

	category, err := h.categories.CreateCategory(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// ListCategories lists all categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a single category
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid category id"))
		return
	}

	category, err := h.categories.GetCategory(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CategoryAncestors returns the path from the root to the category's parent
func (h *CatalogHandler) CategoryAncestors(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid category id"))
		return
	}

	ancestors, err := h.categories.Ancestors(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, ancestors)
}

// CategoryDescendants returns the subtree below the category
func (h *CatalogHandler) CategoryDescendants(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid category id"))
		return
	}

	descendants, err := h.categories.Descendants(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, descendants)
}

// CreateTag creates a tag
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid tag payload"))
		return
	}

	tag, err := h.tags.CreateTag(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// ListTags lists all tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.tags.ListTags()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateProduct creates a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid product payload"))
		return
	}

	product, err := h.products.CreateProduct(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts lists products with pagination
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := h.products.ListProducts(limit, offset)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

// GetProduct retrieves a single product with its stock status
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid product id"))
		return
	}

	product, err := h.products.GetProduct(id)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":      product,
		"stock_status": product.StockStatus(),
	})
}

// SearchProducts filters products by a free-text query
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	products, err := h.products.SearchProducts(c.Query("q"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// AdjustStock applies a signed stock delta to a product
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid product id"))
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid stock payload"))
		return
	}

	product, err := h.products.AdjustStock(id, req.Delta)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft deletes a single product
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid product id"))
		return
	}

	if err := h.products.SoftDeleteProduct(id, actorID); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDeleteProducts soft deletes the selected products
func (h *CatalogHandler) BulkDeleteProducts(c *gin.Context) {
	h.bulkAction(c, func(ids []uuid.UUID, actorID uuid.UUID) (int64, error) {
		return h.products.BulkSoftDeleteProducts(ids, actorID)
	})
}

// BulkRestoreProducts restores the selected deleted products
func (h *CatalogHandler) BulkRestoreProducts(c *gin.Context) {
	h.bulkAction(c, func(ids []uuid.UUID, _ uuid.UUID) (int64, error) {
		return h.products.BulkRestoreProducts(ids)
	})
}

// BulkBlockProducts blocks the selected products
func (h *CatalogHandler) BulkBlockProducts(c *gin.Context) {
	h.bulkAction(c, func(ids []uuid.UUID, actorID uuid.UUID) (int64, error) {
		return h.products.BulkBlockProducts(ids, actorID)
	})
}

// BulkUnblockProducts unblocks the selected products
func (h *CatalogHandler) BulkUnblockProducts(c *gin.Context) {
	h.bulkAction(c, func(ids []uuid.UUID, _ uuid.UUID) (int64, error) {
		return h.products.BulkUnblockProducts(ids)
	})
}

func (h *CatalogHandler) bulkAction(c *gin.Context, apply func(ids []uuid.UUID, actorID uuid.UUID) (int64, error)) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid bulk action payload"))
		return
	}

	affected, err := apply(req.IDs, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BulkActionResponse{Affected: affected})
}
