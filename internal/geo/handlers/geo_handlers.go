package handlers

import (
	"net/http"

	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/architect/backoffice/internal/geo/models"
	"github.com/architect/backoffice/internal/geo/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GeoHandler serves the geographic hierarchy endpoints
type GeoHandler struct {
	geo *services.GeoService
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(geo *services.GeoService) *GeoHandler {
	return &GeoHandler{geo: geo}
}

// CreateDepartment creates a department
func (h *GeoHandler) CreateDepartment(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid department payload"))
		return
	}

	dept, err := h.geo.CreateDepartment(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// ListDepartments lists all departments
func (h *GeoHandler) ListDepartments(c *gin.Context) {
	depts, err := h.geo.ListDepartments()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, depts)
}

// CreateProvince creates a province
func (h *GeoHandler) CreateProvince(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateProvinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid province payload"))
		return
	}

	prov, err := h.geo.CreateProvince(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, prov)
}

// ListProvinces lists the provinces of a department
func (h *GeoHandler) ListProvinces(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid department id"))
		return
	}

	provs, err := h.geo.ListProvinces(departmentID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, provs)
}

// CreateDistrict creates a district
func (h *GeoHandler) CreateDistrict(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateDistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid district payload"))
		return
	}

	dist, err := h.geo.CreateDistrict(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, dist)
}

// ListDistricts lists the districts of a province
func (h *GeoHandler) ListDistricts(c *gin.Context) {
	provinceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid province id"))
		return
	}

	dists, err := h.geo.ListDistricts(provinceID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, dists)
}
