package facilities

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/models"
	"github.com/FractiqLabs/StockEasy/pkg/roles"
	"github.com/FractiqLabs/StockEasy/pkg/security"

	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	repository Repository
}

func NewFacilityHandler(r Repository) *FacilityHandler {
	return &FacilityHandler{repository: r}
}

func (h *FacilityHandler) RegisterRoutes(router *gin.RouterGroup) {
	// The login screen needs the facility list before any session exists.
	router.GET("/facilities", h.GetFacilities)
	router.POST("/facilities", security.Authorize(roles.Admin), h.CreateFacility)
	router.DELETE("/facilities/:id", security.Authorize(roles.Admin), h.DeleteFacility)
}

func (h *FacilityHandler) GetFacilities(c *gin.Context) {
	facilities, err := h.repository.GetFacilities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to fetch facilities"})
		return
	}
	c.JSON(http.StatusOK, facilities)
}

func (h *FacilityHandler) CreateFacility(c *gin.Context) {
	var facility models.Facility
	if err := c.ShouldBindJSON(&facility); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request payload"})
		return
	}

	if strings.TrimSpace(facility.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "validation failed", "errors": []string{"name is required"}})
		return
	}

	if err := h.repository.PersistFacility(&facility); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create facility"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "facility created"})
}

func (h *FacilityHandler) DeleteFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid facility ID"})
		return
	}

	if err := h.repository.DeleteFacility(id); err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete facility"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "facility deleted"})
}
