package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cleanitalia/database/repository"
	"cleanitalia/models"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler covers admin CRUD for the configuration entities: cities
// and services.
type CatalogHandler struct {
	Cities   repository.CityRepository
	Services repository.ServiceRepository
	Logger   *zap.Logger
}

func NewCatalogHandler(cities repository.CityRepository, services repository.ServiceRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Cities: cities, Services: services, Logger: logger}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "id must be a number")
		return 0, false
	}
	return id, true
}

func respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "Storage failure", err.Error())
}

// --- Cities ---

func (h *CatalogHandler) ListCitiesHandler(c *gin.Context) {
	cities, err := h.Cities.GetAll(c.Request.Context(), false)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *CatalogHandler) CreateCityHandler(c *gin.Context) {
	var city models.City
	if err := c.ShouldBindJSON(&city); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Cities.Create(c.Request.Context(), &city); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

func (h *CatalogHandler) UpdateCityHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var city models.City
	if err := c.ShouldBindJSON(&city); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	city.ID = id
	if err := h.Cities.Update(c.Request.Context(), &city); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *CatalogHandler) DeleteCityHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Cities.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "city deleted"})
}

// --- Services ---

func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Services.GetAll(c.Request.Context(), false)
	if err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Services.Create(c.Request.Context(), &svc); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	svc.ID = id
	if err := h.Services.Update(c.Request.Context(), &svc); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) DeleteServiceHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Services.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
